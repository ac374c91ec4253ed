package core

import (
	"context"
	"fmt"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
	"github.com/pterm/pterm"
)

// showProgress reports whether the header and spinner belong on the terminal.
func showProgress(ctx context.Context, cfg *contract.Config) bool {
	return cfg.Output == schema.TextOut && !shouldSuppressHeader(ctx)
}

// logHeader prints a concise, 2-line header for the run.
func logHeader(ctx context.Context, cfg *contract.Config, scope string) {
	if !showProgress(ctx, cfg) {
		return
	}
	pterm.Info.Printfln("Repo: %s (%s)", cfg.Repo, scope)
	pterm.Info.Printfln("Range: %s → %s", cfg.Window.From.Format(contract.DateTimeFormat), cfg.Window.To.Format(contract.DateTimeFormat))
}

// logTrendsHeader prints the header for a multi-week run.
func logTrendsHeader(ctx context.Context, cfg *contract.Config, weeks []schema.TimeWindow) {
	if !showProgress(ctx, cfg) || len(weeks) == 0 {
		return
	}
	pterm.Info.Printfln("Repo: %s (trends)", cfg.Repo)
	pterm.Info.Printfln("Weeks: %s → %s (%d points)", weeks[0].Label(), weeks[len(weeks)-1].Label(), len(weeks))
}

// progress wraps a pterm spinner that is a no-op when output is not interactive text.
type progress struct {
	spinner *pterm.SpinnerPrinter
}

// startProgress starts a spinner with the given message when progress is shown.
func startProgress(ctx context.Context, cfg *contract.Config, msg string) *progress {
	if !showProgress(ctx, cfg) {
		return &progress{}
	}
	spinner, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(msg)
	if err != nil {
		return &progress{}
	}
	return &progress{spinner: spinner}
}

// update replaces the spinner message.
func (p *progress) update(format string, args ...any) {
	if p.spinner != nil {
		p.spinner.UpdateText(fmt.Sprintf(format, args...))
	}
}

// stop ends the spinner.
func (p *progress) stop() {
	if p.spinner != nil {
		_ = p.spinner.Stop()
	}
}
