// Package core has core logic for fetching, aggregating and presenting delivery metrics.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/doralens/core/agg"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/internal/outwriter"
	"github.com/huangsam/doralens/schema"
)

// SummaryDays is the fixed window of the public metrics endpoint.
const SummaryDays = 30

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.RepoClient) error

// ExecuteSummary computes the aggregate scorecard and prints it.
// It serves as the main entry point for the 'summary' command.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, client contract.RepoClient) error {
	start := time.Now()
	result, err := GetSummaryResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSummary(result, cfg, duration)
}

// ExecuteCurrent computes the aggregate and per-contributor scorecards and prints them.
// It serves as the main entry point for the 'current' command.
func ExecuteCurrent(ctx context.Context, cfg *contract.Config, client contract.RepoClient) error {
	start := time.Now()
	result, err := GetCurrentResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteCurrent(result, cfg, duration)
}

// ExecuteTrends computes one scorecard per recent week and prints them.
// It serves as the main entry point for the 'trends' command.
func ExecuteTrends(ctx context.Context, cfg *contract.Config, client contract.RepoClient) error {
	start := time.Now()
	result, err := GetTrendResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteTrends(result, cfg, duration)
}

// ExecuteMetrics displays the definitions of every metric.
// This is a static display that does not call the repository API.
func ExecuteMetrics(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteMetrics(GetMetricsDefinitions(), cfg)
}

// GetSummaryResults fetches the configured window and reduces it without grouping.
func GetSummaryResults(ctx context.Context, cfg *contract.Config, client contract.RepoClient) (schema.SummaryResult, error) {
	logHeader(ctx, cfg, "summary")
	set, err := fetchWithProgress(ctx, cfg, client, cfg.Window)
	if err != nil {
		return schema.SummaryResult{}, err
	}
	opts := agg.OptionsFromConfig(cfg)
	return schema.SummaryResult{
		Repo:    cfg.Repo,
		Window:  cfg.Window,
		Metrics: agg.Aggregate(set, opts),
		Source:  agg.ResolveSource(set, opts),
	}, nil
}

// GetCurrentResults fetches the configured window and reduces it both
// in aggregate and per contributor from the same record set.
func GetCurrentResults(ctx context.Context, cfg *contract.Config, client contract.RepoClient) (schema.CurrentResult, error) {
	logHeader(ctx, cfg, "contributors")
	set, err := fetchWithProgress(ctx, cfg, client, cfg.Window)
	if err != nil {
		return schema.CurrentResult{}, err
	}
	opts := agg.OptionsFromConfig(cfg)
	return schema.CurrentResult{
		Repo:         cfg.Repo,
		Window:       cfg.Window,
		Aggregate:    agg.Aggregate(set, opts),
		Contributors: agg.ByContributor(set, opts),
		Source:       agg.ResolveSource(set, opts),
	}, nil
}

// GetTrendResults computes one trend point per calendar week, oldest first.
func GetTrendResults(ctx context.Context, cfg *contract.Config, client contract.RepoClient) (schema.TrendResult, error) {
	// The window end is exclusive, so anchor on its last instant.
	weeks := TrendWeeks(cfg.Window.To.Add(-time.Nanosecond), cfg.Weeks)
	logTrendsHeader(ctx, cfg, weeks)

	p := startProgress(ctx, cfg, fmt.Sprintf("Fetching %d weeks of %s", len(weeks), cfg.Repo))
	defer p.stop()

	points, err := runTrends(ctx, cfg, NewFetcher(client, cfg), weeks, p)
	if err != nil {
		return schema.TrendResult{}, err
	}
	return schema.TrendResult{Repo: cfg.Repo, Points: points}, nil
}

// GetMetricsDefinitions builds the render model for the metric definitions.
func GetMetricsDefinitions() *schema.MetricsRenderModel {
	return &schema.MetricsRenderModel{
		Title:       "DORA Metrics Definitions",
		Description: "Four delivery metrics plus four proxy scores, computed from one repository's API records.",
		Metrics:     agg.Definitions(),
		Notes: map[string]string{
			"proxies":     "Code quality, impact, collaboration and growth are illustrative proxies, not DORA measures.",
			"deployments": "Deployment frequency uses deployments when any exist in the window, otherwise merged pull requests.",
			"defaults":    "Empty denominators resolve to the listed default instead of NaN.",
			"growth":      "Per-contributor growth may sum above the aggregate when contributors share files.",
		},
	}
}

// fetchWithProgress fetches one window behind a spinner.
func fetchWithProgress(ctx context.Context, cfg *contract.Config, client contract.RepoClient, window schema.TimeWindow) (schema.RecordSet, error) {
	p := startProgress(ctx, cfg, fmt.Sprintf("Fetching %s", cfg.Repo))
	defer p.stop()
	return NewFetcher(client, cfg).FetchWindow(ctx, cfg.Repo, window)
}
