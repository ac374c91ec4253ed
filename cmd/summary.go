package cmd

import (
	"github.com/huangsam/doralens/core"
	"github.com/spf13/cobra"
)

// summaryCmd prints the aggregate scorecard for the configured window.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the DORA scorecard for the whole repository",
	Long: `Fetch the window once and compute the eight metrics for the repository as a whole.

Examples:
  # Last 30 days of the default repository
  doralens summary

  # A specific repository and window, as JSON
  doralens summary --owner acme --repo widgets --start 2025-01-01 --end 2025-03-31 -o json`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteSummary, "Cannot compute summary"),
}
