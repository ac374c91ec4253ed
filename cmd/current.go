package cmd

import (
	"github.com/huangsam/doralens/core"
	"github.com/spf13/cobra"
)

// currentCmd prints the scorecard alongside a per-contributor breakdown.
var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the scorecard and per-contributor metrics",
	Long: `Compute the aggregate scorecard and the same metrics grouped by contributor.

Contributors known to the repository are listed first, followed by anyone else
who authored a pull request or commit in the window.

Examples:
  # Last 14 days with bar charts
  doralens current --days 14 --chart

  # Export contributor rows for analysis
  doralens current -o parquet --output-file contributors.parquet`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteCurrent, "Cannot compute contributor metrics"),
}
