package cmd

import (
	"github.com/huangsam/doralens/core"
	"github.com/spf13/cobra"
)

// trendsCmd prints weekly metrics for the trailing weeks.
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show weekly metrics over the trailing weeks",
	Long: `Split the trailing weeks into Sunday-aligned buckets and compute the metrics
for each week, overall and per contributor. Weeks are listed oldest first.

Examples:
  # Default four weeks
  doralens trends

  # A quarter of weekly points as CSV
  doralens trends --weeks 13 -o csv --output-file trends.csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteTrends, "Cannot compute trends"),
}
