package cmd

import (
	"github.com/huangsam/doralens/core"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display formulas and definitions for all metrics",
	Long: `Show the formula, unit and default of every metric, and whether it is a proxy.

Proxy metrics (code quality, impact, collaboration, growth) are illustrative
and are never assigned a performance band.

No GitHub requests are made - this is purely informational.

Examples:
  # Show definitions
  doralens metrics

  # Machine-readable definitions
  doralens metrics -o yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
