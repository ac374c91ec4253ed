// Package cmd defines the command-line interface for doralens.
package cmd

import (
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("owner", schema.DefaultOwner, "Repository owner")
	rootCmd.PersistentFlags().String("repo", schema.DefaultRepo, "Repository name")
	rootCmd.PersistentFlags().String("api-url", "", "GitHub API base URL (GitHub Enterprise)")
	rootCmd.PersistentFlags().IntP("days", "d", contract.DefaultDays, "Trailing window size in days")
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601 or time ago")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601 or time ago")
	rootCmd.PersistentFlags().IntP("weeks", "w", contract.DefaultWeeks, "Number of weekly trend points")
	rootCmd.PersistentFlags().Int("per-page", contract.DefaultPerPage, "Items requested per API page")
	rootCmd.PersistentFlags().Int("max-pages", contract.DefaultMaxPages, "Maximum pages fetched per collection")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent hydration workers")
	rootCmd.PersistentFlags().Bool("parallel", false, "Fetch collections concurrently")
	rootCmd.PersistentFlags().String("timeout", "", "Deadline for one fetch (e.g. 30s, 2m)")
	rootCmd.PersistentFlags().String("hydrate", contract.DefaultHydrate, "Per-PR hydration: pr-details,pr-commits,reviews,commit-files or all or none")
	rootCmd.PersistentFlags().String("deployment-source", string(schema.AutoSource), "Deployment events: auto or deployments or merges")
	rootCmd.PersistentFlags().String("failure-signal", string(schema.DefectsSignal), "Change failure signal: defects or reverts")
	rootCmd.PersistentFlags().String("defect-label", contract.DefaultDefectLabel, "Issue label that marks a defect")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or json or csv or yaml or parquet or prom")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("chart", false, "Render bar charts in text output")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: error or warn or info or debug or trace")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address for the HTTP server")
	serveCmd.Flags().Bool("watch", false, "Reload the config file on change without restarting")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}
}
