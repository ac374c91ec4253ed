package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/doralens/core"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/internal/ghclient"
	"github.com/huangsam/doralens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// tokenEnvVars are checked in order for the GitHub credential.
var tokenEnvVars = []string{"DORALENS_TOKEN", "GITHUB_PAT", "GITHUB_TOKEN"}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "doralens",
	Short: "Compute DORA metrics for a GitHub repository.",
	Long: `Doralens fetches commits, pull requests, issues and deployments from GitHub
and turns them into deployment frequency, lead time, change failure rate and
time to restore, overall and per contributor.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".doralens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("DORALENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv(append([]string{"token"}, tokenEnvVars...)...)

	viper.SetDefault("owner", schema.DefaultOwner)
	viper.SetDefault("repo", schema.DefaultRepo)
	viper.SetDefault("days", contract.DefaultDays)
	viper.SetDefault("weeks", contract.DefaultWeeks)
	viper.SetDefault("per-page", contract.DefaultPerPage)
	viper.SetDefault("max-pages", contract.DefaultMaxPages)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("hydrate", contract.DefaultHydrate)
	viper.SetDefault("deployment-source", schema.AutoSource)
	viper.SetDefault("failure-signal", schema.DefectsSignal)
	viper.SetDefault("defect-label", contract.DefaultDefectLabel)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("addr", contract.DefaultAddr)
}

// readConfigFile merges the config file into viper. A missing file is fine.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// loadConfig unmarshals viper into raw and validates it into a fresh config.
func loadConfig(raw *contract.ConfigRawInput, now time.Time) (*contract.Config, error) {
	if err := viper.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	next := &contract.Config{}
	if err := contract.ProcessAndValidate(next, raw, now); err != nil {
		return nil, err
	}
	return next, nil
}

// sharedSetup unmarshals config, runs validation and applies logging.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal and validate into the global config.
	next, err := loadConfig(input, time.Now())
	if err != nil {
		return err
	}
	*cfg = *next

	// 3. Apply process-wide presentation and logging settings.
	if err := contract.ConfigureLogging(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		return err
	}
	color.NoColor = !cfg.UseColors
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// newClient builds the GitHub client for the current config.
func newClient(c *contract.Config) contract.RepoClient {
	client, err := ghclient.NewFromConfig(c)
	if err != nil {
		contract.LogFatal("Cannot create GitHub client", err)
	}
	return client
}

// runExecutor adapts a core executor into a cobra Run function that exits
// with the given message on failure.
func runExecutor(exec core.ExecutorFunc, failure string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := exec(rootCtx, cfg, newClient(cfg)); err != nil {
			contract.LogFatal(failure, err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
