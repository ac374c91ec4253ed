package contract

import (
	"errors"
	"fmt"
	"maps"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/huangsam/doralens/schema"
)

// Default values for configuration.
const (
	DefaultDays        = 30
	MaxDays            = 365
	DefaultWeeks       = 4
	MaxWeeks           = 52
	DefaultPerPage     = 100
	MaxPerPage         = 100
	DefaultMaxPages    = 1
	DefaultPrecision   = 1
	MaxPrecision       = 4
	DefaultDefectLabel = "bug"
	DefaultHydrate     = "all"
	DefaultAddr        = ":8080"
	DefaultLogLevel    = "info"
)

// DefaultWorkers is the default number of concurrent hydration workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for metrics computation.
// This struct remains the "final, validated" config.
type Config struct {
	Repo   schema.RepoRef
	Token  string // Please use env var as this is plaintext
	APIURL string // Empty selects the public API

	Window schema.TimeWindow
	Days   int
	Weeks  int

	PerPage  int
	MaxPages int
	Workers  int
	Parallel bool
	Timeout  time.Duration

	DeploymentSource schema.DeploymentSource
	FailureSignal    schema.FailureSignal
	DefectLabel      string
	Hydrate          map[schema.HydrationKind]bool

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Chart      bool

	LogLevel  string
	LogFormat string

	Addr  string
	Watch bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Repository and credentials ---
	Owner  string `mapstructure:"owner"`
	Repo   string `mapstructure:"repo"`
	Token  string `mapstructure:"token"`
	APIURL string `mapstructure:"api-url"`

	// --- Window ---
	Days  int    `mapstructure:"days"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
	Weeks int    `mapstructure:"weeks"`

	// --- Fetching ---
	PerPage  int    `mapstructure:"per-page"`
	MaxPages int    `mapstructure:"max-pages"`
	Workers  int    `mapstructure:"workers"`
	Parallel bool   `mapstructure:"parallel"`
	Timeout  string `mapstructure:"timeout"`
	Hydrate  string `mapstructure:"hydrate"`

	// --- Formula options ---
	DeploymentSource string `mapstructure:"deployment-source"`
	FailureSignal    string `mapstructure:"failure-signal"`
	DefectLabel      string `mapstructure:"defect-label"`

	// --- Output ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	Chart      bool   `mapstructure:"chart"`

	// --- Logging ---
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`

	// --- Fields from serveCmd.Flags() ---
	Addr  string `mapstructure:"addr"`
	Watch bool   `mapstructure:"watch"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Hydrate != nil {
		clone.Hydrate = make(map[schema.HydrationKind]bool, len(c.Hydrate))
		maps.Copy(clone.Hydrate, c.Hydrate)
	}
	return &clone
}

// CloneWithWindow creates a copy of the Config with a new window.
func (c *Config) CloneWithWindow(window schema.TimeWindow) *Config {
	clone := c.Clone()
	clone.Window = window
	return clone
}

// Hydrates reports whether the given enrichment call is enabled.
func (c *Config) Hydrates(kind schema.HydrationKind) bool {
	return c.Hydrate[kind]
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Every invalid field is reported.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	var result *multierror.Error
	steps := []func(*Config, *ConfigRawInput) error{
		processRepository,
		processFetching,
		processFormulaOptions,
		processOutput,
		processLogging,
		processServe,
	}
	for _, step := range steps {
		if err := step(cfg, input); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := processWindow(cfg, input, now); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// processRepository resolves the repository reference and credential.
func processRepository(cfg *Config, input *ConfigRawInput) error {
	cfg.Repo = schema.RepoRef{
		Owner: strings.TrimSpace(input.Owner),
		Name:  strings.TrimSpace(input.Repo),
	}
	if cfg.Repo.Owner == "" {
		cfg.Repo.Owner = schema.DefaultOwner
	}
	if cfg.Repo.Name == "" {
		cfg.Repo.Name = schema.DefaultRepo
	}
	if strings.Contains(cfg.Repo.Owner, "/") || strings.Contains(cfg.Repo.Name, "/") {
		return fmt.Errorf("owner and repo must not contain '/' (received %s/%s)", cfg.Repo.Owner, cfg.Repo.Name)
	}
	cfg.Token = strings.TrimSpace(input.Token)
	cfg.APIURL = strings.TrimSpace(input.APIURL)
	if cfg.APIURL != "" && !strings.HasSuffix(cfg.APIURL, "/") {
		cfg.APIURL += "/"
	}
	return nil
}

// processFetching validates paging, concurrency and hydration inputs.
func processFetching(cfg *Config, input *ConfigRawInput) error {
	var result *multierror.Error

	if input.PerPage <= 0 || input.PerPage > MaxPerPage {
		result = multierror.Append(result, fmt.Errorf("per-page must be between 1 and %d (received %d)", MaxPerPage, input.PerPage))
	}
	cfg.PerPage = input.PerPage

	if input.MaxPages <= 0 {
		result = multierror.Append(result, fmt.Errorf("max-pages must be greater than 0 (received %d)", input.MaxPages))
	}
	cfg.MaxPages = input.MaxPages

	if input.Workers <= 0 {
		result = multierror.Append(result, fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers))
	}
	cfg.Workers = input.Workers
	cfg.Parallel = input.Parallel

	timeout, err := ParseTimeout(input.Timeout)
	if err != nil {
		result = multierror.Append(result, err)
	}
	cfg.Timeout = timeout

	kinds, unknown := schema.ParseHydrationKinds(input.Hydrate)
	if len(unknown) > 0 {
		result = multierror.Append(result, fmt.Errorf("invalid hydrate kinds %v. must be pr-details, pr-commits, reviews, commit-files, all, none", unknown))
	}
	cfg.Hydrate = kinds

	return result.ErrorOrNil()
}

// processFormulaOptions validates the aggregation switches.
func processFormulaOptions(cfg *Config, input *ConfigRawInput) error {
	var result *multierror.Error

	cfg.DeploymentSource = schema.DeploymentSource(strings.ToLower(input.DeploymentSource))
	if _, ok := schema.ValidDeploymentSources[cfg.DeploymentSource]; !ok {
		result = multierror.Append(result, fmt.Errorf("invalid deployment source '%s'. must be auto, deployments, merges", input.DeploymentSource))
	}

	cfg.FailureSignal = schema.FailureSignal(strings.ToLower(input.FailureSignal))
	if _, ok := schema.ValidFailureSignals[cfg.FailureSignal]; !ok {
		result = multierror.Append(result, fmt.Errorf("invalid failure signal '%s'. must be defects, reverts", input.FailureSignal))
	}

	cfg.DefectLabel = strings.TrimSpace(input.DefectLabel)
	if cfg.DefectLabel == "" {
		result = multierror.Append(result, errors.New("defect-label cannot be empty"))
	}

	return result.ErrorOrNil()
}

// processOutput validates output format and presentation inputs.
func processOutput(cfg *Config, input *ConfigRawInput) error {
	var result *multierror.Error

	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Chart = input.Chart

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid --color value: %w", err))
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > MaxPrecision {
		result = multierror.Append(result, fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision))
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		result = multierror.Append(result, fmt.Errorf("invalid output format '%s'. must be text, json, csv, yaml, parquet, prom", input.Output))
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		result = multierror.Append(result, errors.New("parquet output requires --output-file"))
	}

	return result.ErrorOrNil()
}

// processLogging validates the logging inputs without applying them.
func processLogging(cfg *Config, input *ConfigRawInput) error {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(input.LogFormat))

	switch cfg.LogLevel {
	case "panic", "fatal", "error", "warn", "warning", "info", "debug", "trace":
	default:
		return fmt.Errorf("invalid log level '%s'", input.LogLevel)
	}
	switch cfg.LogFormat {
	case "", TextLogFormat, JSONLogFormat:
	default:
		return fmt.Errorf("invalid log format '%s'. must be text or json", input.LogFormat)
	}
	return nil
}

// processServe handles the server inputs.
func processServe(cfg *Config, input *ConfigRawInput) error {
	cfg.Addr = strings.TrimSpace(input.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.Watch = input.Watch
	return nil
}

// processWindow handles the date parsing and time range validation.
func processWindow(cfg *Config, input *ConfigRawInput, now time.Time) error {
	var result *multierror.Error

	if input.Days <= 0 || input.Days > MaxDays {
		result = multierror.Append(result, fmt.Errorf("days must be between 1 and %d (received %d)", MaxDays, input.Days))
	}
	cfg.Days = input.Days

	if input.Weeks <= 0 || input.Weeks > MaxWeeks {
		result = multierror.Append(result, fmt.Errorf("weeks must be between 1 and %d (received %d)", MaxWeeks, input.Weeks))
	}
	cfg.Weeks = input.Weeks

	if result.ErrorOrNil() != nil {
		return result
	}

	end := now
	if input.End != "" {
		t, err := ParseTimeInput(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date '%s': %w", input.End, err)
		}
		end = t
	}

	start := end.AddDate(0, 0, -cfg.Days)
	if input.Start != "" {
		t, err := ParseTimeInput(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date '%s': %w", input.Start, err)
		}
		start = t
	}

	if !start.Before(end) {
		return fmt.Errorf("start time (%s) must be before end time (%s)", start.Format(DateTimeFormat), end.Format(DateTimeFormat))
	}
	cfg.Window = schema.TimeWindow{From: start, To: end}
	return nil
}
