package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// MetricKey identifies one of the eight computed metrics.
	MetricKey string

	// DeploymentSource selects which records count as deployment events.
	DeploymentSource string

	// FailureSignal selects which records count as change failures.
	FailureSignal string

	// HydrationKind names an optional per-record enrichment call.
	HydrationKind string

	// PerformanceBand is the DORA performance level of a metric value.
	PerformanceBand string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
	PromOut    OutputMode = "prom"
)

// Metric keys, matching the JSON field names of MetricSet.
const (
	DeploymentFrequencyKey MetricKey = "deploymentFrequency"
	LeadTimeKey            MetricKey = "leadTime"
	ChangeFailureRateKey   MetricKey = "changeFailureRate"
	TimeToRestoreKey       MetricKey = "timeToRestore"
	CodeQualityKey         MetricKey = "codeQuality"
	ImpactKey              MetricKey = "impact"
	CollaborationKey       MetricKey = "collaboration"
	GrowthKey              MetricKey = "growth"
)

// All deployment sources supported.
const (
	AutoSource        DeploymentSource = "auto" // default
	DeploymentsSource DeploymentSource = "deployments"
	MergesSource      DeploymentSource = "merges"
)

// All failure signals supported.
const (
	DefectsSignal FailureSignal = "defects" // default
	RevertsSignal FailureSignal = "reverts"
)

// All hydration kinds supported.
const (
	HydratePRDetails   HydrationKind = "pr-details"
	HydratePRCommits   HydrationKind = "pr-commits"
	HydrateReviews     HydrationKind = "reviews"
	HydrateCommitFiles HydrationKind = "commit-files"
)

// DORA performance bands.
const (
	EliteBand  PerformanceBand = "Elite"
	HighBand   PerformanceBand = "High"
	MediumBand PerformanceBand = "Medium"
	LowBand    PerformanceBand = "Low"
	NoBand     PerformanceBand = ""
)

// Repository defaults used when nothing else is configured.
const (
	DefaultOwner = "chethanbr25"
	DefaultRepo  = "my-component-library"
)

// LabelDateFormat is the layout of window and trend labels.
const LabelDateFormat = "2006-01-02"

// AllMetricKeys lists the metrics in display order.
var AllMetricKeys = []MetricKey{
	DeploymentFrequencyKey,
	LeadTimeKey,
	ChangeFailureRateKey,
	TimeToRestoreKey,
	CodeQualityKey,
	ImpactKey,
	CollaborationKey,
	GrowthKey,
}

// AllHydrationKinds lists every hydration kind.
var AllHydrationKinds = []HydrationKind{HydratePRDetails, HydratePRCommits, HydrateReviews, HydrateCommitFiles}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	YAMLOut:    {},
	ParquetOut: {},
	PromOut:    {},
}

// ValidDeploymentSources lists all valid deployment sources.
var ValidDeploymentSources = map[DeploymentSource]struct{}{
	AutoSource:        {},
	DeploymentsSource: {},
	MergesSource:      {},
}

// ValidFailureSignals lists all valid failure signals.
var ValidFailureSignals = map[FailureSignal]struct{}{
	DefectsSignal: {},
	RevertsSignal: {},
}

// ValidHydrationKinds lists all valid hydration kinds.
var ValidHydrationKinds = map[HydrationKind]struct{}{
	HydratePRDetails:   {},
	HydratePRCommits:   {},
	HydrateReviews:     {},
	HydrateCommitFiles: {},
}
