package schema

// MetricSet is the reduced scorecard for a window.
// Field names are fixed by the public HTTP endpoint.
type MetricSet struct {
	DeploymentFrequency float64 `json:"deploymentFrequency" yaml:"deploymentFrequency"`
	LeadTime            float64 `json:"leadTime" yaml:"leadTime"`
	ChangeFailureRate   float64 `json:"changeFailureRate" yaml:"changeFailureRate"`
	TimeToRestore       float64 `json:"timeToRestore" yaml:"timeToRestore"`
	CodeQuality         float64 `json:"codeQuality" yaml:"codeQuality"`
	Impact              float64 `json:"impact" yaml:"impact"`
	Collaboration       float64 `json:"collaboration" yaml:"collaboration"`
	Growth              float64 `json:"growth" yaml:"growth"`
}

// Get returns the value for a metric key, or 0 for an unknown key.
func (m MetricSet) Get(key MetricKey) float64 {
	switch key {
	case DeploymentFrequencyKey:
		return m.DeploymentFrequency
	case LeadTimeKey:
		return m.LeadTime
	case ChangeFailureRateKey:
		return m.ChangeFailureRate
	case TimeToRestoreKey:
		return m.TimeToRestore
	case CodeQualityKey:
		return m.CodeQuality
	case ImpactKey:
		return m.Impact
	case CollaborationKey:
		return m.Collaboration
	case GrowthKey:
		return m.Growth
	default:
		return 0
	}
}

// Values returns the metric values in AllMetricKeys order.
func (m MetricSet) Values() []float64 {
	values := make([]float64, len(AllMetricKeys))
	for i, key := range AllMetricKeys {
		values[i] = m.Get(key)
	}
	return values
}

// ContributorMetric is one contributor's scorecard for a window.
type ContributorMetric struct {
	Name      string `json:"name" yaml:"name"`
	MetricSet `yaml:",inline"`
}

// SummaryResult is the ungrouped, aggregate-only result for a window.
type SummaryResult struct {
	Repo    RepoRef          `json:"repo" yaml:"repo"`
	Window  TimeWindow       `json:"window" yaml:"window"`
	Metrics MetricSet        `json:"metrics" yaml:"metrics"`
	Source  DeploymentSource `json:"deploymentSource" yaml:"deploymentSource"`
}

// CurrentResult holds the aggregate and per-contributor scorecards for a window.
type CurrentResult struct {
	Repo         RepoRef             `json:"repo" yaml:"repo"`
	Window       TimeWindow          `json:"window" yaml:"window"`
	Aggregate    MetricSet           `json:"aggregate" yaml:"aggregate"`
	Contributors []ContributorMetric `json:"contributors" yaml:"contributors"`
	Source       DeploymentSource    `json:"deploymentSource" yaml:"deploymentSource"`
}

// MetricDefinition documents one metric for display purposes.
type MetricDefinition struct {
	Key     MetricKey `json:"key" yaml:"key"`
	Name    string    `json:"name" yaml:"name"`
	Unit    string    `json:"unit" yaml:"unit"`
	Formula string    `json:"formula" yaml:"formula"`
	Default string    `json:"default" yaml:"default"`
	Proxy   bool      `json:"proxy" yaml:"proxy"`
}

// MetricsRenderModel contains all processed data needed for displaying metrics definitions.
type MetricsRenderModel struct {
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Metrics     []MetricDefinition `json:"metrics" yaml:"metrics"`
	Notes       map[string]string  `json:"notes" yaml:"notes"`
}
