package schema

// TrendPoint represents a single week in the trend.
type TrendPoint struct {
	Label        string               `json:"label" yaml:"label"` // yyyy-MM-dd of the week start
	Window       TimeWindow           `json:"window" yaml:"window"`
	Aggregate    MetricSet            `json:"aggregate" yaml:"aggregate"`
	Contributors map[string]MetricSet `json:"contributors" yaml:"contributors"`
}

// TrendResult holds the trend points, oldest first.
type TrendResult struct {
	Repo   RepoRef      `json:"repo" yaml:"repo"`
	Points []TrendPoint `json:"points" yaml:"points"`
}

// ContributorNames returns every contributor seen across the points,
// in first-seen order.
func (t TrendResult) ContributorNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range t.Points {
		for _, name := range sortedKeys(p.Contributors) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
