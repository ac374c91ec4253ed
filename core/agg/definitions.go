package agg

import "github.com/huangsam/doralens/schema"

// Definitions documents every metric in display order.
func Definitions() []schema.MetricDefinition {
	return []schema.MetricDefinition{
		{
			Key:     schema.DeploymentFrequencyKey,
			Name:    "Deployment Frequency",
			Unit:    "/week",
			Formula: "deployments (or merged pull requests) in window / (window days / 7)",
			Default: "0",
		},
		{
			Key:     schema.LeadTimeKey,
			Name:    "Lead Time for Changes",
			Unit:    "hours",
			Formula: "mean(merged at - first commit) over pull requests merged in window",
			Default: "0",
		},
		{
			Key:     schema.ChangeFailureRateKey,
			Name:    "Change Failure Rate",
			Unit:    "%",
			Formula: "100 * failures / pull requests merged in window",
			Default: "0",
		},
		{
			Key:     schema.TimeToRestoreKey,
			Name:    "Time to Restore Service",
			Unit:    "hours",
			Formula: "mean(closed at - created at) over defect issues closed in window",
			Default: "0",
		},
		{
			Key:     schema.CodeQualityKey,
			Name:    "Code Quality",
			Unit:    "/100",
			Formula: "100 - mean(review comments) over pull requests merged in window",
			Default: "100",
			Proxy:   true,
		},
		{
			Key:     schema.ImpactKey,
			Name:    "Impact",
			Unit:    "issues",
			Formula: "issues closed in window",
			Default: "0",
			Proxy:   true,
		},
		{
			Key:     schema.CollaborationKey,
			Name:    "Collaboration",
			Unit:    "comments",
			Formula: "sum(review comments) over merged pull requests per contributor; min(mean(reviews) * 20, 100) in aggregate",
			Default: "0",
			Proxy:   true,
		},
		{
			Key:     schema.GrowthKey,
			Name:    "Growth",
			Unit:    "files",
			Formula: "distinct file paths touched by commits in window",
			Default: "0",
			Proxy:   true,
		},
	}
}

// Unit returns the display unit of a metric.
func Unit(key schema.MetricKey) string {
	for _, d := range Definitions() {
		if d.Key == key {
			return d.Unit
		}
	}
	return ""
}
