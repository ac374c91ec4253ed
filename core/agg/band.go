package agg

import "github.com/huangsam/doralens/schema"

// threshold is one band cutoff. For ascending metrics a value at or above
// the limit reaches the band. For descending metrics it must be at or below.
type threshold struct {
	limit float64
	band  schema.PerformanceBand
}

var (
	deploymentFrequencyBands = []threshold{{7, schema.EliteBand}, {1, schema.HighBand}, {0.25, schema.MediumBand}}
	leadTimeBands            = []threshold{{24, schema.EliteBand}, {168, schema.HighBand}, {720, schema.MediumBand}}
	changeFailureRateBands   = []threshold{{15, schema.EliteBand}, {30, schema.HighBand}, {45, schema.MediumBand}}
	timeToRestoreBands       = []threshold{{1, schema.EliteBand}, {24, schema.HighBand}, {168, schema.MediumBand}}
)

// Band maps a DORA metric value to its performance band.
// Proxy metrics have no band.
func Band(key schema.MetricKey, value float64) schema.PerformanceBand {
	switch key {
	case schema.DeploymentFrequencyKey:
		return bandAtLeast(value, deploymentFrequencyBands)
	case schema.LeadTimeKey:
		return bandAtMost(value, leadTimeBands)
	case schema.ChangeFailureRateKey:
		return bandAtMost(value, changeFailureRateBands)
	case schema.TimeToRestoreKey:
		return bandAtMost(value, timeToRestoreBands)
	default:
		return schema.NoBand
	}
}

func bandAtLeast(value float64, bands []threshold) schema.PerformanceBand {
	for _, t := range bands {
		if value >= t.limit {
			return t.band
		}
	}
	return schema.LowBand
}

func bandAtMost(value float64, bands []threshold) schema.PerformanceBand {
	for _, t := range bands {
		if value <= t.limit {
			return t.band
		}
	}
	return schema.LowBand
}
