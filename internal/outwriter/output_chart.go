package outwriter

import (
	"fmt"
	"io"
	"math"

	"github.com/huangsam/doralens/core/agg"
	"github.com/huangsam/doralens/schema"
	"github.com/pterm/pterm"
)

// scorecardBars builds one bar per metric with a positive rounded value.
func scorecardBars(m schema.MetricSet) pterm.Bars {
	var bars pterm.Bars
	for _, key := range schema.AllMetricKeys {
		value := int(math.Round(m.Get(key)))
		if value <= 0 {
			continue
		}
		bars = append(bars, pterm.Bar{Label: columnTitles[key], Value: value})
	}
	return bars
}

// trendBars builds one bar per week for a single metric.
func trendBars(result schema.TrendResult, key schema.MetricKey) pterm.Bars {
	bars := make(pterm.Bars, 0, len(result.Points))
	positive := false
	for _, p := range result.Points {
		value := int(math.Round(p.Aggregate.Get(key)))
		if value > 0 {
			positive = true
		}
		bars = append(bars, pterm.Bar{Label: p.Label, Value: max(value, 0)})
	}
	if !positive {
		return nil
	}
	return bars
}

// contributorBars builds one bar per contributor for a single metric.
func contributorBars(contributors []schema.ContributorMetric, key schema.MetricKey) pterm.Bars {
	bars := make(pterm.Bars, 0, len(contributors))
	positive := false
	for _, c := range contributors {
		value := int(math.Round(c.Get(key)))
		if value > 0 {
			positive = true
		}
		bars = append(bars, pterm.Bar{Label: c.Name, Value: max(value, 0)})
	}
	if !positive {
		return nil
	}
	return bars
}

// writeBars renders a horizontal bar chart, or nothing for an empty set.
func writeBars(w io.Writer, title string, bars pterm.Bars) error {
	if len(bars) == 0 {
		return nil
	}
	chart, err := pterm.DefaultBarChart.
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", title, chart)
	return err
}

// writeScorecardChart charts the rounded metric values of a scorecard.
func writeScorecardChart(w io.Writer, m schema.MetricSet) error {
	return writeBars(w, "Scorecard", scorecardBars(m))
}

// writeContributorCharts charts every metric across contributors.
func writeContributorCharts(w io.Writer, contributors []schema.ContributorMetric) error {
	for _, def := range agg.Definitions() {
		title := fmt.Sprintf("%s (%s) by contributor", def.Name, def.Unit)
		if err := writeBars(w, title, contributorBars(contributors, def.Key)); err != nil {
			return err
		}
	}
	return nil
}
