package outwriter

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/huangsam/doralens/core/agg"
	"github.com/huangsam/doralens/schema"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// MetricPrefix namespaces every exported gauge.
const MetricPrefix = "doralens_"

// sample is one labelled scorecard destined for the gauge families.
type sample struct {
	labels  [][2]string
	metrics schema.MetricSet
}

// PromName returns the exposition name of a metric key, e.g. doralens_lead_time.
func PromName(key schema.MetricKey) string {
	var b strings.Builder
	b.WriteString(MetricPrefix)
	for i, r := range string(key) {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SummaryFamilies exposes an aggregate scorecard as one gauge per metric.
func SummaryFamilies(result schema.SummaryResult) []*dto.MetricFamily {
	return buildFamilies([]sample{{
		labels:  [][2]string{{"repo", result.Repo.String()}},
		metrics: result.Metrics,
	}})
}

// CurrentFamilies exposes the aggregate and every contributor.
// Contributor samples carry a contributor label; the aggregate does not.
func CurrentFamilies(result schema.CurrentResult) []*dto.MetricFamily {
	repo := result.Repo.String()
	samples := []sample{{labels: [][2]string{{"repo", repo}}, metrics: result.Aggregate}}
	for _, c := range result.Contributors {
		samples = append(samples, sample{
			labels:  [][2]string{{"repo", repo}, {"contributor", c.Name}},
			metrics: c.MetricSet,
		})
	}
	return buildFamilies(samples)
}

// TrendFamilies exposes the weekly aggregate of a trend, labelled by week.
func TrendFamilies(result schema.TrendResult) []*dto.MetricFamily {
	repo := result.Repo.String()
	samples := make([]sample, 0, len(result.Points))
	for _, p := range result.Points {
		samples = append(samples, sample{
			labels:  [][2]string{{"repo", repo}, {"week", p.Label}},
			metrics: p.Aggregate,
		})
	}
	return buildFamilies(samples)
}

// WritePrometheus writes metric families in the text exposition format.
func WritePrometheus(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func buildFamilies(samples []sample) []*dto.MetricFamily {
	families := make([]*dto.MetricFamily, 0, len(schema.AllMetricKeys))
	for _, def := range agg.Definitions() {
		mf := &dto.MetricFamily{
			Name: ptr(PromName(def.Key)),
			Help: ptr(fmt.Sprintf("%s (%s)", def.Name, def.Unit)),
			Type: dto.MetricType_GAUGE.Enum(),
		}
		for _, s := range samples {
			m := &dto.Metric{Gauge: &dto.Gauge{Value: ptr(s.metrics.Get(def.Key))}}
			for _, l := range s.labels {
				m.Label = append(m.Label, &dto.LabelPair{Name: ptr(l[0]), Value: ptr(l[1])})
			}
			mf.Metric = append(mf.Metric, m)
		}
		families = append(families, mf)
	}
	return families
}

func ptr[T any](v T) *T {
	return &v
}
