package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOf(t *testing.T) {
	// 2025-11-05 is a Wednesday.
	wed := time.Date(2025, time.November, 5, 15, 30, 0, 0, time.UTC)
	week := WeekOf(wed)

	assert.Equal(t, time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC), week.From)
	assert.Equal(t, time.Date(2025, time.November, 9, 0, 0, 0, 0, time.UTC), week.To)
	assert.Equal(t, time.Sunday, week.From.Weekday())
	assert.Equal(t, "2025-11-02", week.Label())
	assert.InDelta(t, 7.0, week.Days(), 1e-9)
	assert.InDelta(t, 1.0, week.Weeks(), 1e-9)
}

func TestWeekOfSunday(t *testing.T) {
	sun := time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sun, WeekOf(sun).From)

	sat := time.Date(2025, time.November, 8, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, sun, WeekOf(sat).From)
}

func TestTimeWindowContains(t *testing.T) {
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	w := TimeWindow{From: from, To: from.AddDate(0, 0, 7)}

	assert.True(t, w.Contains(from), "From is inclusive")
	assert.True(t, w.Contains(from.Add(36*time.Hour)))
	assert.False(t, w.Contains(w.To), "To is exclusive")
	assert.False(t, w.Contains(from.Add(-time.Second)))

	inside := from.Add(time.Hour)
	assert.True(t, w.ContainsPtr(&inside))
	assert.False(t, w.ContainsPtr(nil))
}

func TestNewTrailingWindow(t *testing.T) {
	now := time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC)
	w := NewTrailingWindow(now, 30)
	assert.Equal(t, now, w.To)
	assert.Equal(t, time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC), w.From)
	assert.InDelta(t, 30.0, w.Days(), 1e-9)
	assert.False(t, w.IsZero())
	assert.True(t, TimeWindow{}.IsZero())
}

func TestMetricSetJSONFields(t *testing.T) {
	data, err := json.Marshal(MetricSet{DeploymentFrequency: 1.5, Growth: 3})
	require.NoError(t, err)

	var fields map[string]float64
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Len(t, fields, len(AllMetricKeys))
	for _, key := range AllMetricKeys {
		assert.Contains(t, fields, string(key))
	}
	assert.InDelta(t, 1.5, fields["deploymentFrequency"], 1e-9)
	assert.InDelta(t, 3.0, fields["growth"], 1e-9)
}

func TestMetricSetGet(t *testing.T) {
	m := MetricSet{
		DeploymentFrequency: 1,
		LeadTime:            2,
		ChangeFailureRate:   3,
		TimeToRestore:       4,
		CodeQuality:         5,
		Impact:              6,
		Collaboration:       7,
		Growth:              8,
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, m.Values())
	assert.Zero(t, m.Get(MetricKey("unknown")))
}

func TestContributorMetricFlattensJSON(t *testing.T) {
	data, err := json.Marshal(ContributorMetric{Name: "alice", MetricSet: MetricSet{Impact: 2}})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "alice", fields["name"])
	assert.InDelta(t, 2.0, fields["impact"], 1e-9)
}

func TestTrendResultContributorNames(t *testing.T) {
	result := TrendResult{Points: []TrendPoint{
		{Contributors: map[string]MetricSet{"bob": {}, "alice": {}}},
		{Contributors: map[string]MetricSet{"carol": {}, "alice": {}}},
	}}
	assert.Equal(t, []string{"alice", "bob", "carol"}, result.ContributorNames())
}

func TestRepoRefString(t *testing.T) {
	assert.Equal(t, "chethanbr25/my-component-library", RepoRef{Owner: DefaultOwner, Name: DefaultRepo}.String())
}
