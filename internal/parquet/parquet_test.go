package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/doralens/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	repo      = schema.RepoRef{Owner: "acme", Name: "widgets"}
	weekStart = time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC)
	window    = schema.TimeWindow{From: weekStart, To: weekStart.AddDate(0, 0, 7)}
)

func sampleCurrent() schema.CurrentResult {
	return schema.CurrentResult{
		Repo:      repo,
		Window:    window,
		Aggregate: schema.MetricSet{DeploymentFrequency: 3, LeadTime: 20, CodeQuality: 97, Growth: 4},
		Contributors: []schema.ContributorMetric{
			{Name: "alice", MetricSet: schema.MetricSet{DeploymentFrequency: 2, LeadTime: 15}},
			{Name: "bob", MetricSet: schema.MetricSet{DeploymentFrequency: 1, LeadTime: 30}},
		},
	}
}

func sampleTrend() schema.TrendResult {
	prev := schema.TimeWindow{From: weekStart.AddDate(0, 0, -7), To: weekStart}
	return schema.TrendResult{
		Repo: repo,
		Points: []schema.TrendPoint{
			{
				Label:        prev.Label(),
				Window:       prev,
				Aggregate:    schema.MetricSet{DeploymentFrequency: 1},
				Contributors: map[string]schema.MetricSet{"bob": {DeploymentFrequency: 1}},
			},
			{
				Label:     window.Label(),
				Window:    window,
				Aggregate: schema.MetricSet{DeploymentFrequency: 3},
				Contributors: map[string]schema.MetricSet{
					"alice": {DeploymentFrequency: 2},
					"bob":   {DeploymentFrequency: 1},
				},
			},
		},
	}
}

func TestContributorRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(ContributorRow))
	require.NotNil(t, s)

	expectedColumns := []string{
		"repo",
		"window_from",
		"window_to",
		"contributor",
		"deployment_frequency",
		"lead_time_hours",
		"change_failure_rate",
		"time_to_restore_hours",
		"code_quality",
		"impact",
		"collaboration",
		"growth",
	}
	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestTrendRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(TrendRow))
	require.NotNil(t, s)

	for _, colName := range []string{"repo", "week", "week_start", "contributor", "deployment_frequency", "growth"} {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestCurrentRows(t *testing.T) {
	rows := CurrentRows(sampleCurrent())
	require.Len(t, rows, 3)

	assert.Nil(t, rows[0].Contributor, "aggregate row comes first")
	assert.Equal(t, "acme/widgets", rows[0].Repo)
	assert.InDelta(t, 20.0, rows[0].LeadTimeHours, 1e-9)

	require.NotNil(t, rows[1].Contributor)
	assert.Equal(t, "alice", *rows[1].Contributor)
	require.NotNil(t, rows[2].Contributor)
	assert.Equal(t, "bob", *rows[2].Contributor)
}

func TestTrendRows(t *testing.T) {
	rows := TrendRows(sampleTrend())
	require.Len(t, rows, 5)

	var labels []string
	for _, r := range rows {
		name := "(aggregate)"
		if r.Contributor != nil {
			name = *r.Contributor
		}
		labels = append(labels, r.Week+" "+name)
	}
	assert.Equal(t, []string{
		"2025-10-26 (aggregate)",
		"2025-10-26 bob",
		"2025-11-02 (aggregate)",
		"2025-11-02 bob",
		"2025-11-02 alice",
	}, labels, "contributors keep first-seen order across weeks")
}

func TestWriteContributorRowsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "current.parquet")
	data := CurrentRows(sampleCurrent())

	require.NoError(t, WriteContributorRowsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ContributorRow](file)
	defer reader.Close()

	readData := make([]ContributorRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].Repo, readData[i].Repo)
		assert.InDelta(t, data[i].DeploymentFrequency, readData[i].DeploymentFrequency, 1e-9)
		assert.InDelta(t, data[i].LeadTimeHours, readData[i].LeadTimeHours, 1e-9)
		assert.WithinDuration(t, data[i].WindowFrom, readData[i].WindowFrom, time.Nanosecond)
		if data[i].Contributor == nil {
			assert.Nil(t, readData[i].Contributor)
		} else {
			require.NotNil(t, readData[i].Contributor)
			assert.Equal(t, *data[i].Contributor, *readData[i].Contributor)
		}
	}
}

func TestWriteTrendRowsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "trends.parquet")
	data := TrendRows(sampleTrend())
	require.NoError(t, WriteTrendRowsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[TrendRow](file)
	defer reader.Close()
	assert.Equal(t, int64(len(data)), reader.NumRows())
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteContributorRowsParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
