// Package parquet provides data structures and functions for exporting delivery
// metrics to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/doralens/schema"
	"github.com/parquet-go/parquet-go"
)

// ContributorRow is one scorecard for a window.
// Aggregate scorecards have no contributor.
type ContributorRow struct {
	// Repo is the owner/name of the repository
	Repo string `parquet:"repo,snappy"`

	// WindowFrom is the inclusive window start (stored as TIMESTAMP with nanosecond precision)
	WindowFrom time.Time `parquet:"window_from,snappy"`

	// WindowTo is the exclusive window end (stored as TIMESTAMP with nanosecond precision)
	WindowTo time.Time `parquet:"window_to,snappy"`

	// Contributor is the account login (nullable, nil for the aggregate row)
	Contributor *string `parquet:"contributor,optional,snappy"`

	DeploymentFrequency float64 `parquet:"deployment_frequency,snappy"`
	LeadTimeHours       float64 `parquet:"lead_time_hours,snappy"`
	ChangeFailureRate   float64 `parquet:"change_failure_rate,snappy"`
	TimeToRestoreHours  float64 `parquet:"time_to_restore_hours,snappy"`
	CodeQuality         float64 `parquet:"code_quality,snappy"`
	Impact              float64 `parquet:"impact,snappy"`
	Collaboration       float64 `parquet:"collaboration,snappy"`
	Growth              float64 `parquet:"growth,snappy"`
}

// TrendRow is one scorecard for one week of a trend.
type TrendRow struct {
	// Repo is the owner/name of the repository
	Repo string `parquet:"repo,snappy"`

	// Week is the yyyy-MM-dd label of the week start
	Week string `parquet:"week,snappy"`

	// WeekStart is the Sunday the week begins (stored as TIMESTAMP with nanosecond precision)
	WeekStart time.Time `parquet:"week_start,snappy"`

	// Contributor is the account login (nullable, nil for the aggregate row)
	Contributor *string `parquet:"contributor,optional,snappy"`

	DeploymentFrequency float64 `parquet:"deployment_frequency,snappy"`
	LeadTimeHours       float64 `parquet:"lead_time_hours,snappy"`
	ChangeFailureRate   float64 `parquet:"change_failure_rate,snappy"`
	TimeToRestoreHours  float64 `parquet:"time_to_restore_hours,snappy"`
	CodeQuality         float64 `parquet:"code_quality,snappy"`
	Impact              float64 `parquet:"impact,snappy"`
	Collaboration       float64 `parquet:"collaboration,snappy"`
	Growth              float64 `parquet:"growth,snappy"`
}

func newContributorRow(repo schema.RepoRef, window schema.TimeWindow, contributor *string, m schema.MetricSet) ContributorRow {
	return ContributorRow{
		Repo:                repo.String(),
		WindowFrom:          window.From,
		WindowTo:            window.To,
		Contributor:         contributor,
		DeploymentFrequency: m.DeploymentFrequency,
		LeadTimeHours:       m.LeadTime,
		ChangeFailureRate:   m.ChangeFailureRate,
		TimeToRestoreHours:  m.TimeToRestore,
		CodeQuality:         m.CodeQuality,
		Impact:              m.Impact,
		Collaboration:       m.Collaboration,
		Growth:              m.Growth,
	}
}

func newTrendRow(repo schema.RepoRef, p schema.TrendPoint, contributor *string, m schema.MetricSet) TrendRow {
	return TrendRow{
		Repo:                repo.String(),
		Week:                p.Label,
		WeekStart:           p.Window.From,
		Contributor:         contributor,
		DeploymentFrequency: m.DeploymentFrequency,
		LeadTimeHours:       m.LeadTime,
		ChangeFailureRate:   m.ChangeFailureRate,
		TimeToRestoreHours:  m.TimeToRestore,
		CodeQuality:         m.CodeQuality,
		Impact:              m.Impact,
		Collaboration:       m.Collaboration,
		Growth:              m.Growth,
	}
}

// SummaryRows flattens a summary into a single aggregate row.
func SummaryRows(result schema.SummaryResult) []ContributorRow {
	return []ContributorRow{newContributorRow(result.Repo, result.Window, nil, result.Metrics)}
}

// CurrentRows flattens a current result into the aggregate row followed by
// one row per contributor.
func CurrentRows(result schema.CurrentResult) []ContributorRow {
	rows := make([]ContributorRow, 0, len(result.Contributors)+1)
	rows = append(rows, newContributorRow(result.Repo, result.Window, nil, result.Aggregate))
	for _, c := range result.Contributors {
		name := c.Name
		rows = append(rows, newContributorRow(result.Repo, result.Window, &name, c.MetricSet))
	}
	return rows
}

// TrendRows flattens a trend into rows, oldest week first. Within a week the
// aggregate row comes first, then contributors in first-seen order.
func TrendRows(result schema.TrendResult) []TrendRow {
	names := result.ContributorNames()
	var rows []TrendRow
	for _, p := range result.Points {
		rows = append(rows, newTrendRow(result.Repo, p, nil, p.Aggregate))
		for _, name := range names {
			m, ok := p.Contributors[name]
			if !ok {
				continue
			}
			rows = append(rows, newTrendRow(result.Repo, p, &name, m))
		}
	}
	return rows
}

// WriteContributorRowsParquet writes contributor rows to a Parquet file.
func WriteContributorRowsParquet(data []ContributorRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTrendRowsParquet writes trend rows to a Parquet file.
func WriteTrendRowsParquet(data []TrendRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using the schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
