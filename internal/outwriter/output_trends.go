package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/internal/parquet"
	"github.com/huangsam/doralens/schema"
)

// PrintTrendResults outputs the weekly trend, dispatching based on the output format configured.
func PrintTrendResults(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON trend results")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, result)
		}, "Wrote YAML trend results")
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVTrends(w, result, fmtFloat)
		}, "Wrote CSV trend results"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteTrendRowsParquet(parquet.TrendRows(result), path)
		})
	case schema.PromOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WritePrometheus(w, TrendFamilies(result))
		}, "Wrote Prometheus trend results")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendsText(w, result, cfg, fmtFloat, duration)
		}, "Wrote text trend results"); err != nil {
			return fmt.Errorf("error writing trends table output: %w", err)
		}
		return nil
	}
}

// writeCSVTrends writes, per week, the aggregate row and then one row per contributor.
func writeCSVTrends(w io.Writer, result schema.TrendResult, fmtFloat func(float64) string) error {
	names := result.ContributorNames()
	return writeCSVWithHeader(w, metricHeader("week", "contributor"), func(cw *csv.Writer) error {
		for _, p := range result.Points {
			if err := cw.Write(metricCells(p.Aggregate, fmtFloat, p.Label, aggregateLabel)); err != nil {
				return err
			}
			for _, name := range names {
				m, ok := p.Contributors[name]
				if !ok {
					continue
				}
				if err := cw.Write(metricCells(m, fmtFloat, p.Label, name)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeTrendsText prints the weekly aggregate table and the per-contributor breakdown.
func writeTrendsText(w io.Writer, result schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "📈 %s · %d weeks\n", result.Repo, len(result.Points)); err != nil {
		return err
	}

	weekly := make([][]string, 0, len(result.Points))
	for _, p := range result.Points {
		weekly = append(weekly, metricCells(p.Aggregate, fmtFloat, p.Label))
	}
	if err := writeWideTable(w, "Week", weekly); err != nil {
		return err
	}

	if cfg.Chart {
		if err := writeBars(w, "Deployments per week", trendBars(result, schema.DeploymentFrequencyKey)); err != nil {
			return err
		}
	}

	names := result.ContributorNames()
	if len(names) > 0 {
		nameWidth := GetMaxTableNameWidth(cfg)
		var rows [][]string
		for _, p := range result.Points {
			for _, name := range names {
				m, ok := p.Contributors[name]
				if !ok {
					continue
				}
				rows = append(rows, metricCells(m, fmtFloat, p.Label, contract.TruncateName(name, nameWidth)))
			}
		}
		if err := writeWideTable(w, "Week", rows, "Contributor"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Trends computed in %v with %d workers. Contributors: %s\n",
		duration, cfg.Workers, schema.FormatContributors(names, 5))
	return err
}
