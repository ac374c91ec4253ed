package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/doralens/core/agg"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/internal/parquet"
	"github.com/huangsam/doralens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// errParquetNeedsFile is returned when parquet output has no destination.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// columnTitles are the short metric headers used in wide tables.
var columnTitles = map[schema.MetricKey]string{
	schema.DeploymentFrequencyKey: "Deploys/wk",
	schema.LeadTimeKey:            "Lead (h)",
	schema.ChangeFailureRateKey:   "CFR (%)",
	schema.TimeToRestoreKey:       "TTR (h)",
	schema.CodeQualityKey:         "Quality",
	schema.ImpactKey:              "Impact",
	schema.CollaborationKey:       "Collab",
	schema.GrowthKey:              "Growth",
}

// PrintSummaryResults outputs the aggregate scorecard, dispatching based on the output format configured.
func PrintSummaryResults(result schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON summary")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, result)
		}, "Wrote YAML summary")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSummary(w, result, fmtFloat)
		}, "Wrote CSV summary")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteContributorRowsParquet(parquet.SummaryRows(result), path)
		})
	case schema.PromOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WritePrometheus(w, SummaryFamilies(result))
		}, "Wrote Prometheus summary")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(w, result, cfg, fmtFloat, duration)
		}, "Wrote text summary"); err != nil {
			return fmt.Errorf("error writing summary table output: %w", err)
		}
		return nil
	}
}

// PrintCurrentResults outputs the aggregate and contributor scorecards, dispatching based on the output format configured.
func PrintCurrentResults(result schema.CurrentResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON contributor results")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, result)
		}, "Wrote YAML contributor results")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVCurrent(w, result, fmtFloat)
		}, "Wrote CSV contributor results")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteContributorRowsParquet(parquet.CurrentRows(result), path)
		})
	case schema.PromOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WritePrometheus(w, CurrentFamilies(result))
		}, "Wrote Prometheus contributor results")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCurrentText(w, result, cfg, fmtFloat, duration)
		}, "Wrote text contributor results"); err != nil {
			return fmt.Errorf("error writing contributor table output: %w", err)
		}
		return nil
	}
}

// writeParquetFile runs a parquet writer and reports where it went.
func writeParquetFile(outputFile string, write func(path string) error) error {
	if outputFile == "" {
		return errParquetNeedsFile
	}
	if err := write(outputFile); err != nil {
		return fmt.Errorf("error writing parquet output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", outputFile)
	return nil
}

// writeCSVSummary writes one row per summary with the window bounds.
func writeCSVSummary(w io.Writer, result schema.SummaryResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, metricHeader("repo", "from", "to"), func(cw *csv.Writer) error {
		return cw.Write(metricCells(result.Metrics, fmtFloat,
			result.Repo.String(),
			result.Window.From.Format(contract.DateTimeFormat),
			result.Window.To.Format(contract.DateTimeFormat),
		))
	})
}

// writeCSVCurrent writes the aggregate row followed by one row per contributor.
func writeCSVCurrent(w io.Writer, result schema.CurrentResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, metricHeader("contributor"), func(cw *csv.Writer) error {
		if err := cw.Write(metricCells(result.Aggregate, fmtFloat, aggregateLabel)); err != nil {
			return err
		}
		for _, c := range result.Contributors {
			if err := cw.Write(metricCells(c.MetricSet, fmtFloat, c.Name)); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeSummaryText prints the scorecard table with an optional chart.
func writeSummaryText(w io.Writer, result schema.SummaryResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "📊 %s · %s → %s\n", result.Repo,
		result.Window.From.Format(schema.LabelDateFormat),
		result.Window.To.Format(schema.LabelDateFormat)); err != nil {
		return err
	}
	if err := writeScorecardTable(w, result.Metrics, cfg, fmtFloat); err != nil {
		return err
	}
	if cfg.Chart {
		if err := writeScorecardChart(w, result.Metrics); err != nil {
			return err
		}
	}
	if err := writeSourceLine(w, result.Source); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Summary computed in %v with %d workers.\n", duration, cfg.Workers)
	return err
}

// writeCurrentText prints the aggregate scorecard followed by the contributor table.
func writeCurrentText(w io.Writer, result schema.CurrentResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "📊 %s · %s → %s\n", result.Repo,
		result.Window.From.Format(schema.LabelDateFormat),
		result.Window.To.Format(schema.LabelDateFormat)); err != nil {
		return err
	}
	if err := writeScorecardTable(w, result.Aggregate, cfg, fmtFloat); err != nil {
		return err
	}

	if len(result.Contributors) == 0 {
		if _, err := fmt.Fprintln(w, "No contributors in window."); err != nil {
			return err
		}
	} else {
		nameWidth := GetMaxTableNameWidth(cfg)
		rows := make([][]string, 0, len(result.Contributors))
		for _, c := range result.Contributors {
			rows = append(rows, metricCells(c.MetricSet, fmtFloat, contract.TruncateName(c.Name, nameWidth)))
		}
		if err := writeWideTable(w, "Contributor", rows); err != nil {
			return err
		}
		if cfg.Chart {
			if err := writeContributorCharts(w, result.Contributors); err != nil {
				return err
			}
		}
	}

	if err := writeSourceLine(w, result.Source); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Contributor metrics computed in %v with %d workers. Total contributors: %d\n",
		duration, cfg.Workers, len(result.Contributors))
	return err
}

// writeScorecardTable renders one metric per row with its unit and band.
func writeScorecardTable(w io.Writer, m schema.MetricSet, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Unit", "Band"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	defs := agg.Definitions()
	data := make([][]string, 0, len(defs))
	for _, def := range defs {
		value := m.Get(def.Key)
		name := def.Name
		if def.Proxy {
			name += " *"
		}
		data = append(data, []string{name, fmtFloat(value), def.Unit, bandLabel(cfg, def.Key, value)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "* proxy metric, shown without a band")
	return err
}

// writeWideTable renders labelled rows with one column per metric.
func writeWideTable(w io.Writer, label string, rows [][]string, extra ...string) error {
	table := tablewriter.NewWriter(w)

	headers := append([]string{label}, extra...)
	for _, key := range schema.AllMetricKeys {
		headers = append(headers, columnTitles[key])
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// bandLabel returns the band of a value, colored when enabled.
func bandLabel(cfg *contract.Config, key schema.MetricKey, value float64) string {
	band := agg.Band(key, value)
	if band == schema.NoBand {
		return "-"
	}
	if !cfg.UseColors {
		return string(band)
	}
	return contract.GetColorBand(band)
}

// writeSourceLine names the deployment source; results built by hand may leave it empty.
func writeSourceLine(w io.Writer, source schema.DeploymentSource) error {
	if source == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "Deployments counted from %s.\n", source)
	return err
}
