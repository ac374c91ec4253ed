package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
)

// PrintMetricsDefinitions displays the formal definitions of all metrics.
// This is a static display that does not call the repository API.
func PrintMetricsDefinitions(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, model)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, model)
		}, "Wrote CSV")
	case schema.ParquetOut, schema.PromOut:
		return fmt.Errorf("%s output is not supported for metric definitions", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMetricsText(w, model)
		}, "Wrote text")
	}
}

// printMetricsText displays metrics in human-readable text format.
func printMetricsText(w io.Writer, model *schema.MetricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "📏 %s\n", model.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "==========================\n\n%s\n\n", model.Description); err != nil {
		return err
	}

	for _, def := range model.Metrics {
		name := def.Name
		if def.Proxy {
			name += " (proxy)"
		}
		if _, err := fmt.Fprintf(w, "%s [%s]: %s\n", name, def.Key, def.Unit); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Formula: %s\n", def.Formula); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Default: %s\n\n", def.Default); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(model.Notes))
	for k := range model.Notes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if _, err := fmt.Fprintln(w, "📝 Notes"); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "- %s\n", model.Notes[k]); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVMetrics writes one row per metric definition.
func writeCSVMetrics(w io.Writer, model *schema.MetricsRenderModel) error {
	header := []string{"key", "name", "unit", "proxy", "formula", "default"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, def := range model.Metrics {
			row := []string{
				string(def.Key),
				def.Name,
				def.Unit,
				strconv.FormatBool(def.Proxy),
				def.Formula,
				def.Default,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
