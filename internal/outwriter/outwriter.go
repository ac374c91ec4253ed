// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the aggregate scorecard using the configured output format.
func (ow *OutWriter) WriteSummary(result schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSummaryResults(result, cfg, duration)
}

// WriteCurrent prints the aggregate and per-contributor scorecards using the configured output format.
func (ow *OutWriter) WriteCurrent(result schema.CurrentResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCurrentResults(result, cfg, duration)
}

// WriteTrends prints the weekly trend using the configured output format.
func (ow *OutWriter) WriteTrends(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return PrintTrendResults(result, cfg, duration)
}

// WriteMetrics prints metrics definitions using the configured output format.
func (ow *OutWriter) WriteMetrics(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	return PrintMetricsDefinitions(model, cfg)
}
