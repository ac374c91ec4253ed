package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/huangsam/doralens/core"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/internal/outwriter"
	"github.com/huangsam/doralens/schema"
	"github.com/prometheus/common/expfmt"
)

// Client-facing error strings. Upstream detail is logged, never returned.
const (
	MetricsErrorMessage   = "Failed to fetch metrics"
	FetchErrorMessage     = "Failed to fetch data from GitHub. Please check your token and try again."
	MethodNotAllowedError = "method not allowed"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// allowGet rejects anything but GET with the fixed 405 payload.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, MethodNotAllowedError)
		return false
	}
	return true
}

// handleHealth reports liveness without touching the upstream API.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGitHubMetrics returns the eight aggregate values over the fixed summary window.
func (s *Server) handleGitHubMetrics(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	result, err := s.summary(r.Context())
	if err != nil {
		s.requestLog(r).WithError(err).Error("Failed to compute metrics")
		writeError(w, http.StatusInternalServerError, MetricsErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, result.Metrics)
}

// handleContributors returns the aggregate and per-contributor scorecards.
func (s *Server) handleContributors(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	days, err := queryInt(r, "days", 0, contract.MaxDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := s.current(r.Context(), days)
	if err != nil {
		s.requestLog(r).WithError(err).Error("Failed to compute contributor metrics")
		writeError(w, http.StatusInternalServerError, FetchErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleTrends returns one scorecard per recent calendar week.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	weeks, err := queryInt(r, "weeks", 0, contract.MaxWeeks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := s.trends(r.Context(), weeks)
	if err != nil {
		s.requestLog(r).WithError(err).Error("Failed to compute trends")
		writeError(w, http.StatusInternalServerError, FetchErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleMetrics exposes the summary scorecard as Prometheus gauges.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	result, err := s.summary(r.Context())
	if err != nil {
		s.requestLog(r).WithError(err).Error("Failed to compute metrics")
		writeError(w, http.StatusInternalServerError, MetricsErrorMessage)
		return
	}
	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	if err := outwriter.WritePrometheus(w, outwriter.SummaryFamilies(result)); err != nil {
		s.requestLog(r).WithError(err).Warn("Failed to write exposition")
	}
}

// summary computes the fixed-window aggregate.
func (s *Server) summary(ctx context.Context) (schema.SummaryResult, error) {
	cfg, client := s.snapshot()
	cfg = cfg.CloneWithWindow(schema.NewTrailingWindow(s.now(), core.SummaryDays))
	return core.GetSummaryResults(core.WithSuppressHeader(ctx), cfg, client)
}

// current computes the contributor scorecards over the trailing days,
// using the configured day count when days is 0.
func (s *Server) current(ctx context.Context, days int) (schema.CurrentResult, error) {
	cfg, client := s.snapshot()
	if days > 0 {
		cfg.Days = days
	}
	cfg = cfg.CloneWithWindow(schema.NewTrailingWindow(s.now(), cfg.Days))
	return core.GetCurrentResults(core.WithSuppressHeader(ctx), cfg, client)
}

// trends computes the weekly trend ending now, using the configured week
// count when weeks is 0.
func (s *Server) trends(ctx context.Context, weeks int) (schema.TrendResult, error) {
	cfg, client := s.snapshot()
	cfg = cfg.CloneWithWindow(schema.NewTrailingWindow(s.now(), cfg.Days))
	if weeks > 0 {
		cfg.Weeks = weeks
	}
	return core.GetTrendResults(core.WithSuppressHeader(ctx), cfg, client)
}

// queryInt parses an optional integer query parameter in [1, maxValue].
// A missing parameter yields fallback.
func queryInt(r *http.Request, name string, fallback, maxValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > maxValue {
		return 0, fmt.Errorf("%s must be an integer between 1 and %d", name, maxValue)
	}
	return v, nil
}
