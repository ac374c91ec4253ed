package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/doralens/core"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.RepoClient
	now     func() time.Time
}

// windowConfig clones the base config with a trailing window of the requested days.
func (h *toolHandler) windowConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	days := request.GetInt("days", cfg.Days)
	if days <= 0 || days > contract.MaxDays {
		return nil, fmt.Errorf("days must be between 1 and %d (received %d)", contract.MaxDays, days)
	}
	cfg.Days = days
	cfg.Window = schema.NewTrailingWindow(h.now(), days)
	return cfg, nil
}

func (h *toolHandler) handleGetDoraSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.windowConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.GetSummaryResults(core.WithSuppressHeader(ctx), cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetContributorMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.windowConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.GetCurrentResults(core.WithSuppressHeader(ctx), cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	weeks := request.GetInt("weeks", cfg.Weeks)
	if weeks <= 0 || weeks > contract.MaxWeeks {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: weeks must be between 1 and %d (received %d)", contract.MaxWeeks, weeks)), nil
	}
	cfg.Weeks = weeks
	cfg.Window = schema.NewTrailingWindow(h.now(), cfg.Days)

	result, err := core.GetTrendResults(core.WithSuppressHeader(ctx), cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMetricDefinitions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.GetMetricsDefinitions(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
