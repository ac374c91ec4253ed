// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the doralens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.RepoClient) *server.MCPServer {
	s := server.NewMCPServer(
		"DORA Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		now:     time.Now,
	}

	// --- 1. Tool: get_dora_summary ---
	s.AddTool(mcp.NewTool("get_dora_summary",
		mcp.WithDescription(fmt.Sprintf("Compute the aggregate DORA metrics and proxy scores for %s over a trailing window.", baseCfg.Repo)),
		mcp.WithNumber("days", mcp.Description(fmt.Sprintf("Trailing window in days (1-%d). Defaults to %d.", contract.MaxDays, baseCfg.Days))),
	), h.handleGetDoraSummary)

	// --- 2. Tool: get_contributor_metrics ---
	s.AddTool(mcp.NewTool("get_contributor_metrics",
		mcp.WithDescription("Compute the aggregate scorecard and one scorecard per contributor over a trailing window."),
		mcp.WithNumber("days", mcp.Description(fmt.Sprintf("Trailing window in days (1-%d).", contract.MaxDays))),
	), h.handleGetContributorMetrics)

	// --- 3. Tool: get_trends ---
	s.AddTool(mcp.NewTool("get_trends",
		mcp.WithDescription("Compute one scorecard per calendar week (Sunday start), oldest first."),
		mcp.WithNumber("weeks", mcp.Description(fmt.Sprintf("Number of weeks (1-%d). Defaults to %d.", contract.MaxWeeks, baseCfg.Weeks))),
	), h.handleGetTrends)

	// --- 4. Tool: get_metric_definitions ---
	s.AddTool(mcp.NewTool("get_metric_definitions",
		mcp.WithDescription("Describe every metric: formula, unit, default and whether it is a proxy."),
	), h.handleGetMetricDefinitions)

	return s
}

// StartMCPServer starts the doralens MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.RepoClient) error {
	s := NewMCPServer(baseCfg, client)
	return server.ServeStdio(s)
}
