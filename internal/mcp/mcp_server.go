// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the cogload MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, adapter contract.FrontendAdapter) *server.MCPServer {
	s := server.NewMCPServer(
		"Cognitive Load Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		adapter: adapter,
	}

	// --- 1. Tool: analyze_units ---
	s.AddTool(mcp.NewTool("analyze_units",
		mcp.WithDescription("Analyze normalized unit descriptors for cognitive load, cohesion and responsibility drift."),
		mcp.WithString("path", mcp.Description("Directory or descriptor file to analyze (defaults to the configured paths).")),
		mcp.WithString("severity_threshold", mcp.Description("Minimum severity treated as blocking (info, warning, error)."), mcp.Enum("info", "warning", "error")),
		mcp.WithString("co_change_source", mcp.Description("Optional co-change history file for shotgun surgery detection.")),
	), h.handleAnalyzeUnits)

	// --- 2. Tool: get_rule_table ---
	s.AddTool(mcp.NewTool("get_rule_table",
		mcp.WithDescription("Return the active load taxonomy, role ceilings, severities and policies."),
	), h.handleGetRuleTable)

	return s
}

// StartMCPServer starts the cogload MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, adapter contract.FrontendAdapter) error {
	s := NewMCPServer(baseCfg, adapter)
	return server.ServeStdio(s)
}
