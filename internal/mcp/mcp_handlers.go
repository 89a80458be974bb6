package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/cogload/core"
	"github.com/huangsam/cogload/internal/cochange"
	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/internal/outwriter"
	"github.com/huangsam/cogload/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	adapter contract.FrontendAdapter
}

func (h *toolHandler) handleAnalyzeUnits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("path", ""); p != "" {
		cfg.Paths = []string{p}
	}
	if t := request.GetString("severity_threshold", ""); t != "" {
		sev := schema.Severity(t)
		if _, ok := schema.ValidSeverities[sev]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid severity threshold: %s", t)), nil
		}
		cfg.SeverityThreshold = sev
	}
	if c := request.GetString("co_change_source", ""); c != "" {
		cfg.CoChangePath = c
	}

	report, err := core.GetAnalysisReport(ctx, cfg, h.adapter, cochange.NewSource(cfg.CoChangePath))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRuleTable(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := outwriter.BuildRuleTable(h.baseCfg)
	jsonData, _ := json.MarshalIndent(rules, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
