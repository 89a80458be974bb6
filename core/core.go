// Package core holds the analysis engine: model building, scoring, role
// classification, cohesion partitioning, drift detection and report assembly.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/internal/outwriter"
	"github.com/huangsam/cogload/schema"
)

// ExecuteAnalyze runs the full analysis and writes the report in the
// configured format. The returned error encodes the exit-code contract:
// nil for a clean run, ErrViolations when findings reach the severity
// threshold, ErrStrictParse when units were skipped under --strict-parse.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, adapter contract.FrontendAdapter, source contract.CoChangeSource) error {
	start := time.Now()

	report, err := RunAnalysis(ctx, cfg, adapter, source)
	if err != nil {
		return err
	}

	if err := outwriter.WriteReport(report, cfg, time.Since(start)); err != nil {
		return err
	}
	return verdict(cfg, report)
}

// GetAnalysisReport runs the analysis and returns the report without
// printing. This is the entry point for embedding (the MCP server).
func GetAnalysisReport(ctx context.Context, cfg *contract.Config, adapter contract.FrontendAdapter, source contract.CoChangeSource) (*schema.Report, error) {
	return RunAnalysis(ctx, cfg, adapter, source)
}

// verdict converts the report into the process outcome.
func verdict(cfg *contract.Config, report *schema.Report) error {
	if report.Cancelled {
		return fmt.Errorf("analysis cancelled; report is partial")
	}
	if cfg.StrictParse && len(report.Skipped) > 0 {
		return fmt.Errorf("%w: %d unit(s) skipped", contract.ErrStrictParse, len(report.Skipped))
	}
	if !report.Clean {
		return contract.ErrViolations
	}
	return nil
}
