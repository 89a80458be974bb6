package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
)

// ExecuteCheck runs the analysis for CI/CD gating and prints a concise
// pass/fail summary instead of the full report. The exit-code contract is
// the same as ExecuteAnalyze.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, adapter contract.FrontendAdapter, source contract.CoChangeSource) error {
	start := time.Now()

	report, err := RunAnalysis(ctx, cfg, adapter, source)
	if err != nil {
		return err
	}

	printCheckResult(cfg, report, time.Since(start))
	return verdict(cfg, report)
}

// printCheckResult prints the check outcome in a format suitable for CI logs.
func printCheckResult(cfg *contract.Config, report *schema.Report, duration time.Duration) {
	fmt.Println("Policy Check Results:")
	fmt.Printf("  %-20s %s\n", "Severity threshold:", cfg.SeverityThreshold)
	fmt.Printf("  %-20s %.2f\n", "Cohesion floor:", cfg.CohesionFloor)
	fmt.Printf("  %-20s controller=%d, domain-service=%d, application-service=%d, entity=%d, value-object=%d, repository=%d\n",
		"Ceilings:",
		cfg.Thresholds[schema.Controller],
		cfg.Thresholds[schema.DomainService],
		cfg.Thresholds[schema.ApplicationService],
		cfg.Thresholds[schema.Entity],
		cfg.Thresholds[schema.ValueObject],
		cfg.Thresholds[schema.Repository])
	fmt.Println()
	fmt.Printf("Checked %d units in %v\n\n", len(report.Units), duration)

	if len(report.Skipped) > 0 {
		fmt.Printf("%d unit(s) skipped as unparseable\n", len(report.Skipped))
	}

	blocking := make([]schema.Violation, 0, len(report.Violations))
	advisory := 0
	for _, v := range report.Violations {
		if schema.MeetsThreshold(v.Severity, cfg.SeverityThreshold) {
			blocking = append(blocking, v)
		} else {
			advisory++
		}
	}

	if report.Clean {
		fmt.Printf("All units passed policy checks (%d advisory finding(s) below threshold)\n", advisory)
		return
	}

	fmt.Printf("Policy check failed: %d violation(s) at or above %s across %d units\n\n",
		len(blocking), cfg.SeverityThreshold, len(report.Units))

	// Group by kind for readability, capped per kind.
	kindGroups := make(map[schema.ViolationKind][]schema.Violation)
	for _, v := range blocking {
		kindGroups[v.Kind] = append(kindGroups[v.Kind], v)
	}
	kinds := []schema.ViolationKind{
		schema.OverLoad, schema.LowCohesion, schema.DivergentChange,
		schema.ShotgunSurgery, schema.UnderLoad,
	}
	const maxToShow = 5
	for _, kind := range kinds {
		group := kindGroups[kind]
		if len(group) == 0 {
			continue
		}
		fmt.Printf("Kind: %s (%d violations)\n", kind, len(group))
		for i, v := range group {
			if i >= maxToShow {
				fmt.Printf("  ... and %d more\n", len(group)-i)
				break
			}
			target := v.Unit
			if v.Method != "" {
				target += "." + v.Method
			}
			fmt.Printf("  - %s: %s\n", target, v.Message)
		}
		fmt.Println()
	}
}
