package core

import (
	"fmt"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
)

// loadViolations enforces the role ceiling over method scores.
//
// The aggregation policy is role-dependent: controller, service and
// repository units are checked method by method, while entity and
// value-object units legitimately concentrate more behavior and are checked
// against their (higher) ceiling as a whole. Unclassified units are never
// enforced. A method scoring 0 is valid; an aggregate-checked unit totaling
// only 1-3 points instead draws a "possibly over-extracted" advisory.
func loadViolations(cfg *contract.Config, role schema.Role, scores []schema.MethodScore) []schema.Violation {
	if role == schema.Unclassified {
		return nil
	}
	threshold := cfg.Thresholds[role]

	var violations []schema.Violation
	if _, aggregate := schema.AggregateRoles[role]; aggregate {
		agg := aggregateScore(scores, cfg.AggregatePolicy)
		switch {
		case agg > threshold:
			violations = append(violations, schema.Violation{
				Kind:      schema.OverLoad,
				Score:     agg,
				Threshold: threshold,
				Severity:  cfg.Severities[schema.OverLoad],
				Message: fmt.Sprintf(
					"unit scores %d under the %s policy, over the %s ceiling of %d",
					agg, cfg.AggregatePolicy, role, threshold),
			})
		case agg >= 1 && agg <= 3:
			violations = append(violations, schema.Violation{
				Kind:      schema.UnderLoad,
				Score:     agg,
				Threshold: threshold,
				Severity:  cfg.Severities[schema.UnderLoad],
				Message: fmt.Sprintf(
					"unit scores only %d as a %s; possibly over-extracted", agg, role),
			})
		}
		return violations
	}

	for _, s := range scores {
		if s.Score <= threshold {
			continue
		}
		violations = append(violations, schema.Violation{
			Kind:      schema.OverLoad,
			Method:    s.Method,
			Score:     s.Score,
			Threshold: threshold,
			Severity:  cfg.Severities[schema.OverLoad],
			Message: fmt.Sprintf(
				"method %s scores %d, over the %s ceiling of %d",
				s.Method, s.Score, role, threshold),
		})
	}
	return violations
}

// cohesionViolations flags a unit whose usage graph partitions into two or
// more components, or whose cohesion ratio falls below the configured floor.
// The connected components are the suggested extraction boundaries.
func cohesionViolations(cfg *contract.Config, record *schema.CohesionRecord) []schema.Violation {
	split := len(record.Components) >= 2
	sparse := record.Ratio < cfg.CohesionFloor
	if !split && !sparse {
		return nil
	}

	var msg string
	switch {
	case split && sparse:
		msg = fmt.Sprintf(
			"methods partition into %d disjoint member-usage groups and cohesion ratio %.2f is below floor %.2f",
			len(record.Components), record.Ratio, cfg.CohesionFloor)
	case split:
		msg = fmt.Sprintf(
			"methods partition into %d disjoint member-usage groups", len(record.Components))
	default:
		msg = fmt.Sprintf(
			"cohesion ratio %.2f is below floor %.2f", record.Ratio, cfg.CohesionFloor)
	}
	if len(record.UnusedMembers) > 0 {
		msg += fmt.Sprintf(" (unused collaborators: %d)", len(record.UnusedMembers))
	}

	v := schema.Violation{
		Kind:     schema.LowCohesion,
		Unit:     record.Unit,
		Severity: cfg.Severities[schema.LowCohesion],
		Message:  msg,
	}
	if split {
		v.SuggestedSplit = record.Components
	}
	return []schema.Violation{v}
}

// assembleReport merges all findings into the final deterministic report and
// computes the pass/fail verdict.
func assembleReport(cfg *contract.Config, units []schema.UnitAnalysis, acc *collector, skipped []schema.SkippedUnit, cancelled bool) *schema.Report {
	report := &schema.Report{
		Units:      units,
		Violations: acc.violations,
		Notes:      acc.notes,
		Skipped:    skipped,
		Cancelled:  cancelled,
	}
	schema.SortUnits(report.Units)
	schema.SortViolations(report.Violations)
	schema.SortNotes(report.Notes)
	schema.SortSkipped(report.Skipped)

	report.Clean = true
	for _, v := range report.Violations {
		if schema.MeetsThreshold(v.Severity, cfg.SeverityThreshold) {
			report.Clean = false
			break
		}
	}
	return report
}
