package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeReportText renders the human-readable report: a violations table,
// followed by notes and skipped units when present, and a run summary.
func writeReportText(w io.Writer, report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	if len(report.Violations) == 0 {
		if _, err := fmt.Fprintf(w, "No violations across %d units\n", len(report.Units)); err != nil {
			return err
		}
	} else if err := writeViolationTable(w, report.Violations, cfg); err != nil {
		return err
	}

	for _, note := range report.Notes {
		if _, err := fmt.Fprintf(w, "Note [%s] %s: %s\n",
			contract.GetPlainSeverityLabel(note.Severity), note.Unit, note.Message); err != nil {
			return err
		}
	}
	for _, s := range report.Skipped {
		target := s.Path
		if s.Unit != "" {
			target += " (" + s.Unit + ")"
		}
		if _, err := fmt.Fprintf(w, "Skipped %s: %s\n", target, s.Reason); err != nil {
			return err
		}
	}

	verdict := "clean"
	if !report.Clean {
		verdict = "not clean"
	}
	if report.Cancelled {
		verdict += " (cancelled, partial results)"
	}
	counts := schema.CountBySeverity(report.Violations)
	_, err := fmt.Fprintf(w,
		"Analyzed %d units in %v with %d workers: %d error(s), %d warning(s), %d info -> %s\n",
		len(report.Units), duration, cfg.Workers,
		counts[schema.ErrorSeverity], counts[schema.WarningSeverity], counts[schema.InfoSeverity],
		verdict)
	return err
}

// writeViolationTable renders the sorted violations.
func writeViolationTable(w io.Writer, violations []schema.Violation, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Severity", "Kind", "Unit", "Method", "Score", "Message"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxMsg := getMaxTableMessageWidth(cfg)
	var data [][]string
	for i, v := range violations {
		label := contract.GetPlainSeverityLabel(v.Severity)
		if cfg.UseColors {
			label = contract.GetColorSeverityLabel(v.Severity)
		}
		score := ""
		if v.Score > 0 || v.Kind == schema.OverLoad || v.Kind == schema.UnderLoad {
			score = strconv.Itoa(v.Score)
			if v.Threshold > 0 {
				score += "/" + strconv.Itoa(v.Threshold)
			}
		}
		msg := v.Message
		if len(v.SuggestedSplit) >= 2 {
			msg += " | suggested split: " + formatSplit(v.SuggestedSplit)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			label,
			string(v.Kind),
			v.Unit,
			v.Method,
			score,
			truncateMessage(msg, maxMsg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// formatSplit renders suggested extraction boundaries compactly.
func formatSplit(groups []schema.SplitGroup) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, "["+strings.Join(g.Methods, " ")+"]")
	}
	return strings.Join(parts, " ")
}

// truncateMessage shortens a message with an ellipsis suffix.
func truncateMessage(msg string, maxWidth int) string {
	runes := []rune(msg)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return msg
}
