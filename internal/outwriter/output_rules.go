package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
	"github.com/olekukonko/tablewriter"
)

// RuleTable is the JSON shape of the active rule configuration.
type RuleTable struct {
	Categories      []CategoryRule                           `json:"categories"`
	Ceilings        map[schema.Role]int                      `json:"ceilings"`
	Severities      map[schema.ViolationKind]schema.Severity `json:"severities"`
	CohesionFloor   float64                                  `json:"cohesionFloor"`
	StreamPolicy    schema.StreamPolicy                      `json:"streamPolicy"`
	AggregatePolicy schema.AggregatePolicy                   `json:"aggregatePolicy"`
	MinCoChange     int                                      `json:"minCoChange"`
}

type CategoryRule struct {
	Category schema.ContributionCategory `json:"category"`
	Points   string                      `json:"points"`
}

// CategoryRules describes the fixed counting taxonomy.
var CategoryRules = []CategoryRule{
	{schema.CollaboratorRef, "1 per unique collaborator member per method"},
	{schema.Branch, "1, +1 when nested in a branch or loop"},
	{schema.Loop, "1, +1 when nested in a branch or loop"},
	{schema.Try, "1, +1 when nested in a branch or loop"},
	{schema.Catch, "1, +1 when nested in a branch or loop"},
	{schema.Lambda, "1 per occurrence"},
	{schema.StreamStage, "1 per stage (or per pipeline, by policy)"},
}

// BuildRuleTable snapshots the active rule configuration.
func BuildRuleTable(cfg *contract.Config) RuleTable {
	return RuleTable{
		Categories:      CategoryRules,
		Ceilings:        cfg.Thresholds,
		Severities:      cfg.Severities,
		CohesionFloor:   cfg.CohesionFloor,
		StreamPolicy:    cfg.StreamPolicy,
		AggregatePolicy: cfg.AggregatePolicy,
		MinCoChange:     cfg.MinCoChange,
	}
}

// WriteRules prints the active scoring rules, ceilings and severities.
func WriteRules(cfg *contract.Config) error {
	rules := BuildRuleTable(cfg)
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rules)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeRulesText(w, cfg, rules)
	}, "Wrote rules")
}

// writeRulesText renders the rule tables for humans.
func writeRulesText(w io.Writer, cfg *contract.Config, rules RuleTable) error {
	if _, err := fmt.Fprintln(w, "Load contribution taxonomy:"); err != nil {
		return err
	}
	catTable := tablewriter.NewWriter(w)
	catTable.Header([]string{"Category", "Points"})
	var catData [][]string
	for _, c := range rules.Categories {
		catData = append(catData, []string{string(c.Category), c.Points})
	}
	if err := catTable.Bulk(catData); err != nil {
		return err
	}
	if err := catTable.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nRole ceilings:"); err != nil {
		return err
	}
	roleTable := tablewriter.NewWriter(w)
	roleTable.Header([]string{"Role", "Ceiling", "Aggregation"})
	var roleData [][]string
	for _, role := range schema.AllRoles {
		agg := "per method"
		if _, ok := schema.AggregateRoles[role]; ok {
			agg = string(cfg.AggregatePolicy) + " of methods"
		}
		roleData = append(roleData, []string{string(role), strconv.Itoa(rules.Ceilings[role]), agg})
	}
	if err := roleTable.Bulk(roleData); err != nil {
		return err
	}
	if err := roleTable.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w,
		"\nCohesion floor: %.2f | Stream policy: %s | Min co-change support: %d\n",
		rules.CohesionFloor, rules.StreamPolicy, rules.MinCoChange)
	return err
}
