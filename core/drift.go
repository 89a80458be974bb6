package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
)

// divergentChangeViolations reframes the cohesion partition as divergent
// change: a unit whose methods split into k disjoint responsibility clusters
// is flagged once per extra cluster beyond the first.
func divergentChangeViolations(cfg *contract.Config, record *schema.CohesionRecord) []schema.Violation {
	if len(record.Components) < 2 {
		return nil
	}
	violations := make([]schema.Violation, 0, len(record.Components)-1)
	for i := 1; i < len(record.Components); i++ {
		comp := record.Components[i]
		violations = append(violations, schema.Violation{
			Kind:     schema.DivergentChange,
			Unit:     record.Unit,
			Severity: cfg.Severities[schema.DivergentChange],
			Message: fmt.Sprintf(
				"responsibility cluster %d of %d changes independently of the rest (methods: %s)",
				i+1, len(record.Components), strings.Join(comp.Methods, ", ")),
			SuggestedSplit: []schema.SplitGroup{comp},
		})
	}
	return violations
}

// coChangeEvent groups the units that took part in one coordinated edit.
// Records sharing a timestamp belong to the same edit.
type coChangeEvent map[string]struct{}

// shotgunSurgeryViolations detects change concepts scattered across units
// that have no structural relationship. Unit pairs co-editing at least
// cfg.MinCoChange times form edges; any connected cluster of three or more
// units whose members never reference each other structurally is flagged.
// Units absent from the structural graph are ignored, since no structural
// relationship can be established for them.
func shotgunSurgeryViolations(cfg *contract.Config, model *Model, records []schema.CoChangeRecord) []schema.Violation {
	events := make(map[int64]coChangeEvent)
	for _, rec := range records {
		if !model.Has(rec.Unit) {
			continue
		}
		ev, ok := events[rec.Timestamp]
		if !ok {
			ev = make(coChangeEvent)
			events[rec.Timestamp] = ev
		}
		ev[rec.Unit] = struct{}{}
	}

	// Count coordinated edits per unordered unit pair.
	type pair struct{ a, b string }
	weights := make(map[pair]int)
	for _, ev := range events {
		units := make([]string, 0, len(ev))
		for u := range ev {
			units = append(units, u)
		}
		sort.Strings(units)
		for i := 0; i < len(units); i++ {
			for j := i + 1; j < len(units); j++ {
				weights[pair{units[i], units[j]}]++
			}
		}
	}

	// Frequent co-change edges form clusters.
	uf := newUnionFind()
	inGraph := make(map[string]struct{})
	for p, w := range weights {
		if w < cfg.MinCoChange {
			continue
		}
		uf.union(p.a, p.b)
		inGraph[p.a] = struct{}{}
		inGraph[p.b] = struct{}{}
	}

	clusters := make(map[string][]string)
	for u := range inGraph {
		root := uf.find(u)
		clusters[root] = append(clusters[root], u)
	}

	var violations []schema.Violation
	for _, members := range clusters {
		if len(members) < 3 {
			continue
		}
		sort.Strings(members)
		if structurallyRelated(model, members) {
			continue
		}
		violations = append(violations, schema.Violation{
			Kind:     schema.ShotgunSurgery,
			Unit:     members[0],
			Severity: cfg.Severities[schema.ShotgunSurgery],
			Message: fmt.Sprintf(
				"%d structurally unrelated units co-change frequently: %s",
				len(members), strings.Join(members, ", ")),
		})
	}
	sort.Slice(violations, func(i, j int) bool { return violations[i].Unit < violations[j].Unit })
	return violations
}

// structurallyRelated reports whether any pair among the units references
// the other through a call edge.
func structurallyRelated(model *Model, members []string) bool {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	for _, id := range members {
		unit, ok := model.Unit(id)
		if !ok {
			continue
		}
		for _, method := range unit.Methods {
			for _, callee := range method.Calls {
				if callee == id {
					continue
				}
				if _, related := set[callee]; related {
					return true
				}
			}
		}
	}
	return false
}
