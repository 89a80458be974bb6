package frontend

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/cogload/schema"
)

// standardTypes are type names treated as primitive/standard rather than
// collaborator types. The set is intentionally ecosystem-neutral: front-ends
// that know better attach an explicit collaborator flag, which always wins.
var standardTypes = map[string]struct{}{
	"bool": {}, "boolean": {},
	"byte": {}, "char": {}, "rune": {},
	"short": {}, "int": {}, "int32": {}, "int64": {}, "long": {},
	"float": {}, "float32": {}, "float64": {}, "double": {}, "decimal": {}, "bigdecimal": {},
	"string": {}, "str": {}, "text": {},
	"uuid": {}, "date": {}, "time": {}, "datetime": {}, "timestamp": {}, "duration": {}, "instant": {},
	"void": {}, "any": {}, "object": {},
	"list": {}, "set": {}, "map": {}, "array": {}, "slice": {}, "optional": {},
	"error": {}, "exception": {},
}

// buildUnit converts one wire unit into a validated StructuralUnit.
// Any referential inconsistency is an invariant violation fatal for this
// unit only.
func buildUnit(path string, w unitWire) (schema.StructuralUnit, error) {
	if w.ID == "" {
		return schema.StructuralUnit{}, fmt.Errorf("invariant: unit without id")
	}

	unit := schema.StructuralUnit{
		ID:      w.ID,
		Path:    filepath.ToSlash(path),
		Markers: append([]string(nil), w.Markers...),
	}

	memberNames := make(map[string]struct{}, len(w.Members))
	for _, mw := range w.Members {
		if mw.Name == "" {
			return schema.StructuralUnit{}, fmt.Errorf("invariant: unnamed member in unit %s", w.ID)
		}
		if _, dup := memberNames[mw.Name]; dup {
			return schema.StructuralUnit{}, fmt.Errorf("invariant: duplicate member %s in unit %s", mw.Name, w.ID)
		}
		memberNames[mw.Name] = struct{}{}
		unit.Members = append(unit.Members, schema.Member{
			Name:           mw.Name,
			Type:           mw.Type,
			IsCollaborator: classifyMember(mw),
		})
	}

	methodNames := make(map[string]struct{}, len(w.Methods))
	for _, mw := range w.Methods {
		if mw.Name == "" {
			return schema.StructuralUnit{}, fmt.Errorf("invariant: unnamed method in unit %s", w.ID)
		}
		if _, dup := methodNames[mw.Name]; dup {
			return schema.StructuralUnit{}, fmt.Errorf("invariant: duplicate method %s in unit %s", mw.Name, w.ID)
		}
		methodNames[mw.Name] = struct{}{}

		method, err := buildMethod(&unit, memberNames, mw)
		if err != nil {
			return schema.StructuralUnit{}, err
		}
		unit.Methods = append(unit.Methods, method)
	}

	return unit, nil
}

// buildMethod validates member references and flattens the fragment tree.
func buildMethod(unit *schema.StructuralUnit, memberNames map[string]struct{}, w methodWire) (schema.Method, error) {
	method := schema.Method{
		Name: w.Name,
		Unit: unit.ID,
	}

	// Referenced members must resolve within the owning unit.
	refs := make(map[string]struct{}, len(w.Uses))
	for _, ref := range w.Uses {
		if _, ok := memberNames[ref]; !ok {
			return schema.Method{}, fmt.Errorf(
				"invariant: method %s.%s references unknown member %s", unit.ID, w.Name, ref)
		}
		refs[ref] = struct{}{}
	}
	method.MemberRefs = make([]string, 0, len(refs))
	for ref := range refs {
		method.MemberRefs = append(method.MemberRefs, ref)
	}
	sort.Strings(method.MemberRefs)

	calls := make(map[string]struct{}, len(w.Calls))
	for _, c := range w.Calls {
		calls[c] = struct{}{}
	}
	method.Calls = make([]string, 0, len(calls))
	for c := range calls {
		method.Calls = append(method.Calls, c)
	}
	sort.Strings(method.Calls)

	// Each unique collaborator-type member referenced contributes one point,
	// counted once per method regardless of call-site count.
	for _, ref := range method.MemberRefs {
		if m, ok := unit.FindMember(ref); ok && m.IsCollaborator {
			method.Contributions = append(method.Contributions, schema.LoadContribution{
				Category: schema.CollaboratorRef,
				Points:   1,
			})
		}
	}

	pipelines := 0
	contribs, err := flattenFragments(unit.ID, w.Name, w.Body, false, &pipelines)
	if err != nil {
		return schema.Method{}, err
	}
	method.Contributions = append(method.Contributions, contribs...)
	return method, nil
}

// flattenFragments walks the lexical fragment tree in order and emits load
// contributions. insideBranchOrLoop tracks whether any ancestor is a branch
// or loop; when true, branch/loop/try/catch fragments gain one extra point.
func flattenFragments(unitID, methodID string, fragments []fragmentWire, insideBranchOrLoop bool, pipelines *int) ([]schema.LoadContribution, error) {
	var out []schema.LoadContribution
	for _, f := range fragments {
		kind := strings.ToLower(f.Kind)
		switch kind {
		case "branch", "if", "switch":
			out = append(out, nestable(schema.Branch, insideBranchOrLoop))
		case "loop", "for", "while":
			out = append(out, nestable(schema.Loop, insideBranchOrLoop))
		case "try":
			out = append(out, nestable(schema.Try, insideBranchOrLoop))
		case "catch":
			out = append(out, nestable(schema.Catch, insideBranchOrLoop))
		case "lambda":
			out = append(out, schema.LoadContribution{Category: schema.Lambda, Points: 1})
		case "stream":
			stages := f.Stages
			if stages < 1 {
				stages = 1
			}
			*pipelines++
			for range stages {
				out = append(out, schema.LoadContribution{
					Category: schema.StreamStage,
					Points:   1,
					Pipeline: *pipelines,
				})
			}
		default:
			return nil, fmt.Errorf(
				"invariant: method %s.%s has unknown fragment kind %q", unitID, methodID, f.Kind)
		}

		if len(f.Body) == 0 {
			continue
		}
		childInside := insideBranchOrLoop
		switch kind {
		case "branch", "if", "switch", "loop", "for", "while":
			childInside = true
		}
		children, err := flattenFragments(unitID, methodID, f.Body, childInside, pipelines)
		if err != nil {
			return nil, err
		}
		out = append(out, children...)
	}
	return out, nil
}

// nestable emits a contribution for a category subject to the nesting rule.
// A nested branch is recorded under its own category so reports can show
// where the extra point came from.
func nestable(category schema.ContributionCategory, nested bool) schema.LoadContribution {
	points := 1
	if nested {
		points = 2
		if category == schema.Branch {
			category = schema.NestedBranch
		}
	}
	return schema.LoadContribution{Category: category, Points: points, Nested: nested}
}

// classifyMember decides collaborator vs. primitive for one member.
// The front-end's explicit flag wins; otherwise every identifier token in
// the type descriptor must be a standard type for the member to count as
// primitive, so List<Order> classifies as collaborator while Map<String,
// Int> does not.
func classifyMember(w memberWire) bool {
	if w.Collaborator != nil {
		return *w.Collaborator
	}
	tokens := splitTypeTokens(w.Type)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if _, ok := standardTypes[strings.ToLower(tok)]; !ok {
			return true
		}
	}
	return false
}

// splitTypeTokens breaks a type descriptor into identifier tokens, dropping
// generic punctuation and package qualifiers.
func splitTypeTokens(desc string) []string {
	fields := strings.FieldsFunc(desc, func(r rune) bool {
		switch r {
		case '<', '>', '[', ']', ',', ' ', '*', '&', '?':
			return true
		}
		return false
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		// Keep only the last path segment: java.util.List -> List
		if idx := strings.LastIndex(f, "."); idx >= 0 {
			f = f[idx+1:]
		}
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
