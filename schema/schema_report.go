package schema

import "sort"

// SplitGroup is one suggested extraction boundary: a set of methods together
// with the collaborator members they share.
type SplitGroup struct {
	Methods []string `json:"methods"`
	Members []string `json:"members"`
}

// Violation is one finding produced by the analysis.
type Violation struct {
	Kind           ViolationKind `json:"kind"`
	Unit           string        `json:"unitId"`
	Method         string        `json:"methodId,omitempty"`
	Score          int           `json:"score,omitempty"`
	Threshold      int           `json:"threshold,omitempty"`
	Severity       Severity      `json:"severity"`
	Message        string        `json:"message"`
	SuggestedSplit []SplitGroup  `json:"suggestedSplit,omitempty"`
}

// MethodScore pairs a method with its computed cognitive load score.
type MethodScore struct {
	Method string `json:"method"`
	Score  int    `json:"score"`
}

// CohesionRecord is the derived member-usage partition for one unit.
// It is computed once per unit and shared read-only between the cohesion
// analyzer and the drift detector.
type CohesionRecord struct {
	Unit string `json:"unit"`
	// Ratio is the mean over methods of (collaborator members referenced / N),
	// where N is the number of collaborator members. Defined as 1.0 when N is 0.
	Ratio float64 `json:"ratio"`
	// Components are the connected components of the bipartite member-method
	// usage graph, each one a candidate extraction boundary.
	Components    []SplitGroup `json:"components,omitempty"`
	UnusedMembers []string     `json:"unusedMembers,omitempty"`
}

// UnitAnalysis is the derived per-unit view merged into the final report.
type UnitAnalysis struct {
	Unit         string         `json:"unit"`
	Role         Role           `json:"role"`
	MethodScores []MethodScore  `json:"methodScores,omitempty"`
	TotalScore   int            `json:"totalScore"`
	Threshold    int            `json:"threshold,omitempty"`
	Cohesion     CohesionRecord `json:"cohesion"`
}

// Note is a non-violation diagnostic attached to the report, such as a
// classification ambiguity. Notes never affect the exit code.
type Note struct {
	Unit     string   `json:"unit"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the complete outcome of one analysis run.
type Report struct {
	Units      []UnitAnalysis `json:"units"`
	Violations []Violation    `json:"violations"`
	Notes      []Note         `json:"notes,omitempty"`
	Skipped    []SkippedUnit  `json:"skipped,omitempty"`
	// Clean is true iff no violation at or above the configured severity
	// threshold exists. It is the sole driver of the process exit code.
	Clean     bool `json:"clean"`
	Cancelled bool `json:"cancelled,omitempty"`
}

// SortViolations orders violations by severity (highest first), then unit id,
// then kind, then method id. The order is total, so reports for identical
// input are byte-identical.
func SortViolations(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if ra, rb := SeverityRank(a.Severity), SeverityRank(b.Severity); ra != rb {
			return ra > rb
		}
		if a.Unit != b.Unit {
			return a.Unit < b.Unit
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Method < b.Method
	})
}

// SortUnits orders unit analyses by unit id.
func SortUnits(units []UnitAnalysis) {
	sort.Slice(units, func(i, j int) bool {
		return units[i].Unit < units[j].Unit
	})
}

// SortNotes orders notes by severity (highest first), then unit id, then message.
func SortNotes(notes []Note) {
	sort.Slice(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if ra, rb := SeverityRank(a.Severity), SeverityRank(b.Severity); ra != rb {
			return ra > rb
		}
		if a.Unit != b.Unit {
			return a.Unit < b.Unit
		}
		return a.Message < b.Message
	})
}

// SortSkipped orders skip records by path, then unit id.
func SortSkipped(skipped []SkippedUnit) {
	sort.Slice(skipped, func(i, j int) bool {
		if skipped[i].Path != skipped[j].Path {
			return skipped[i].Path < skipped[j].Path
		}
		return skipped[i].Unit < skipped[j].Unit
	})
}

// CountBySeverity tallies violations per severity level.
func CountBySeverity(violations []Violation) map[Severity]int {
	counts := make(map[Severity]int)
	for _, v := range violations {
		counts[v.Severity]++
	}
	return counts
}
