// Package schema has configs, models and shared types for all parts of cogload.
package schema

// Member represents a single field of a structural unit.
type Member struct {
	Name string `json:"name"`
	Type string `json:"type"`
	// IsCollaborator is true when the member's type is another system unit
	// rather than a primitive or standard type. Only collaborator members
	// count toward cognitive load and cohesion.
	IsCollaborator bool `json:"isCollaborator"`
}

// LoadContribution is one counted fragment of a method body.
type LoadContribution struct {
	Category ContributionCategory `json:"category"`
	// Points is 1 for every category, or 2 when the nesting rule applies
	// (a branch, loop, try or catch lexically inside another branch or loop).
	Points int  `json:"points"`
	Nested bool `json:"nested,omitempty"`
	// Pipeline groups stream-stage contributions belonging to one stream
	// pipeline (1-based per method, 0 for every other category), so the
	// scorer can collapse a whole chain to a single point under the
	// per-pipeline counting policy.
	Pipeline int `json:"pipeline,omitempty"`
}

// Method represents a single method of a structural unit. The Unit field is a
// non-owning back-reference to the owning unit's id.
type Method struct {
	Name          string             `json:"name"`
	Unit          string             `json:"unit"`
	MemberRefs    []string           `json:"memberRefs,omitempty"`
	Calls         []string           `json:"calls,omitempty"`
	Contributions []LoadContribution `json:"contributions,omitempty"`
}

// StructuralUnit is the language-agnostic stand-in for a class or component.
// It exclusively owns its members and methods. Once the builder has produced
// a unit, it is never mutated; scores, roles and cohesion records are derived
// values computed from it on demand.
type StructuralUnit struct {
	ID      string   `json:"id"`
	Path    string   `json:"path,omitempty"`
	Markers []string `json:"markers,omitempty"`
	Members []Member `json:"members,omitempty"`
	Methods []Method `json:"methods,omitempty"`
}

// Collaborators returns the unit's collaborator-typed members in declaration order.
func (u *StructuralUnit) Collaborators() []Member {
	out := make([]Member, 0, len(u.Members))
	for _, m := range u.Members {
		if m.IsCollaborator {
			out = append(out, m)
		}
	}
	return out
}

// FindMember returns the member with the given name, if present.
func (u *StructuralUnit) FindMember(name string) (Member, bool) {
	for _, m := range u.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// SkippedUnit records a source document that could not be turned into a unit.
type SkippedUnit struct {
	Path   string `json:"path"`
	Unit   string `json:"unit,omitempty"`
	Reason string `json:"reason"`
}

// CoChangeRecord is one entry of external co-change history: a unit that took
// part in a coordinated edit at the given Unix timestamp.
type CoChangeRecord struct {
	Unit      string `json:"unit"`
	Timestamp int64  `json:"timestamp"`
}
