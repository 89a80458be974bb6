package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
)

// classifyUnit resolves a unit's architectural role through the pluggable
// resolver. The engine never guesses: when no marker resolves the unit stays
// Unclassified with an info note (scored and reported, no ceiling enforced),
// and conflicting markers produce a warning note instead of a silent pick.
func classifyUnit(u *schema.StructuralUnit, resolver contract.RoleResolver) (schema.Role, []schema.Note) {
	role, ok, conflicts := resolver.Resolve(u.Markers)
	if ok {
		return role, nil
	}

	var notes []schema.Note
	if len(conflicts) > 0 {
		names := make([]string, len(conflicts))
		for i, c := range conflicts {
			names[i] = string(c)
		}
		notes = append(notes, schema.Note{
			Unit:     u.ID,
			Severity: schema.WarningSeverity,
			Message:  fmt.Sprintf("conflicting role markers resolve to %s; treating as unclassified", strings.Join(names, ", ")),
		})
	} else {
		notes = append(notes, schema.Note{
			Unit:     u.ID,
			Severity: schema.InfoSeverity,
			Message:  "no role marker resolved; unit is scored but no ceiling is enforced",
		})
	}
	return schema.Unclassified, notes
}
