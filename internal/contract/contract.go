// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"sort"

	"github.com/huangsam/cogload/schema"
)

// FrontendAdapter supplies the normalized structural model for a run.
// Concrete parsing of source ecosystems happens outside the engine; an adapter
// only discovers and decodes normalized unit descriptors. This allows the core
// analysis logic to be tested without touching the filesystem.
type FrontendAdapter interface {
	// Discover returns the descriptor files reachable from the given paths,
	// with exclusion patterns already applied. The result is sorted.
	Discover(ctx context.Context, paths []string, excludes []string) ([]string, error)

	// DecodeFile decodes one descriptor file into structural units.
	// Units that fail their own consistency checks come back as skip
	// records; err is reserved for file-level failures (unreadable or
	// undecodable documents). The caller decides whether a file-level
	// failure skips the file or aborts the run.
	DecodeFile(ctx context.Context, path string) ([]schema.StructuralUnit, []schema.SkippedUnit, error)
}

// RoleResolver resolves a unit's architectural role from its marker strings.
// Markers are ecosystem-specific metadata (framework annotations, naming
// conventions) supplied by the front-end; the engine never hardcodes them.
type RoleResolver interface {
	// Resolve returns the role for the given markers. When no marker is
	// known the role is Unclassified and ok is false. When markers map to
	// conflicting roles, the role is Unclassified, ok is false, and the
	// conflicting roles are returned for diagnostics.
	Resolve(markers []string) (role schema.Role, ok bool, conflicts []schema.Role)
}

// CoChangeSource supplies historical co-change records for shotgun surgery
// detection. A nil source means the sub-detector is skipped entirely.
type CoChangeSource interface {
	// Fetch reads all co-change records. It must honor context cancellation.
	Fetch(ctx context.Context) ([]schema.CoChangeRecord, error)
}

// MarkerMapResolver is the default RoleResolver: an immutable marker-to-role
// lookup table loaded once per run from the role marker map file.
type MarkerMapResolver struct {
	markers map[string]schema.Role
}

// NewMarkerMapResolver builds a resolver from a marker-to-role mapping.
func NewMarkerMapResolver(markers map[string]schema.Role) *MarkerMapResolver {
	copied := make(map[string]schema.Role, len(markers))
	for k, v := range markers {
		copied[k] = v
	}
	return &MarkerMapResolver{markers: copied}
}

// Resolve implements RoleResolver.
func (r *MarkerMapResolver) Resolve(markers []string) (schema.Role, bool, []schema.Role) {
	var resolved schema.Role
	seen := make(map[schema.Role]struct{})
	for _, m := range markers {
		role, ok := r.markers[m]
		if !ok {
			continue
		}
		if _, dup := seen[role]; !dup {
			seen[role] = struct{}{}
			resolved = role
		}
	}
	switch len(seen) {
	case 0:
		return schema.Unclassified, false, nil
	case 1:
		return resolved, true, nil
	default:
		conflicts := make([]schema.Role, 0, len(seen))
		for role := range seen {
			conflicts = append(conflicts, role)
		}
		sort.Slice(conflicts, func(i, j int) bool { return conflicts[i] < conflicts[j] })
		return schema.Unclassified, false, conflicts
	}
}
