package core

import (
	"sort"

	"github.com/huangsam/cogload/schema"
)

// analyzeCohesion builds the bipartite usage graph between a unit's
// collaborator members and its methods and derives the cohesion ratio plus
// the connected-component partition. This is a deterministic
// graph-partitioning computation, not a heuristic: each component is a
// candidate extraction boundary. The record is computed once per unit and
// shared read-only with the drift detector.
func analyzeCohesion(u *schema.StructuralUnit) schema.CohesionRecord {
	record := schema.CohesionRecord{Unit: u.ID}

	collaborators := u.Collaborators()
	n := len(collaborators)
	isCollaborator := make(map[string]struct{}, n)
	for _, m := range collaborators {
		isCollaborator[m.Name] = struct{}{}
	}

	// usage[method] = collaborator members it references
	usage := make(map[string][]string, len(u.Methods))
	used := make(map[string]struct{}, n)
	for _, method := range u.Methods {
		var refs []string
		for _, ref := range method.MemberRefs {
			if _, ok := isCollaborator[ref]; ok {
				refs = append(refs, ref)
				used[ref] = struct{}{}
			}
		}
		usage[method.Name] = refs
	}

	// Cohesion ratio: mean over methods of the fraction of collaborators
	// each method touches. A unit without collaborators (or without
	// methods) has nothing to split, so its ratio is defined as 1.0.
	if n == 0 || len(u.Methods) == 0 {
		record.Ratio = 1.0
	} else {
		sum := 0.0
		for _, method := range u.Methods {
			sum += float64(len(usage[method.Name])) / float64(n)
		}
		record.Ratio = sum / float64(len(u.Methods))
	}

	for _, m := range collaborators {
		if _, ok := used[m.Name]; !ok {
			record.UnusedMembers = append(record.UnusedMembers, m.Name)
		}
	}
	sort.Strings(record.UnusedMembers)

	record.Components = usageComponents(u, usage)
	return record
}

// usageComponents partitions methods into connected components of the
// bipartite graph via union-find. Methods that reference no collaborator
// member are left out: they carry no usage evidence either way.
func usageComponents(u *schema.StructuralUnit, usage map[string][]string) []schema.SplitGroup {
	uf := newUnionFind()
	for _, method := range u.Methods {
		refs := usage[method.Name]
		if len(refs) == 0 {
			continue
		}
		methodKey := "m:" + method.Name
		for _, ref := range refs {
			uf.union(methodKey, "f:"+ref)
		}
	}

	groups := make(map[string]*schema.SplitGroup)
	for _, method := range u.Methods {
		refs := usage[method.Name]
		if len(refs) == 0 {
			continue
		}
		root := uf.find("m:" + method.Name)
		g, ok := groups[root]
		if !ok {
			g = &schema.SplitGroup{}
			groups[root] = g
		}
		g.Methods = append(g.Methods, method.Name)
		for _, ref := range refs {
			g.Members = append(g.Members, ref)
		}
	}

	components := make([]schema.SplitGroup, 0, len(groups))
	for _, g := range groups {
		sort.Strings(g.Methods)
		g.Members = dedupSorted(g.Members)
		components = append(components, *g)
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i].Methods[0] < components[j].Methods[0]
	})
	return components
}

// dedupSorted sorts a string slice and removes duplicates in place.
func dedupSorted(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	for i, s := range in {
		if i == 0 || s != in[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// unionFind is a plain disjoint-set over string keys.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (uf *unionFind) find(key string) string {
	p, ok := uf.parent[key]
	if !ok {
		uf.parent[key] = key
		return key
	}
	if p == key {
		return key
	}
	root := uf.find(p)
	uf.parent[key] = root
	return root
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[rb] = ra
	}
}
