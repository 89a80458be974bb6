package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
	"golang.org/x/sync/errgroup"
)

// Model is the immutable structural graph for one analysis run. Once built
// it is only ever read; every derived value (scores, roles, cohesion
// records) is computed from it on demand.
type Model struct {
	Units   []schema.StructuralUnit
	Skipped []schema.SkippedUnit

	index map[string]int
}

// Unit returns the unit with the given id, if present.
func (m *Model) Unit(id string) (*schema.StructuralUnit, bool) {
	idx, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return &m.Units[idx], true
}

// Has reports whether a unit with the given id exists in the graph.
func (m *Model) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// decodeResult carries the outcome of decoding one descriptor file.
type decodeResult struct {
	path    string
	units   []schema.StructuralUnit
	skipped []schema.SkippedUnit
	err     error
}

// BuildModel discovers and decodes all descriptor files into the structural
// graph. Decoding is parallel at file granularity: each file is handled by an
// independent task writing only to an append-only result collector. Malformed
// files and invariant-violating units become skip records; only a failure to
// read the input paths themselves aborts the run.
func BuildModel(ctx context.Context, cfg *contract.Config, adapter contract.FrontendAdapter) (*Model, error) {
	files, err := adapter.Discover(ctx, cfg.Paths, cfg.Excludes)
	if err != nil {
		return nil, fmt.Errorf("discovering descriptors: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no unit descriptors found under %v", cfg.Paths)
	}

	var (
		mu      sync.Mutex
		results []decodeResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, f := range files {
		g.Go(func() error {
			units, skipped, err := adapter.DecodeFile(gctx, f)
			mu.Lock()
			results = append(results, decodeResult{path: f, units: units, skipped: skipped, err: err})
			mu.Unlock()
			// Decode failures are per-unit data, not task failures; the
			// only error that stops the group is cancellation.
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic assembly regardless of completion order.
	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	model := &Model{index: make(map[string]int)}
	for _, r := range results {
		if r.err != nil {
			model.Skipped = append(model.Skipped, schema.SkippedUnit{
				Path:   r.path,
				Reason: r.err.Error(),
			})
			continue
		}
		model.Skipped = append(model.Skipped, r.skipped...)
		for _, u := range r.units {
			if prev, dup := model.index[u.ID]; dup {
				model.Skipped = append(model.Skipped, schema.SkippedUnit{
					Path:   u.Path,
					Unit:   u.ID,
					Reason: fmt.Sprintf("duplicate unit id, first defined in %s", model.Units[prev].Path),
				})
				continue
			}
			model.index[u.ID] = len(model.Units)
			model.Units = append(model.Units, u)
		}
	}

	sort.Slice(model.Units, func(i, j int) bool { return model.Units[i].ID < model.Units[j].ID })
	for i, u := range model.Units {
		model.index[u.ID] = i
	}
	schema.SortSkipped(model.Skipped)

	return model, nil
}
