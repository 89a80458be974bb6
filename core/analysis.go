package core

import (
	"context"
	"sync"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
)

// collector is the single shared mutable resource of a run: a concurrency-safe
// append-only accumulator for violations and notes. Final ordering is restored
// deterministically by the report sort, not by insertion order.
type collector struct {
	mu         sync.Mutex
	violations []schema.Violation
	notes      []schema.Note
}

func (c *collector) addViolations(v ...schema.Violation) {
	if len(v) == 0 {
		return
	}
	c.mu.Lock()
	c.violations = append(c.violations, v...)
	c.mu.Unlock()
}

func (c *collector) addNotes(n ...schema.Note) {
	if len(n) == 0 {
		return
	}
	c.mu.Lock()
	c.notes = append(c.notes, n...)
	c.mu.Unlock()
}

// fetchResult carries the outcome of the optional co-change fetch.
type fetchResult struct {
	records []schema.CoChangeRecord
	err     error
}

// RunAnalysis executes the whole pipeline: build the structural graph, run
// the per-unit analyses concurrently, fold in drift detection, and assemble
// the deterministic report. The run supports cooperative cancellation: on a
// cancelled context a partial report is returned with its Cancelled flag set
// rather than truncating silently.
func RunAnalysis(ctx context.Context, cfg *contract.Config, adapter contract.FrontendAdapter, source contract.CoChangeSource) (*schema.Report, error) {
	model, err := BuildModel(ctx, cfg, adapter)
	if err != nil {
		return nil, err
	}

	// The co-change fetch is bounded, cancellable I/O that only the shotgun
	// surgery stage waits on, so it runs alongside the per-unit analyses.
	var fetchCh chan fetchResult
	if source != nil {
		fetchCh = make(chan fetchResult, 1)
		go func() {
			records, err := source.Fetch(ctx)
			fetchCh <- fetchResult{records: records, err: err}
		}()
	}

	resolver := contract.NewMarkerMapResolver(cfg.RoleMarkers)
	acc := &collector{}

	// Per-unit analyses need the complete graph only for their own unit,
	// so they run concurrently with no cross-unit coordination.
	jobs := make(chan int, len(model.Units))
	unitResults := make(chan schema.UnitAnalysis, len(model.Units))
	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Go(func() {
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				ua, violations, notes := analyzeUnit(cfg, &model.Units[idx], resolver)
				acc.addViolations(violations...)
				acc.addNotes(notes...)
				unitResults <- ua
			}
		})
	}
	for i := range model.Units {
		jobs <- i
	}
	close(jobs)

	// First barrier: every per-unit score, role and cohesion partition done.
	wg.Wait()
	close(unitResults)

	units := make([]schema.UnitAnalysis, 0, len(model.Units))
	for ua := range unitResults {
		units = append(units, ua)
	}

	// Second barrier: shotgun surgery needs all cohesion partitions plus
	// the co-change fetch. A failed or absent source degrades gracefully.
	if fetchCh != nil && ctx.Err() == nil {
		res := <-fetchCh
		if res.err != nil {
			contract.LogWarn("Co-change history unavailable, skipping shotgun surgery detection", res.err)
		} else {
			acc.addViolations(shotgunSurgeryViolations(cfg, model, res.records)...)
		}
	}

	return assembleReport(cfg, units, acc, model.Skipped, ctx.Err() != nil), nil
}

// analyzeUnit computes every derived record for one unit: role, method
// scores, cohesion partition, and the violations they imply.
func analyzeUnit(cfg *contract.Config, u *schema.StructuralUnit, resolver contract.RoleResolver) (schema.UnitAnalysis, []schema.Violation, []schema.Note) {
	role, notes := classifyUnit(u, resolver)
	methodScores, total := scoreUnit(u, cfg.StreamPolicy)
	cohesion := analyzeCohesion(u)

	ua := schema.UnitAnalysis{
		Unit:         u.ID,
		Role:         role,
		MethodScores: methodScores,
		TotalScore:   total,
		Threshold:    cfg.Thresholds[role],
		Cohesion:     cohesion,
	}

	var violations []schema.Violation
	violations = append(violations, loadViolations(cfg, role, methodScores)...)
	violations = append(violations, cohesionViolations(cfg, &cohesion)...)
	violations = append(violations, divergentChangeViolations(cfg, &cohesion)...)
	for i := range violations {
		if violations[i].Unit == "" {
			violations[i].Unit = u.ID
		}
	}
	return ua, violations, notes
}
