package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/cogload/internal/frontend"
	"github.com/huangsam/cogload/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDescriptor writes one descriptor file into dir and returns its path.
func writeDescriptor(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const orderResourceDescriptor = `{
  "id": "OrderResource",
  "markers": ["@RestController"],
  "members": [
    {"name": "orders", "type": "OrderRepository"},
    {"name": "audit", "type": "AuditLog"}
  ],
  "methods": [
    {
      "name": "createOrder",
      "uses": ["orders", "audit"],
      "body": [
        {"kind": "loop", "body": [{"kind": "branch"}]},
        {"kind": "try", "body": [{"kind": "lambda"}]},
        {"kind": "catch"}
      ]
    }
  ]
}`

const priceCalcDescriptor = `{
  "units": [
    {
      "id": "PriceCalculator",
      "markers": ["@Service"],
      "members": [{"name": "rates", "type": "RateTable"}],
      "methods": [
        {"name": "total", "uses": ["rates"], "body": [{"kind": "stream", "stages": 3}]}
      ]
    }
  ]
}`

// fakeCoChangeSource returns canned records or a canned error.
type fakeCoChangeSource struct {
	records []schema.CoChangeRecord
	err     error
}

func (f *fakeCoChangeSource) Fetch(_ context.Context) ([]schema.CoChangeRecord, error) {
	return f.records, f.err
}

func TestRunAnalysisEndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeDescriptor(t, dir, "order.unit.json", orderResourceDescriptor)
	writeDescriptor(t, dir, "price.units.json", priceCalcDescriptor)

	cfg := testConfig()
	cfg.Paths = []string{dir}
	cfg.RoleMarkers = map[string]schema.Role{
		"@RestController": schema.Controller,
		"@Service":        schema.DomainService,
	}

	report, err := RunAnalysis(ctx, cfg, frontend.NewAdapter(), nil)
	require.NoError(t, err)
	require.Len(t, report.Units, 2)

	// Units come back sorted by id.
	order := report.Units[0]
	price := report.Units[1]
	assert.Equal(t, "OrderResource", order.Unit)
	assert.Equal(t, schema.Controller, order.Role)
	assert.Equal(t, "PriceCalculator", price.Unit)
	assert.Equal(t, schema.DomainService, price.Role)

	// createOrder: 2 collaborator refs + loop(1) + nested branch(2) +
	// try(1) + lambda(1) + catch(1) = 8, one over the controller ceiling.
	require.Len(t, order.MethodScores, 1)
	assert.Equal(t, 8, order.MethodScores[0].Score)

	var overloads []schema.Violation
	for _, v := range report.Violations {
		if v.Kind == schema.OverLoad {
			overloads = append(overloads, v)
		}
	}
	require.Len(t, overloads, 1)
	assert.Equal(t, "OrderResource", overloads[0].Unit)
	assert.Equal(t, "createOrder", overloads[0].Method)
	assert.Equal(t, 8, overloads[0].Score)
	assert.Equal(t, 7, overloads[0].Threshold)
	assert.False(t, report.Clean)

	// total: 1 collaborator ref + 3 stream stages = 4, under the ceiling.
	require.Len(t, price.MethodScores, 1)
	assert.Equal(t, 4, price.MethodScores[0].Score)
}

func TestRunAnalysisStreamPolicy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeDescriptor(t, dir, "price.units.json", priceCalcDescriptor)

	cfg := testConfig()
	cfg.Paths = []string{dir}
	cfg.StreamPolicy = schema.PerPipeline

	report, err := RunAnalysis(ctx, cfg, frontend.NewAdapter(), nil)
	require.NoError(t, err)
	require.Len(t, report.Units, 1)
	// 1 collaborator ref + whole pipeline counted once = 2.
	assert.Equal(t, 2, report.Units[0].TotalScore)
}

func TestRunAnalysisUnclassified(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeDescriptor(t, dir, "order.unit.json", orderResourceDescriptor)

	cfg := testConfig()
	cfg.Paths = []string{dir}
	// No marker map: the unit stays unclassified with an info note and no
	// ceiling is enforced despite the high score.

	report, err := RunAnalysis(ctx, cfg, frontend.NewAdapter(), nil)
	require.NoError(t, err)
	require.Len(t, report.Units, 1)
	assert.Equal(t, schema.Unclassified, report.Units[0].Role)

	for _, v := range report.Violations {
		assert.NotEqual(t, schema.OverLoad, v.Kind)
	}
	require.Len(t, report.Notes, 1)
	assert.Equal(t, schema.InfoSeverity, report.Notes[0].Severity)
	assert.True(t, report.Clean)
}

func TestRunAnalysisBrokenCoChangeSource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeDescriptor(t, dir, "price.units.json", priceCalcDescriptor)

	cfg := testConfig()
	cfg.Paths = []string{dir}
	source := &fakeCoChangeSource{err: errors.New("disk gone")}

	// A broken source degrades to skipping shotgun surgery, not failing.
	report, err := RunAnalysis(ctx, cfg, frontend.NewAdapter(), source)
	require.NoError(t, err)
	for _, v := range report.Violations {
		assert.NotEqual(t, schema.ShotgunSurgery, v.Kind)
	}
}

func TestRunAnalysisShotgunSurgery(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, id := range []string{"Alpha", "Beta", "Gamma"} {
		writeDescriptor(t, dir, id+".unit.json", `{"id": "`+id+`", "methods": [{"name": "run"}]}`)
	}

	cfg := testConfig()
	cfg.Paths = []string{dir}
	source := &fakeCoChangeSource{
		records: coChangeBurst([]string{"Alpha", "Beta", "Gamma"}, 10, 20, 30),
	}

	report, err := RunAnalysis(ctx, cfg, frontend.NewAdapter(), source)
	require.NoError(t, err)

	var shotgun []schema.Violation
	for _, v := range report.Violations {
		if v.Kind == schema.ShotgunSurgery {
			shotgun = append(shotgun, v)
		}
	}
	require.Len(t, shotgun, 1)
	assert.Equal(t, "Alpha", shotgun[0].Unit)
}

// TestRunAnalysisDeterministic runs the same input twice with different
// worker counts and expects byte-identical JSON reports.
func TestRunAnalysisDeterministic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeDescriptor(t, dir, "order.unit.json", orderResourceDescriptor)
	writeDescriptor(t, dir, "price.units.json", priceCalcDescriptor)
	writeDescriptor(t, dir, "mixed.unit.json", `{
	  "id": "Mixed",
	  "members": [
	    {"name": "parser", "type": "Parser"},
	    {"name": "mailer", "type": "Mailer"}
	  ],
	  "methods": [
	    {"name": "parse", "uses": ["parser"]},
	    {"name": "notify", "uses": ["mailer"]}
	  ]
	}`)

	run := func(workers int) []byte {
		cfg := testConfig()
		cfg.Paths = []string{dir}
		cfg.Workers = workers
		report, err := RunAnalysis(ctx, cfg, frontend.NewAdapter(), nil)
		require.NoError(t, err)
		data, err := json.Marshal(report)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(1), run(8))
}

func TestRunAnalysisCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "price.units.json", priceCalcDescriptor)

	cfg := testConfig()
	cfg.Paths = []string{dir}

	report, err := RunAnalysis(ctx, cfg, frontend.NewAdapter(), nil)
	if err != nil {
		// Cancellation may surface during discovery instead.
		assert.ErrorIs(t, err, context.Canceled)
		return
	}
	assert.True(t, report.Cancelled)
}
