package core

import (
	"testing"

	"github.com/huangsam/cogload/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivergentChangeViolations(t *testing.T) {
	cfg := testConfig()

	t.Run("single component is quiet", func(t *testing.T) {
		record := &schema.CohesionRecord{
			Unit:       "U",
			Components: []schema.SplitGroup{{Methods: []string{"a"}}},
		}
		assert.Empty(t, divergentChangeViolations(cfg, record))
	})

	t.Run("k components yield k minus one findings", func(t *testing.T) {
		record := &schema.CohesionRecord{
			Unit: "U",
			Components: []schema.SplitGroup{
				{Methods: []string{"a"}, Members: []string{"x"}},
				{Methods: []string{"b"}, Members: []string{"y"}},
				{Methods: []string{"c"}, Members: []string{"z"}},
			},
		}
		violations := divergentChangeViolations(cfg, record)
		require.Len(t, violations, 2)
		for i, v := range violations {
			assert.Equal(t, schema.DivergentChange, v.Kind)
			assert.Equal(t, schema.InfoSeverity, v.Severity)
			assert.Equal(t, "U", v.Unit)
			require.Len(t, v.SuggestedSplit, 1)
			assert.Equal(t, record.Components[i+1], v.SuggestedSplit[0])
		}
	})
}

// buildDriftModel builds a minimal structural graph for shotgun tests.
func buildDriftModel(t *testing.T, calls map[string][]string, ids ...string) *Model {
	t.Helper()
	model := &Model{index: make(map[string]int)}
	for _, id := range ids {
		unit := schema.StructuralUnit{ID: id}
		if callees, ok := calls[id]; ok {
			unit.Methods = append(unit.Methods, schema.Method{Name: "m", Unit: id, Calls: callees})
		}
		model.index[id] = len(model.Units)
		model.Units = append(model.Units, unit)
	}
	return model
}

// coChangeBurst emits one record per unit at each of the given timestamps.
func coChangeBurst(units []string, timestamps ...int64) []schema.CoChangeRecord {
	var records []schema.CoChangeRecord
	for _, ts := range timestamps {
		for _, u := range units {
			records = append(records, schema.CoChangeRecord{Unit: u, Timestamp: ts})
		}
	}
	return records
}

func TestShotgunSurgeryViolations(t *testing.T) {
	cfg := testConfig()
	trio := []string{"Alpha", "Beta", "Gamma"}

	t.Run("three unrelated units co-changing often are flagged", func(t *testing.T) {
		model := buildDriftModel(t, nil, trio...)
		records := coChangeBurst(trio, 100, 200, 300)
		violations := shotgunSurgeryViolations(cfg, model, records)
		require.Len(t, violations, 1)
		assert.Equal(t, schema.ShotgunSurgery, violations[0].Kind)
		assert.Equal(t, "Alpha", violations[0].Unit)
		assert.Contains(t, violations[0].Message, "Alpha, Beta, Gamma")
	})

	t.Run("below the co-change minimum nothing fires", func(t *testing.T) {
		model := buildDriftModel(t, nil, trio...)
		records := coChangeBurst(trio, 100, 200)
		assert.Empty(t, shotgunSurgeryViolations(cfg, model, records))
	})

	t.Run("a pair is not a cluster", func(t *testing.T) {
		duo := []string{"Alpha", "Beta"}
		model := buildDriftModel(t, nil, duo...)
		records := coChangeBurst(duo, 100, 200, 300)
		assert.Empty(t, shotgunSurgeryViolations(cfg, model, records))
	})

	t.Run("structurally related clusters are exempt", func(t *testing.T) {
		model := buildDriftModel(t, map[string][]string{"Alpha": {"Beta"}}, trio...)
		records := coChangeBurst(trio, 100, 200, 300)
		assert.Empty(t, shotgunSurgeryViolations(cfg, model, records))
	})

	t.Run("units outside the structural graph are ignored", func(t *testing.T) {
		model := buildDriftModel(t, nil, "Alpha", "Beta")
		records := coChangeBurst(trio, 100, 200, 300)
		// Gamma is unknown, leaving only a pair.
		assert.Empty(t, shotgunSurgeryViolations(cfg, model, records))
	})

	t.Run("raised minimum suppresses borderline clusters", func(t *testing.T) {
		strictCfg := testConfig()
		strictCfg.MinCoChange = 4
		model := buildDriftModel(t, nil, trio...)
		records := coChangeBurst(trio, 100, 200, 300)
		assert.Empty(t, shotgunSurgeryViolations(strictCfg, model, records))
	})
}
