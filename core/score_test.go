package core

import (
	"testing"

	"github.com/huangsam/cogload/schema"
	"github.com/stretchr/testify/assert"
)

// TestScoreMethod verifies the contribution arithmetic per stream policy.
func TestScoreMethod(t *testing.T) {
	tests := []struct {
		name          string
		contributions []schema.LoadContribution
		policy        schema.StreamPolicy
		expected      int
	}{
		{
			name:          "no contributions scores zero",
			contributions: nil,
			policy:        schema.PerStage,
			expected:      0,
		},
		{
			name: "flat branch and loop",
			contributions: []schema.LoadContribution{
				{Category: schema.Branch, Points: 1},
				{Category: schema.Loop, Points: 1},
			},
			policy:   schema.PerStage,
			expected: 2,
		},
		{
			name: "nested branch costs two",
			contributions: []schema.LoadContribution{
				{Category: schema.Loop, Points: 1},
				{Category: schema.NestedBranch, Points: 2, Nested: true},
			},
			policy:   schema.PerStage,
			expected: 3,
		},
		{
			name: "collaborator refs count once each",
			contributions: []schema.LoadContribution{
				{Category: schema.CollaboratorRef, Points: 1},
				{Category: schema.CollaboratorRef, Points: 1},
				{Category: schema.Lambda, Points: 1},
			},
			policy:   schema.PerStage,
			expected: 3,
		},
		{
			name: "stream stages counted per stage",
			contributions: []schema.LoadContribution{
				{Category: schema.StreamStage, Points: 1, Pipeline: 1},
				{Category: schema.StreamStage, Points: 1, Pipeline: 1},
				{Category: schema.StreamStage, Points: 1, Pipeline: 1},
			},
			policy:   schema.PerStage,
			expected: 3,
		},
		{
			name: "stream pipeline collapses under per-pipeline",
			contributions: []schema.LoadContribution{
				{Category: schema.StreamStage, Points: 1, Pipeline: 1},
				{Category: schema.StreamStage, Points: 1, Pipeline: 1},
				{Category: schema.StreamStage, Points: 1, Pipeline: 1},
			},
			policy:   schema.PerPipeline,
			expected: 1,
		},
		{
			name: "two pipelines stay distinct under per-pipeline",
			contributions: []schema.LoadContribution{
				{Category: schema.StreamStage, Points: 1, Pipeline: 1},
				{Category: schema.StreamStage, Points: 1, Pipeline: 1},
				{Category: schema.StreamStage, Points: 1, Pipeline: 2},
				{Category: schema.Branch, Points: 1},
			},
			policy:   schema.PerPipeline,
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &schema.Method{Name: "m", Contributions: tt.contributions}
			assert.Equal(t, tt.expected, scoreMethod(m, tt.policy))
		})
	}
}

// TestScoreUnit verifies that the unit total is always the sum of methods.
func TestScoreUnit(t *testing.T) {
	unit := &schema.StructuralUnit{
		ID: "OrderService",
		Methods: []schema.Method{
			{Name: "a", Contributions: []schema.LoadContribution{
				{Category: schema.Branch, Points: 1},
				{Category: schema.Loop, Points: 1},
			}},
			{Name: "b"},
			{Name: "c", Contributions: []schema.LoadContribution{
				{Category: schema.NestedBranch, Points: 2, Nested: true},
			}},
		},
	}

	scores, total := scoreUnit(unit, schema.PerStage)
	assert.Equal(t, 4, total)
	assert.Equal(t, []schema.MethodScore{
		{Method: "a", Score: 2},
		{Method: "b", Score: 0},
		{Method: "c", Score: 2},
	}, scores)
}

// TestAggregateScore verifies the sum and max policies for ceiling checks.
func TestAggregateScore(t *testing.T) {
	scores := []schema.MethodScore{
		{Method: "a", Score: 4},
		{Method: "b", Score: 1},
		{Method: "c", Score: 6},
	}

	assert.Equal(t, 11, aggregateScore(scores, schema.SumAggregate))
	assert.Equal(t, 6, aggregateScore(scores, schema.MaxAggregate))
	assert.Equal(t, 0, aggregateScore(nil, schema.SumAggregate))
	assert.Equal(t, 0, aggregateScore(nil, schema.MaxAggregate))
}
