package core

import "github.com/huangsam/cogload/schema"

// scoreMethod computes a method's cognitive load score: the sum of its
// contribution points. It is a pure function of the method and the stream
// counting policy; under the per-pipeline policy a whole stream chain counts
// once instead of once per stage.
func scoreMethod(m *schema.Method, policy schema.StreamPolicy) int {
	total := 0
	seenPipelines := make(map[int]struct{})
	for _, c := range m.Contributions {
		if c.Category == schema.StreamStage && policy == schema.PerPipeline {
			if _, seen := seenPipelines[c.Pipeline]; seen {
				continue
			}
			seenPipelines[c.Pipeline] = struct{}{}
			total++
			continue
		}
		total += c.Points
	}
	return total
}

// scoreUnit computes all method scores for a unit plus their sum. The sum is
// what reports show as the unit total; ceiling enforcement for aggregate
// roles applies its own policy via aggregateScore.
func scoreUnit(u *schema.StructuralUnit, streamPolicy schema.StreamPolicy) ([]schema.MethodScore, int) {
	scores := make([]schema.MethodScore, 0, len(u.Methods))
	total := 0
	for i := range u.Methods {
		s := scoreMethod(&u.Methods[i], streamPolicy)
		scores = append(scores, schema.MethodScore{Method: u.Methods[i].Name, Score: s})
		total += s
	}
	return scores, total
}

// aggregateScore combines method scores for the unit-level ceiling check of
// entity and value-object units: sum of all methods by default, or the max
// single method under the alternative policy.
func aggregateScore(scores []schema.MethodScore, policy schema.AggregatePolicy) int {
	agg := 0
	for _, s := range scores {
		switch policy {
		case schema.MaxAggregate:
			if s.Score > agg {
				agg = s.Score
			}
		default:
			agg += s.Score
		}
	}
	return agg
}
