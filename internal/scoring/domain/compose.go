package domain

import "math"

// ScoredGoal is a goal aggregate with its attempt-ratio score bucket.
type ScoredGoal struct {
	GoalAggregate
	ScoreBucket int
}

// ComposeScore converts per-goal aggregates into a single 0-100 focus
// score, weighting each goal's score bucket by its priority tier.
// Rounding is half-up to the nearest integer.
func ComposeScore(perGoal []GoalAggregate) (int, []ScoredGoal) {
	var weightedSum, weightedMax float64
	scored := make([]ScoredGoal, 0, len(perGoal))

	for _, g := range perGoal {
		ratio := float64(g.MatchedMinutes) / float64(g.PlannedMinutes)
		bucket := ScoreFromRatio(ratio)
		weight := g.Priority.Weight()

		weightedSum += float64(bucket) * weight
		weightedMax += 100 * weight

		scored = append(scored, ScoredGoal{GoalAggregate: g, ScoreBucket: bucket})
	}

	if weightedMax <= 0 {
		return 0, scored
	}
	return int(math.Round(weightedSum / weightedMax * 100)), scored
}
