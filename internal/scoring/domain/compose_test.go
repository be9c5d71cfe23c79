package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goalAgg(priority Priority, planned, matched int) GoalAggregate {
	return GoalAggregate{
		GoalID:         uuid.New(),
		Title:          "goal",
		Priority:       priority,
		PlannedMinutes: planned,
		MatchedMinutes: matched,
	}
}

func TestComposeScore_FullAlignment(t *testing.T) {
	score, scored := ComposeScore([]GoalAggregate{
		goalAgg(PriorityMajor, 120, 120),
		goalAgg(PriorityMinor, 60, 60),
	})

	assert.Equal(t, 100, score)
	require.Len(t, scored, 2)
	assert.Equal(t, BucketFull, scored[0].ScoreBucket)
	assert.Equal(t, BucketFull, scored[1].ScoreBucket)
}

func TestComposeScore_WeightsByPriority(t *testing.T) {
	// Major at full credit (100 * 2.0) plus optional with no credit
	// (0 * 0.5): 200 / 250 = 80.
	score, _ := ComposeScore([]GoalAggregate{
		goalAgg(PriorityMajor, 60, 60),
		goalAgg(PriorityOptional, 60, 0),
	})

	assert.Equal(t, 80, score)
}

func TestComposeScore_RoundsToNearest(t *testing.T) {
	// Full minor (100) plus attempt-bucket optional (30 * 0.5):
	// 115 / 150 = 76.67, rounded to 77.
	score, _ := ComposeScore([]GoalAggregate{
		goalAgg(PriorityMinor, 60, 60),
		goalAgg(PriorityOptional, 60, 5),
	})
	assert.Equal(t, 77, score)

	// Full minor plus attempt-bucket major: 160 / 300 = 53.33,
	// rounded to 53.
	score, _ = ComposeScore([]GoalAggregate{
		goalAgg(PriorityMinor, 60, 60),
		goalAgg(PriorityMajor, 60, 5),
	})
	assert.Equal(t, 53, score)
}

func TestComposeScore_NoGoals(t *testing.T) {
	score, scored := ComposeScore(nil)

	assert.Equal(t, 0, score)
	assert.Empty(t, scored)
}

func TestComposeScore_BucketsPerGoal(t *testing.T) {
	_, scored := ComposeScore([]GoalAggregate{
		goalAgg(PriorityMinor, 100, 100), // ratio 1.0
		goalAgg(PriorityMinor, 100, 45),  // ratio 0.45
		goalAgg(PriorityMinor, 100, 25),  // ratio 0.25
		goalAgg(PriorityMinor, 100, 5),   // ratio 0.05
		goalAgg(PriorityMinor, 100, 0),   // ratio 0
	})

	require.Len(t, scored, 5)
	assert.Equal(t, BucketFull, scored[0].ScoreBucket)
	assert.Equal(t, BucketStrong, scored[1].ScoreBucket)
	assert.Equal(t, BucketHalf, scored[2].ScoreBucket)
	assert.Equal(t, BucketAttempt, scored[3].ScoreBucket)
	assert.Equal(t, BucketNone, scored[4].ScoreBucket)
}
