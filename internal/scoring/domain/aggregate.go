package domain

import (
	"time"

	"github.com/google/uuid"
)

// GoalAggregate accumulates planned and matched minutes for one goal
// across all of its blocks in a week.
type GoalAggregate struct {
	GoalID         uuid.UUID
	Title          string
	Priority       Priority
	PlannedMinutes int
	MatchedMinutes int
}

// WeekAggregate is the result of aggregating one week of planning data.
type WeekAggregate struct {
	PerGoal             []GoalAggregate
	TotalPlannedMinutes int
	TotalMatchedMinutes int
}

// AggregateWeek sums planned minutes and overlap-matched minutes per goal
// for one week of blocks and events.
//
// Blocks referencing a goal that no longer exists are skipped, as are
// blocks with non-positive duration; one bad record must not prevent
// scoring the rest of the week. Each block's matched minutes are clamped
// to its own duration, so overlapping events cannot push a block past
// fully matched. Goals with no planned time this week are dropped from
// the result and do not participate in scoring.
func AggregateWeek(goals []GoalRecord, blocks []BlockRecord, events []EventRecord) WeekAggregate {
	type accumulator struct {
		planned int
		matched int
	}

	order := make([]uuid.UUID, 0, len(goals))
	byGoal := make(map[uuid.UUID]*accumulator, len(goals))
	info := make(map[uuid.UUID]GoalRecord, len(goals))
	for _, g := range goals {
		order = append(order, g.ID)
		byGoal[g.ID] = &accumulator{}
		info[g.ID] = g
	}

	for _, block := range blocks {
		acc, ok := byGoal[block.GoalID]
		if !ok {
			continue // orphan block
		}

		planned := int(block.EndTime.Sub(block.StartTime) / time.Minute)
		if planned <= 0 {
			continue
		}
		acc.planned += planned

		matched := 0
		for _, ev := range events {
			matched += OverlapMinutes(block.StartTime, block.EndTime, ev.StartTime, ev.EndTime)
		}
		if matched > planned {
			matched = planned
		}
		acc.matched += matched
	}

	result := WeekAggregate{}
	for _, id := range order {
		acc := byGoal[id]
		if acc.planned == 0 {
			continue
		}
		g := info[id]
		result.PerGoal = append(result.PerGoal, GoalAggregate{
			GoalID:         id,
			Title:          g.Title,
			Priority:       PriorityFromRecord(g.Priority),
			PlannedMinutes: acc.planned,
			MatchedMinutes: acc.matched,
		})
		result.TotalPlannedMinutes += acc.planned
		result.TotalMatchedMinutes += acc.matched
	}
	return result
}
