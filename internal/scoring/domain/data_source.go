package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GoalRecord is a goal as read from the planning store.
type GoalRecord struct {
	ID       uuid.UUID
	Title    string
	Priority string
}

// BlockRecord is a planned block as read from the planning store.
type BlockRecord struct {
	GoalID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// EventRecord is an actual calendar event as read from the calendar store.
type EventRecord struct {
	StartTime time.Time
	EndTime   time.Time
}

// PlanningDataSource reads the engine's inputs from the stores owned by
// the planning and calendar contexts. The engine never writes through it.
type PlanningDataSource interface {
	// Goals returns all goals belonging to the user.
	Goals(ctx context.Context, userID uuid.UUID) ([]GoalRecord, error)

	// BlocksInWindow returns planned blocks starting within [start, end).
	BlocksInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]BlockRecord, error)

	// EventsInWindow returns calendar events starting within [start, end).
	EventsInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]EventRecord, error)
}
