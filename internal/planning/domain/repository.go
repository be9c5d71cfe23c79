package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GoalRepository persists goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlockRepository persists planned blocks.
type BlockRepository interface {
	Create(ctx context.Context, block *PlannedBlock) error
	GetByID(ctx context.Context, id uuid.UUID) (*PlannedBlock, error)
	ListInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*PlannedBlock, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByGoal(ctx context.Context, goalID uuid.UUID) error
}
