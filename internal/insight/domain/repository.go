package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InsightRepository persists weekly insights, keyed on (user, week start).
type InsightRepository interface {
	// Upsert writes the insight, replacing any existing row for the
	// same user and week.
	Upsert(ctx context.Context, insight *WeeklyInsight) error

	// GetByWeek returns the insight for the exact week, or nil.
	GetByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*WeeklyInsight, error)

	// DeleteByWeek removes the stored insight so it regenerates from a
	// fresh summary. Deleting a missing row is not an error.
	DeleteByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) error
}
