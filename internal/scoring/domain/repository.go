package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SummaryTotals are the lifetime aggregates scanned from a user's
// stored weekly summaries.
type SummaryTotals struct {
	XPTotal       int
	LongestStreak int
}

// SummaryRepository persists weekly summaries. Upsert is keyed on
// (user, week start) and replaces the full row on conflict.
type SummaryRepository interface {
	// Upsert writes the summary, overwriting any existing row for the
	// same user and week.
	Upsert(ctx context.Context, summary *WeeklySummary) error

	// GetByWeek returns the summary for the exact week, or nil.
	GetByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*WeeklySummary, error)

	// GetLatestBefore returns the most recent summary with a week start
	// strictly before the given week, or nil when none exists.
	GetLatestBefore(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*WeeklySummary, error)

	// GetRecent returns up to limit summaries, newest week first.
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*WeeklySummary, error)

	// Totals scans all of the user's summaries for lifetime XP and the
	// longest streak ever recorded.
	Totals(ctx context.Context, userID uuid.UUID) (SummaryTotals, error)
}
