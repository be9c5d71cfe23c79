package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventRepository persists synced calendar events.
type EventRepository interface {
	// ReplaceWindow atomically swaps the provider's events whose start
	// falls in [start, end) for the given set.
	ReplaceWindow(ctx context.Context, userID uuid.UUID, provider Provider, start, end time.Time, events []*CalendarEvent) error

	// ListWindow returns events starting within [start, end) across all
	// providers, ordered by start time.
	ListWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*CalendarEvent, error)
}

// Source pulls events from an external calendar for a time window.
type Source interface {
	Provider() Provider
	FetchEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*CalendarEvent, error)
}
