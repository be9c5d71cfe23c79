package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/focusmirror/focusmirror/internal/calendar/domain"
	"github.com/google/uuid"
)

// SyncCalendarCommand pulls external events for the week containing
// WeekStart and replaces the stored window.
type SyncCalendarCommand struct {
	UserID    uuid.UUID
	WeekStart time.Time
}

// SyncResult reports what a sync changed.
type SyncResult struct {
	Provider   string `json:"provider"`
	WeekStart  string `json:"weekStart"`
	EventCount int    `json:"eventCount"`
}

// SyncCalendarHandler pulls events from the configured external source
// and swaps them into the local store.
type SyncCalendarHandler struct {
	source domain.Source
	events domain.EventRepository
	logger *slog.Logger
}

// NewSyncCalendarHandler creates a new handler.
func NewSyncCalendarHandler(source domain.Source, events domain.EventRepository, logger *slog.Logger) *SyncCalendarHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncCalendarHandler{source: source, events: events, logger: logger}
}

// Handle fetches the window from the source and replaces the stored
// events. A fetch failure leaves the previous sync untouched.
func (h *SyncCalendarHandler) Handle(ctx context.Context, cmd SyncCalendarCommand) (*SyncResult, error) {
	weekStart := startOfWeek(cmd.WeekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	fetched, err := h.source.FetchEvents(ctx, cmd.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	provider := h.source.Provider()
	if err := h.events.ReplaceWindow(ctx, cmd.UserID, provider, weekStart, weekEnd, fetched); err != nil {
		return nil, fmt.Errorf("failed to store calendar events: %w", err)
	}

	h.logger.Info("calendar synced",
		"user_id", cmd.UserID,
		"provider", string(provider),
		"week_start", weekStart.Format("2006-01-02"),
		"event_count", len(fetched),
	)
	return &SyncResult{
		Provider:   string(provider),
		WeekStart:  weekStart.Format("2006-01-02"),
		EventCount: len(fetched),
	}, nil
}

func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6
	}
	return t.AddDate(0, 0, -offset)
}
