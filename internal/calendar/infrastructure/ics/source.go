package ics

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/focusmirror/focusmirror/internal/calendar/domain"
)

// Source pulls busy intervals from a remote ICS feed. Recurring events
// are taken as-is; the feed is expected to have instances expanded by
// the publishing calendar.
type Source struct {
	feedURL string
	fetcher *FeedFetcher
	logger  *slog.Logger
}

// NewSource creates an ICS calendar source for the given feed URL.
func NewSource(feedURL string, fetcher *FeedFetcher, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{feedURL: feedURL, fetcher: fetcher, logger: logger}
}

// Provider identifies this source's events.
func (s *Source) Provider() domain.Provider {
	return domain.ProviderICS
}

// FetchEvents downloads and parses the feed, keeping only events whose
// start falls within [start, end). Malformed VEVENTs are skipped.
func (s *Source) FetchEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	body, err := s.fetcher.Fetch(ctx, s.feedURL)
	if err != nil {
		return nil, err
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ics parse failed: %w", err)
	}

	var events []*domain.CalendarEvent
	skipped := 0
	for _, ve := range cal.Events() {
		event, ok := s.parseVEvent(userID, ve)
		if !ok {
			skipped++
			continue
		}
		if event.StartTime.Before(start) || !event.StartTime.Before(end) {
			continue
		}
		events = append(events, event)
	}

	s.logger.Info("ics feed parsed",
		"user_id", userID,
		"event_count", len(events),
		"skipped", skipped,
	)
	return events, nil
}

func (s *Source) parseVEvent(userID uuid.UUID, ve *ical.VEvent) (*domain.CalendarEvent, bool) {
	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return nil, false
	}

	startTime, err := ve.GetStartAt()
	if err != nil {
		return nil, false
	}
	endTime, err := ve.GetEndAt()
	if err != nil {
		return nil, false
	}

	title := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		title = p.Value
	}

	event, err := domain.NewCalendarEvent(userID, domain.ProviderICS, uidProp.Value, title, startTime, endTime)
	if err != nil {
		return nil, false
	}
	return event, true
}
