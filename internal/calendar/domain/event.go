package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Provider identifies where a calendar event was pulled from.
type Provider string

const (
	ProviderICS    Provider = "ics"
	ProviderCalDAV Provider = "caldav"
)

var ErrInvalidEventRange = errors.New("event end must be after start")

// CalendarEvent is an externally-sourced busy interval. Events are
// replaced wholesale on each sync rather than edited, so this is a flat
// record instead of a mutable aggregate.
type CalendarEvent struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Provider   Provider
	ExternalID string
	Title      string
	StartTime  time.Time
	EndTime    time.Time
	CreatedAt  time.Time
}

// NewCalendarEvent creates an event after validating its time range.
func NewCalendarEvent(userID uuid.UUID, provider Provider, externalID, title string, startTime, endTime time.Time) (*CalendarEvent, error) {
	if !endTime.After(startTime) {
		return nil, ErrInvalidEventRange
	}
	return &CalendarEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Provider:   provider,
		ExternalID: externalID,
		Title:      title,
		StartTime:  startTime,
		EndTime:    endTime,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// DurationMinutes returns the event length in whole minutes.
func (e *CalendarEvent) DurationMinutes() int {
	return int(e.EndTime.Sub(e.StartTime) / time.Minute)
}
