package caldav

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"

	"github.com/focusmirror/focusmirror/internal/calendar/domain"
)

// Common CalDAV server URLs
const (
	AppleCalDAVURL    = "https://caldav.icloud.com"
	FastmailCalDAVURL = "https://caldav.fastmail.com"
)

// Source pulls busy intervals from a CalDAV calendar (Apple Calendar,
// Fastmail, Nextcloud, etc.).
type Source struct {
	baseURL      string
	username     string
	password     string // App-specific password for Apple
	calendarPath string // Specific calendar path, or empty for default
	logger       *slog.Logger
}

// NewSource creates a CalDAV calendar source.
func NewSource(baseURL, username, password string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		baseURL:  baseURL,
		username: username,
		password: password,
		logger:   logger,
	}
}

// WithCalendarPath sets the specific calendar path to use.
func (s *Source) WithCalendarPath(path string) *Source {
	s.calendarPath = path
	return s
}

// Provider identifies this source's events.
func (s *Source) Provider() domain.Provider {
	return domain.ProviderCalDAV
}

// FetchEvents queries the calendar for events overlapping [start, end)
// and keeps those whose start falls inside the window.
func (s *Source) FetchEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	calPath, err := s.findCalendarPath(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar: %w", err)
	}

	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:  "VCALENDAR",
			Props: []string{"VERSION"},
			Comps: []caldav.CalendarCompRequest{
				{
					Name:  "VEVENT",
					Props: []string{"SUMMARY", "DTSTART", "DTEND", "UID"},
				},
			},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: start,
					End:   end,
				},
			},
		},
	}

	objects, err := client.QueryCalendar(ctx, calPath, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}

	var events []*domain.CalendarEvent
	for _, obj := range objects {
		event, ok := s.parseCalendarObject(userID, &obj)
		if !ok {
			continue
		}
		if event.StartTime.Before(start) || !event.StartTime.Before(end) {
			continue
		}
		events = append(events, event)
	}

	s.logger.Info("caldav query completed",
		"user_id", userID,
		"calendar", calPath,
		"event_count", len(events),
	)
	return events, nil
}

func (s *Source) getClient() (*caldav.Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	client, err := caldav.NewClient(webdav.HTTPClientWithBasicAuth(httpClient, s.username, s.password), s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return client, nil
}

func (s *Source) findCalendarPath(ctx context.Context, client *caldav.Client) (string, error) {
	if s.calendarPath != "" {
		return s.calendarPath, nil
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}

	if len(cals) == 0 {
		return "", fmt.Errorf("no calendars found")
	}

	// Use first calendar as default
	return cals[0].Path, nil
}

func (s *Source) parseCalendarObject(userID uuid.UUID, obj *caldav.CalendarObject) (*domain.CalendarEvent, bool) {
	if obj == nil || obj.Data == nil {
		return nil, false
	}

	for _, child := range obj.Data.Children {
		if child.Name != ical.CompEvent {
			continue
		}

		externalID := obj.Path
		if props := child.Props[ical.PropUID]; len(props) > 0 {
			externalID = props[0].Value
		}
		title := ""
		if props := child.Props[ical.PropSummary]; len(props) > 0 {
			title = props[0].Value
		}

		icalEvent := &ical.Event{Component: child}
		startTime, err := icalEvent.DateTimeStart(time.UTC)
		if err != nil {
			return nil, false
		}
		endTime, err := icalEvent.DateTimeEnd(time.UTC)
		if err != nil {
			return nil, false
		}

		event, err := domain.NewCalendarEvent(userID, domain.ProviderCalDAV, externalID, title, startTime, endTime)
		if err != nil {
			return nil, false
		}
		return event, true
	}

	return nil, false
}
