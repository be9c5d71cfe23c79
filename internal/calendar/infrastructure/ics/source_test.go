package ics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusmirror/focusmirror/internal/calendar/domain"
)

const feedTemplate = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
%s
END:VCALENDAR
`

func vevent(uid, summary, start, end string) string {
	return fmt.Sprintf(`BEGIN:VEVENT
UID:%s
SUMMARY:%s
DTSTART:%s
DTEND:%s
END:VEVENT`, uid, summary, start, end)
}

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSourceFetchEvents(t *testing.T) {
	userID := uuid.New()
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	body := fmt.Sprintf(feedTemplate,
		vevent("evt-1", "Standup", "20260302T090000Z", "20260302T093000Z")+"\n"+
			vevent("evt-2", "Planning", "20260304T140000Z", "20260304T150000Z"))

	srv := feedServer(t, body)
	source := NewSource(srv.URL, NewFeedFetcher(nil), nil)

	events, err := source.FetchEvents(context.Background(), userID, weekStart, weekEnd)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "evt-1", events[0].ExternalID)
	assert.Equal(t, "Standup", events[0].Title)
	assert.Equal(t, domain.ProviderICS, events[0].Provider)
	assert.Equal(t, userID, events[0].UserID)
	assert.Equal(t, 30, int(events[0].EndTime.Sub(events[0].StartTime).Minutes()))
}

func TestSourceFetchEvents_FiltersToWindow(t *testing.T) {
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	body := fmt.Sprintf(feedTemplate,
		vevent("in-window", "Kept", "20260303T100000Z", "20260303T110000Z")+"\n"+
			vevent("before", "Dropped", "20260223T100000Z", "20260223T110000Z")+"\n"+
			vevent("after", "Dropped", "20260310T100000Z", "20260310T110000Z"))

	srv := feedServer(t, body)
	source := NewSource(srv.URL, NewFeedFetcher(nil), nil)

	events, err := source.FetchEvents(context.Background(), uuid.New(), weekStart, weekEnd)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "in-window", events[0].ExternalID)
}

func TestSourceFetchEvents_SkipsMalformedEvents(t *testing.T) {
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	// The second VEVENT has no UID and must not abort the sync.
	body := fmt.Sprintf(feedTemplate,
		vevent("good", "Kept", "20260303T100000Z", "20260303T110000Z")+"\n"+
			`BEGIN:VEVENT
SUMMARY:No identifier
DTSTART:20260303T120000Z
DTEND:20260303T130000Z
END:VEVENT`)

	srv := feedServer(t, body)
	source := NewSource(srv.URL, NewFeedFetcher(nil), nil)

	events, err := source.FetchEvents(context.Background(), uuid.New(), weekStart, weekEnd)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "good", events[0].ExternalID)
}

func TestSourceFetchEvents_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	source := NewSource(srv.URL, NewFeedFetcher(nil), nil)
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	_, err := source.FetchEvents(context.Background(), uuid.New(), weekStart, weekStart.AddDate(0, 0, 7))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFeedFetcher_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	fetcher := NewFeedFetcher(nil)
	for i := 0; i < failThreshold; i++ {
		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
	}

	_, err := fetcher.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries suspended")
	assert.Equal(t, failThreshold, calls)
}
