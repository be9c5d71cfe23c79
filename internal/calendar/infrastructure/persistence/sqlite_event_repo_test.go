package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusmirror/focusmirror/internal/calendar/domain"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/migrations"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), db))
	return db
}

func icsEvent(t *testing.T, userID uuid.UUID, externalID, title string, start time.Time) *domain.CalendarEvent {
	t.Helper()
	event, err := domain.NewCalendarEvent(userID, domain.ProviderICS, externalID, title, start, start.Add(time.Hour))
	require.NoError(t, err)
	return event
}

func TestSQLiteEventRepository_ReplaceWindow(t *testing.T) {
	repo := NewSQLiteEventRepository(setupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	first := []*domain.CalendarEvent{
		icsEvent(t, userID, "evt-1", "Standup", weekStart.Add(9*time.Hour)),
		icsEvent(t, userID, "evt-2", "Planning", weekStart.Add(14*time.Hour)),
	}
	require.NoError(t, repo.ReplaceWindow(ctx, userID, domain.ProviderICS, weekStart, weekEnd, first))

	// A later sync dropped evt-2 and renamed evt-1.
	second := []*domain.CalendarEvent{
		icsEvent(t, userID, "evt-1", "Daily standup", weekStart.Add(9*time.Hour)),
	}
	require.NoError(t, repo.ReplaceWindow(ctx, userID, domain.ProviderICS, weekStart, weekEnd, second))

	listed, err := repo.ListWindow(ctx, userID, weekStart, weekEnd)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "evt-1", listed[0].ExternalID)
	assert.Equal(t, "Daily standup", listed[0].Title)
}

func TestSQLiteEventRepository_ReplaceWindow_KeepsOtherWeeks(t *testing.T) {
	repo := NewSQLiteEventRepository(setupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)
	nextWeek := weekEnd

	require.NoError(t, repo.ReplaceWindow(ctx, userID, domain.ProviderICS, nextWeek, nextWeek.AddDate(0, 0, 7),
		[]*domain.CalendarEvent{icsEvent(t, userID, "next-1", "Review", nextWeek.Add(10*time.Hour))}))

	require.NoError(t, repo.ReplaceWindow(ctx, userID, domain.ProviderICS, weekStart, weekEnd, nil))

	kept, err := repo.ListWindow(ctx, userID, nextWeek, nextWeek.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestSQLiteEventRepository_ListWindow_OrderedAndBounded(t *testing.T) {
	repo := NewSQLiteEventRepository(setupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	events := []*domain.CalendarEvent{
		icsEvent(t, userID, "late", "Late", weekStart.Add(72*time.Hour)),
		icsEvent(t, userID, "early", "Early", weekStart.Add(9*time.Hour)),
	}
	require.NoError(t, repo.ReplaceWindow(ctx, userID, domain.ProviderICS, weekStart, weekEnd, events))

	listed, err := repo.ListWindow(ctx, userID, weekStart, weekEnd)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "early", listed[0].ExternalID)
	assert.Equal(t, "late", listed[1].ExternalID)

	empty, err := repo.ListWindow(ctx, userID, weekEnd, weekEnd.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
