package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/focusmirror/focusmirror/internal/calendar/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Provider() domain.Provider {
	args := m.Called()
	return args.Get(0).(domain.Provider)
}

func (m *mockSource) FetchEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CalendarEvent), args.Error(1)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) ReplaceWindow(ctx context.Context, userID uuid.UUID, provider domain.Provider, start, end time.Time, events []*domain.CalendarEvent) error {
	args := m.Called(ctx, userID, provider, start, end, events)
	return args.Error(0)
}

func (m *mockEventRepo) ListWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CalendarEvent), args.Error(1)
}

func TestSyncCalendar(t *testing.T) {
	userID := uuid.New()
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	event, err := domain.NewCalendarEvent(userID, domain.ProviderICS, "evt-1", "Standup",
		weekStart.Add(9*time.Hour), weekStart.Add(9*time.Hour+30*time.Minute))
	require.NoError(t, err)
	fetched := []*domain.CalendarEvent{event}

	source := new(mockSource)
	repo := new(mockEventRepo)
	source.On("Provider").Return(domain.ProviderICS)
	source.On("FetchEvents", mock.Anything, userID, weekStart, weekEnd).Return(fetched, nil)
	repo.On("ReplaceWindow", mock.Anything, userID, domain.ProviderICS, weekStart, weekEnd, fetched).Return(nil)

	handler := NewSyncCalendarHandler(source, repo, nil)
	result, err := handler.Handle(context.Background(), SyncCalendarCommand{UserID: userID, WeekStart: weekStart})

	require.NoError(t, err)
	assert.Equal(t, "ics", result.Provider)
	assert.Equal(t, "2026-03-02", result.WeekStart)
	assert.Equal(t, 1, result.EventCount)
	repo.AssertExpectations(t)
}

func TestSyncCalendar_NormalizesWeekStart(t *testing.T) {
	userID := uuid.New()
	sunday := time.Date(2026, time.March, 8, 20, 0, 0, 0, time.UTC)
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	source := new(mockSource)
	repo := new(mockEventRepo)
	source.On("Provider").Return(domain.ProviderICS)
	source.On("FetchEvents", mock.Anything, userID, weekStart, weekEnd).Return([]*domain.CalendarEvent{}, nil)
	repo.On("ReplaceWindow", mock.Anything, userID, domain.ProviderICS, weekStart, weekEnd, mock.Anything).Return(nil)

	handler := NewSyncCalendarHandler(source, repo, nil)
	result, err := handler.Handle(context.Background(), SyncCalendarCommand{UserID: userID, WeekStart: sunday})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", result.WeekStart)
	source.AssertExpectations(t)
}

func TestSyncCalendar_FetchFailureLeavesStoreUntouched(t *testing.T) {
	userID := uuid.New()
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	source := new(mockSource)
	repo := new(mockEventRepo)
	source.On("FetchEvents", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil, errors.New("feed down"))

	handler := NewSyncCalendarHandler(source, repo, nil)
	_, err := handler.Handle(context.Background(), SyncCalendarCommand{UserID: userID, WeekStart: weekStart})

	require.Error(t, err)
	repo.AssertNotCalled(t, "ReplaceWindow", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
