package subscriber

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/focusmirror/focusmirror/internal/insight/application/commands"
	"github.com/focusmirror/focusmirror/internal/insight/domain"
	scoringDomain "github.com/focusmirror/focusmirror/internal/scoring/domain"
	sharedDomain "github.com/focusmirror/focusmirror/internal/shared/domain"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInsightRepo struct {
	mock.Mock
}

func (m *mockInsightRepo) Upsert(ctx context.Context, insight *domain.WeeklyInsight) error {
	args := m.Called(ctx, insight)
	return args.Error(0)
}

func (m *mockInsightRepo) GetByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyInsight, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyInsight), args.Error(1)
}

func (m *mockInsightRepo) DeleteByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) error {
	args := m.Called(ctx, userID, weekStart)
	return args.Error(0)
}

type mockSummaryRepo struct {
	mock.Mock
}

func (m *mockSummaryRepo) Upsert(ctx context.Context, summary *scoringDomain.WeeklySummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *mockSummaryRepo) GetByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*scoringDomain.WeeklySummary, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoringDomain.WeeklySummary), args.Error(1)
}

func (m *mockSummaryRepo) GetLatestBefore(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*scoringDomain.WeeklySummary, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoringDomain.WeeklySummary), args.Error(1)
}

func (m *mockSummaryRepo) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*scoringDomain.WeeklySummary, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scoringDomain.WeeklySummary), args.Error(1)
}

func (m *mockSummaryRepo) Totals(ctx context.Context, userID uuid.UUID) (scoringDomain.SummaryTotals, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(scoringDomain.SummaryTotals), args.Error(1)
}

func computedEvent(t *testing.T, userID uuid.UUID, weekKey string) *eventbus.ConsumedEvent {
	t.Helper()
	base := sharedDomain.NewBaseEvent(uuid.New(), "weekly_summary", scoringDomain.RoutingKeySummaryComputed, userID)
	payload, err := eventbus.MarshalDomainEvent(base, map[string]any{"week_start": weekKey})
	require.NoError(t, err)

	var event eventbus.ConsumedEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	return &event
}

func TestSummaryComputedConsumer_RefreshesInsight(t *testing.T) {
	userID := uuid.New()
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)

	summary := scoringDomain.NewWeeklySummary(userID, weekStart)
	summary.FocusScore = 90
	summary.TotalPlannedMinutes = 300
	summary.TotalMatchedMinutes = 280

	insights := new(mockInsightRepo)
	summaries := new(mockSummaryRepo)
	insights.On("DeleteByWeek", mock.Anything, userID, weekStart).Return(nil)
	insights.On("GetByWeek", mock.Anything, userID, weekStart).Return(nil, nil)
	summaries.On("GetByWeek", mock.Anything, userID, weekStart).Return(summary, nil)
	insights.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	generate := commands.NewGenerateInsightHandler(insights, summaries, nil)
	consumer := NewSummaryComputedConsumer(insights, generate, nil)

	assert.Equal(t, []string{scoringDomain.RoutingKeySummaryComputed}, consumer.EventTypes())

	err := consumer.Handle(context.Background(), computedEvent(t, userID, "2026-03-02"))

	require.NoError(t, err)
	insights.AssertExpectations(t)
	summaries.AssertExpectations(t)
}

func TestSummaryComputedConsumer_RejectsBadWeekKey(t *testing.T) {
	insights := new(mockInsightRepo)
	generate := commands.NewGenerateInsightHandler(insights, new(mockSummaryRepo), nil)
	consumer := NewSummaryComputedConsumer(insights, generate, nil)

	err := consumer.Handle(context.Background(), computedEvent(t, uuid.New(), "not-a-date"))

	require.Error(t, err)
	insights.AssertNotCalled(t, "DeleteByWeek", mock.Anything, mock.Anything, mock.Anything)
}
