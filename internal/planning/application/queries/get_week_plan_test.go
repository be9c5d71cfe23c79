package queries

import (
	"context"
	"testing"
	"time"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGoalRepo struct {
	mock.Mock
}

func (m *mockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *mockGoalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *mockGoalRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

func (m *mockGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *mockGoalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBlockRepo struct {
	mock.Mock
}

func (m *mockBlockRepo) Create(ctx context.Context, block *domain.PlannedBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *mockBlockRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlannedBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlannedBlock), args.Error(1)
}

func (m *mockBlockRepo) ListInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PlannedBlock, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PlannedBlock), args.Error(1)
}

func (m *mockBlockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBlockRepo) DeleteByGoal(ctx context.Context, goalID uuid.UUID) error {
	args := m.Called(ctx, goalID)
	return args.Error(0)
}

func TestGetWeekPlan(t *testing.T) {
	userID := uuid.New()
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	deepWork, err := domain.NewGoal(userID, "Deep work", domain.PriorityMajor, 0)
	require.NoError(t, err)
	exercise, err := domain.NewGoal(userID, "Exercise", domain.PriorityMinor, 1)
	require.NoError(t, err)

	block, err := domain.NewPlannedBlock(userID, deepWork.ID(), weekStart.Add(9*time.Hour), weekStart.Add(11*time.Hour))
	require.NoError(t, err)

	goals := new(mockGoalRepo)
	blocks := new(mockBlockRepo)
	goals.On("ListByUser", mock.Anything, userID).Return([]*domain.Goal{deepWork, exercise}, nil)
	blocks.On("ListInWindow", mock.Anything, userID, weekStart, weekEnd).Return([]*domain.PlannedBlock{block}, nil)

	handler := NewGetWeekPlanHandler(goals, blocks, nil)
	plan, err := handler.Handle(context.Background(), GetWeekPlanQuery{UserID: userID, WeekStart: weekStart})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", plan.WeekStart)
	require.Len(t, plan.Goals, 2)

	assert.Equal(t, "Deep work", plan.Goals[0].Title)
	require.Len(t, plan.Goals[0].Blocks, 1)
	assert.Equal(t, 120, plan.Goals[0].Blocks[0].Minutes)

	// Goals without blocks still appear, with an empty slice.
	assert.Equal(t, "Exercise", plan.Goals[1].Title)
	assert.NotNil(t, plan.Goals[1].Blocks)
	assert.Empty(t, plan.Goals[1].Blocks)
}

func TestGetWeekPlan_NormalizesMidweekDate(t *testing.T) {
	userID := uuid.New()
	wednesday := time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC)
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	goals := new(mockGoalRepo)
	blocks := new(mockBlockRepo)
	goals.On("ListByUser", mock.Anything, userID).Return([]*domain.Goal{}, nil)
	blocks.On("ListInWindow", mock.Anything, userID, weekStart, weekEnd).Return([]*domain.PlannedBlock{}, nil)

	handler := NewGetWeekPlanHandler(goals, blocks, nil)
	plan, err := handler.Handle(context.Background(), GetWeekPlanQuery{UserID: userID, WeekStart: wednesday})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", plan.WeekStart)
	blocks.AssertExpectations(t)
}
