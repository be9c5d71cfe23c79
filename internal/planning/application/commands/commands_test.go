package commands

import (
	"context"
	"errors"
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

func TestCreateGoal(t *testing.T) {
	userID := uuid.New()

	goals := new(mockGoalRepo)
	goals.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Goal) bool {
		return g.UserID() == userID && g.Title() == "Deep work" && g.Priority() == domain.PriorityMajor
	})).Return(nil)

	handler := NewCreateGoalHandler(goals, nil)
	goal, err := handler.Handle(context.Background(), CreateGoalCommand{
		UserID:   userID,
		Title:    "Deep work",
		Priority: "major",
	})

	require.NoError(t, err)
	assert.Equal(t, "Deep work", goal.Title())
	goals.AssertExpectations(t)
}

func TestCreateGoal_RejectsUnknownPriority(t *testing.T) {
	goals := new(mockGoalRepo)

	handler := NewCreateGoalHandler(goals, nil)
	_, err := handler.Handle(context.Background(), CreateGoalCommand{
		UserID:   uuid.New(),
		Title:    "Deep work",
		Priority: "urgent",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	goals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateGoal_RejectsEmptyTitle(t *testing.T) {
	handler := NewCreateGoalHandler(new(mockGoalRepo), nil)
	_, err := handler.Handle(context.Background(), CreateGoalCommand{
		UserID:   uuid.New(),
		Title:    "  ",
		Priority: "minor",
	})

	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestDeleteGoal_RemovesBlocksFirst(t *testing.T) {
	goalID := uuid.New()

	goals := new(mockGoalRepo)
	blocks := new(mockBlockRepo)
	blocks.On("DeleteByGoal", mock.Anything, goalID).Return(nil)
	goals.On("Delete", mock.Anything, goalID).Return(nil)

	handler := NewDeleteGoalHandler(goals, blocks, nil)
	err := handler.Handle(context.Background(), DeleteGoalCommand{GoalID: goalID})

	require.NoError(t, err)
	blocks.AssertExpectations(t)
	goals.AssertExpectations(t)
}

func TestDeleteGoal_BlockDeleteFailureAborts(t *testing.T) {
	goalID := uuid.New()

	goals := new(mockGoalRepo)
	blocks := new(mockBlockRepo)
	blocks.On("DeleteByGoal", mock.Anything, goalID).Return(errors.New("db down"))

	handler := NewDeleteGoalHandler(goals, blocks, nil)
	err := handler.Handle(context.Background(), DeleteGoalCommand{GoalID: goalID})

	require.Error(t, err)
	goals.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddBlock(t *testing.T) {
	userID := uuid.New()
	goal, err := domain.NewGoal(userID, "Deep work", domain.PriorityMajor, 0)
	require.NoError(t, err)

	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	goals := new(mockGoalRepo)
	blocks := new(mockBlockRepo)
	goals.On("GetByID", mock.Anything, goal.ID()).Return(goal, nil)
	blocks.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.PlannedBlock) bool {
		return b.GoalID() == goal.ID() && b.DurationMinutes() == 60
	})).Return(nil)

	handler := NewAddBlockHandler(goals, blocks, nil)
	block, err := handler.Handle(context.Background(), AddBlockCommand{
		UserID:    userID,
		GoalID:    goal.ID(),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, 60, block.DurationMinutes())
	blocks.AssertExpectations(t)
}

func TestAddBlock_UnknownGoal(t *testing.T) {
	goalID := uuid.New()

	goals := new(mockGoalRepo)
	blocks := new(mockBlockRepo)
	goals.On("GetByID", mock.Anything, goalID).Return(nil, nil)

	handler := NewAddBlockHandler(goals, blocks, nil)
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	_, err := handler.Handle(context.Background(), AddBlockCommand{
		UserID:    uuid.New(),
		GoalID:    goalID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	blocks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddBlock_InvalidRange(t *testing.T) {
	userID := uuid.New()
	goal, err := domain.NewGoal(userID, "Deep work", domain.PriorityMajor, 0)
	require.NoError(t, err)

	goals := new(mockGoalRepo)
	blocks := new(mockBlockRepo)
	goals.On("GetByID", mock.Anything, goal.ID()).Return(goal, nil)

	handler := NewAddBlockHandler(goals, blocks, nil)
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	_, err = handler.Handle(context.Background(), AddBlockCommand{
		UserID:    userID,
		GoalID:    goal.ID(),
		StartTime: start,
		EndTime:   start,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
	blocks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
