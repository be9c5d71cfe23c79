package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
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

func TestSQLiteGoalRepository_CreateAndGet(t *testing.T) {
	repo := NewSQLiteGoalRepository(setupTestDB(t))
	ctx := context.Background()

	goal, err := domain.NewGoal(uuid.New(), "Deep work", domain.PriorityMajor, 0)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, goal))

	found, err := repo.GetByID(ctx, goal.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, goal.ID(), found.ID())
	assert.Equal(t, "Deep work", found.Title())
	assert.Equal(t, domain.PriorityMajor, found.Priority())
}

func TestSQLiteGoalRepository_GetByID_Missing(t *testing.T) {
	repo := NewSQLiteGoalRepository(setupTestDB(t))

	found, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLiteGoalRepository_ListByUser_SortOrder(t *testing.T) {
	repo := NewSQLiteGoalRepository(setupTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	second, err := domain.NewGoal(userID, "Second", domain.PriorityMinor, 1)
	require.NoError(t, err)
	first, err := domain.NewGoal(userID, "First", domain.PriorityMajor, 0)
	require.NoError(t, err)
	other, err := domain.NewGoal(uuid.New(), "Other user", domain.PriorityMinor, 0)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, other))

	goals, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "First", goals[0].Title())
	assert.Equal(t, "Second", goals[1].Title())
}

func TestSQLiteGoalRepository_Update(t *testing.T) {
	repo := NewSQLiteGoalRepository(setupTestDB(t))
	ctx := context.Background()

	goal, err := domain.NewGoal(uuid.New(), "Old title", domain.PriorityMinor, 0)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, goal))

	require.NoError(t, goal.Rename("New title"))
	goal.Reprioritize(domain.PriorityMajor)
	require.NoError(t, repo.Update(ctx, goal))

	found, err := repo.GetByID(ctx, goal.ID())
	require.NoError(t, err)
	assert.Equal(t, "New title", found.Title())
	assert.Equal(t, domain.PriorityMajor, found.Priority())
}

func TestSQLiteGoalRepository_Delete(t *testing.T) {
	repo := NewSQLiteGoalRepository(setupTestDB(t))
	ctx := context.Background()

	goal, err := domain.NewGoal(uuid.New(), "Doomed", domain.PriorityMinor, 0)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, goal))
	require.NoError(t, repo.Delete(ctx, goal.ID()))

	found, err := repo.GetByID(ctx, goal.ID())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLiteBlockRepository_WindowQueries(t *testing.T) {
	db := setupTestDB(t)
	goals := NewSQLiteGoalRepository(db)
	blocks := NewSQLiteBlockRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	goal, err := domain.NewGoal(userID, "Deep work", domain.PriorityMajor, 0)
	require.NoError(t, err)
	require.NoError(t, goals.Create(ctx, goal))

	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	inWindow, err := domain.NewPlannedBlock(userID, goal.ID(), weekStart.Add(9*time.Hour), weekStart.Add(10*time.Hour))
	require.NoError(t, err)
	nextWeek, err := domain.NewPlannedBlock(userID, goal.ID(), weekEnd.Add(9*time.Hour), weekEnd.Add(10*time.Hour))
	require.NoError(t, err)

	require.NoError(t, blocks.Create(ctx, inWindow))
	require.NoError(t, blocks.Create(ctx, nextWeek))

	listed, err := blocks.ListInWindow(ctx, userID, weekStart, weekEnd)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, inWindow.ID(), listed[0].ID())
	assert.Equal(t, 60, listed[0].DurationMinutes())
}

func TestSQLiteBlockRepository_DeleteByGoal(t *testing.T) {
	db := setupTestDB(t)
	blocks := NewSQLiteBlockRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	goalID := uuid.New()
	otherGoalID := uuid.New()
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	doomed, err := domain.NewPlannedBlock(userID, goalID, start, start.Add(time.Hour))
	require.NoError(t, err)
	kept, err := domain.NewPlannedBlock(userID, otherGoalID, start.Add(2*time.Hour), start.Add(3*time.Hour))
	require.NoError(t, err)

	require.NoError(t, blocks.Create(ctx, doomed))
	require.NoError(t, blocks.Create(ctx, kept))
	require.NoError(t, blocks.DeleteByGoal(ctx, goalID))

	gone, err := blocks.GetByID(ctx, doomed.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)

	still, err := blocks.GetByID(ctx, kept.ID())
	require.NoError(t, err)
	require.NotNil(t, still)
}
