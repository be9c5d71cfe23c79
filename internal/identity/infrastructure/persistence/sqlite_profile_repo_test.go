package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusmirror/focusmirror/internal/identity/domain"
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

func TestSQLiteProfileRepository_SaveAndGet(t *testing.T) {
	repo := NewSQLiteProfileRepository(setupTestDB(t))
	ctx := context.Background()

	profile := domain.NewProfile(uuid.New())
	profile.DisplayName = "Alex"
	profile.SetWeeklyEmail(true)

	require.NoError(t, repo.Save(ctx, profile))

	found, err := repo.GetByUserID(ctx, profile.UserID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, profile.UserID, found.UserID)
	assert.Equal(t, "Alex", found.DisplayName)
	assert.Equal(t, 0, found.XP)
	assert.Equal(t, 1, found.Level)
	assert.True(t, found.WeeklyEmail)
}

func TestSQLiteProfileRepository_GetByUserID_Missing(t *testing.T) {
	repo := NewSQLiteProfileRepository(setupTestDB(t))

	found, err := repo.GetByUserID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLiteProfileRepository_UpdateProgress_CreatesRow(t *testing.T) {
	repo := NewSQLiteProfileRepository(setupTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.UpdateProgress(ctx, userID, 250, 3))

	found, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 250, found.XP)
	assert.Equal(t, 3, found.Level)
}

func TestSQLiteProfileRepository_UpdateProgress_KeepsProfileFields(t *testing.T) {
	repo := NewSQLiteProfileRepository(setupTestDB(t))
	ctx := context.Background()

	profile := domain.NewProfile(uuid.New())
	profile.DisplayName = "Alex"
	profile.SetWeeklyEmail(true)
	require.NoError(t, repo.Save(ctx, profile))

	require.NoError(t, repo.UpdateProgress(ctx, profile.UserID, 420, 5))

	found, err := repo.GetByUserID(ctx, profile.UserID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 420, found.XP)
	assert.Equal(t, 5, found.Level)
	assert.Equal(t, "Alex", found.DisplayName)
	assert.True(t, found.WeeklyEmail)
}
