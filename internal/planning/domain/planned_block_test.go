package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlannedBlock(t *testing.T) {
	userID := uuid.New()
	goalID := uuid.New()
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	block, err := NewPlannedBlock(userID, goalID, start, end)

	require.NoError(t, err)
	assert.Equal(t, userID, block.UserID())
	assert.Equal(t, goalID, block.GoalID())
	assert.Equal(t, 90, block.DurationMinutes())
}

func TestNewPlannedBlock_InvalidRange(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	_, err := NewPlannedBlock(uuid.New(), uuid.New(), start, start)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewPlannedBlock(uuid.New(), uuid.New(), start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestPlannedBlockReschedule(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	block, err := NewPlannedBlock(uuid.New(), uuid.New(), start, start.Add(time.Hour))
	require.NoError(t, err)

	newStart := start.Add(24 * time.Hour)
	require.NoError(t, block.Reschedule(newStart, newStart.Add(2*time.Hour)))
	assert.Equal(t, 120, block.DurationMinutes())

	assert.ErrorIs(t, block.Reschedule(newStart, newStart), ErrInvalidTimeRange)
	assert.Equal(t, 120, block.DurationMinutes())
}
