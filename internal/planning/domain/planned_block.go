package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	shareddomain "github.com/focusmirror/focusmirror/internal/shared/domain"
)

var ErrInvalidTimeRange = errors.New("block end must be after start")

// PlannedBlock is a scheduled chunk of focus time attached to a goal.
type PlannedBlock struct {
	shareddomain.BaseEntity
	userID    uuid.UUID
	goalID    uuid.UUID
	startTime time.Time
	endTime   time.Time
}

// NewPlannedBlock creates a block after validating its time range.
func NewPlannedBlock(userID, goalID uuid.UUID, startTime, endTime time.Time) (*PlannedBlock, error) {
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeRange
	}
	return &PlannedBlock{
		BaseEntity: shareddomain.NewBaseEntity(),
		userID:     userID,
		goalID:     goalID,
		startTime:  startTime,
		endTime:    endTime,
	}, nil
}

// RehydratePlannedBlock recreates a block from persisted state.
func RehydratePlannedBlock(id, userID, goalID uuid.UUID, startTime, endTime time.Time, createdAt, updatedAt time.Time) *PlannedBlock {
	return &PlannedBlock{
		BaseEntity: shareddomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID:     userID,
		goalID:     goalID,
		startTime:  startTime,
		endTime:    endTime,
	}
}

func (b *PlannedBlock) UserID() uuid.UUID    { return b.userID }
func (b *PlannedBlock) GoalID() uuid.UUID    { return b.goalID }
func (b *PlannedBlock) StartTime() time.Time { return b.startTime }
func (b *PlannedBlock) EndTime() time.Time   { return b.endTime }

// DurationMinutes returns the planned length in whole minutes.
func (b *PlannedBlock) DurationMinutes() int {
	return int(b.endTime.Sub(b.startTime) / time.Minute)
}

// Reschedule moves the block to a new time range.
func (b *PlannedBlock) Reschedule(startTime, endTime time.Time) error {
	if !endTime.After(startTime) {
		return ErrInvalidTimeRange
	}
	b.startTime = startTime
	b.endTime = endTime
	b.Touch()
	return nil
}
