package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds a user's progression state and delivery preferences.
// XP and level are derived from weekly summaries by the scoring engine;
// the profile stores the latest computed values.
type Profile struct {
	UserID      uuid.UUID
	DisplayName string
	XP          int
	Level       int
	WeeklyEmail bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProfile creates a profile with starting progression.
func NewProfile(userID uuid.UUID) *Profile {
	now := time.Now().UTC()
	return &Profile{
		UserID:    userID,
		XP:        0,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetProgress updates the lifetime XP total and level.
func (p *Profile) SetProgress(xp, level int) {
	p.XP = xp
	p.Level = level
	p.UpdatedAt = time.Now().UTC()
}

// SetWeeklyEmail toggles the weekly insight email opt-in.
func (p *Profile) SetWeeklyEmail(enabled bool) {
	p.WeeklyEmail = enabled
	p.UpdatedAt = time.Now().UTC()
}
