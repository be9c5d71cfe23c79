package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	// GetByUserID returns the profile, or nil when none exists yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// Save upserts the full profile row.
	Save(ctx context.Context, profile *Profile) error

	// UpdateProgress writes only the xp and level fields, creating the
	// profile if it does not exist.
	UpdateProgress(ctx context.Context, userID uuid.UUID, xp, level int) error
}
