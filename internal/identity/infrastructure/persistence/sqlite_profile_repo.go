package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/focusmirror/focusmirror/internal/identity/domain"
	"github.com/google/uuid"
)

// SQLiteProfileRepository implements domain.ProfileRepository for SQLite.
type SQLiteProfileRepository struct {
	db *sql.DB
}

// NewSQLiteProfileRepository creates a new SQLite profile repository.
func NewSQLiteProfileRepository(db *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{db: db}
}

// GetByUserID returns the profile, or nil when none exists yet.
func (r *SQLiteProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, xp, level, weekly_email, created_at, updated_at
		FROM profiles WHERE user_id = ?`,
		userID.String())

	var idStr, createdStr, updatedStr string
	var p domain.Profile
	err := row.Scan(&idStr, &p.DisplayName, &p.XP, &p.Level, &p.WeeklyEmail, &createdStr, &updatedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.UserID, err = uuid.Parse(idStr); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save upserts the full profile row.
func (r *SQLiteProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, xp, level, weekly_email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			xp = excluded.xp,
			level = excluded.level,
			weekly_email = excluded.weekly_email,
			updated_at = excluded.updated_at`,
		profile.UserID.String(),
		profile.DisplayName,
		profile.XP,
		profile.Level,
		profile.WeeklyEmail,
		profile.CreatedAt.UTC().Format(time.RFC3339),
		profile.UpdatedAt.UTC().Format(time.RFC3339))
	return err
}

// UpdateProgress writes only the xp and level fields, creating the
// profile if it does not exist.
func (r *SQLiteProfileRepository) UpdateProgress(ctx context.Context, userID uuid.UUID, xp, level int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, xp, level, weekly_email, created_at, updated_at)
		VALUES (?, '', ?, ?, 0, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			xp = excluded.xp,
			level = excluded.level,
			updated_at = excluded.updated_at`,
		userID.String(), xp, level, now, now)
	return err
}
