package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/focusmirror/focusmirror/internal/identity/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProfileRepository implements domain.ProfileRepository for PostgreSQL.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository.
func NewPostgresProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

// GetByUserID returns the profile, or nil when none exists yet.
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, display_name, xp, level, weekly_email, created_at, updated_at
		FROM profiles WHERE user_id = $1`,
		userID)

	var p domain.Profile
	err := row.Scan(&p.UserID, &p.DisplayName, &p.XP, &p.Level, &p.WeeklyEmail, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save upserts the full profile row.
func (r *PostgresProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, display_name, xp, level, weekly_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			xp = EXCLUDED.xp,
			level = EXCLUDED.level,
			weekly_email = EXCLUDED.weekly_email,
			updated_at = EXCLUDED.updated_at`,
		profile.UserID,
		profile.DisplayName,
		profile.XP,
		profile.Level,
		profile.WeeklyEmail,
		profile.CreatedAt,
		profile.UpdatedAt)
	return err
}

// UpdateProgress writes only the xp and level fields, creating the
// profile if it does not exist.
func (r *PostgresProfileRepository) UpdateProgress(ctx context.Context, userID uuid.UUID, xp, level int) error {
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, display_name, xp, level, weekly_email, created_at, updated_at)
		VALUES ($1, '', $2, $3, FALSE, $4, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			xp = EXCLUDED.xp,
			level = EXCLUDED.level,
			updated_at = EXCLUDED.updated_at`,
		userID, xp, level, now)
	return err
}
