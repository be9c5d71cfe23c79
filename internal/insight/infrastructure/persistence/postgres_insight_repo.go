package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/focusmirror/focusmirror/internal/insight/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresInsightRepository implements domain.InsightRepository for PostgreSQL.
type PostgresInsightRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInsightRepository creates a new PostgreSQL insight repository.
func NewPostgresInsightRepository(pool *pgxpool.Pool) *PostgresInsightRepository {
	return &PostgresInsightRepository{pool: pool}
}

// Upsert writes the insight, replacing any existing row for the week.
func (r *PostgresInsightRepository) Upsert(ctx context.Context, insight *domain.WeeklyInsight) error {
	suggestions, err := json.Marshal(insight.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO weekly_insights (id, user_id, week_start, summary, suggestions, infographic_svg, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			summary = EXCLUDED.summary,
			suggestions = EXCLUDED.suggestions,
			infographic_svg = EXCLUDED.infographic_svg,
			created_at = EXCLUDED.created_at`,
		insight.ID,
		insight.UserID,
		insight.WeekStart,
		insight.Summary,
		suggestions,
		insight.InfographicSVG,
		insight.CreatedAt)
	return err
}

// GetByWeek returns the insight for the exact week, or nil.
func (r *PostgresInsightRepository) GetByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyInsight, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, week_start, summary, suggestions, infographic_svg, created_at
		FROM weekly_insights
		WHERE user_id = $1 AND week_start = $2`,
		userID, weekStart)

	var insight domain.WeeklyInsight
	var suggestionsJSON []byte
	err := row.Scan(&insight.ID, &insight.UserID, &insight.WeekStart, &insight.Summary, &suggestionsJSON, &insight.InfographicSVG, &insight.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(suggestionsJSON, &insight.Suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}
	return &insight, nil
}

// DeleteByWeek removes the stored insight for the week.
func (r *PostgresInsightRepository) DeleteByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM weekly_insights WHERE user_id = $1 AND week_start = $2`,
		userID, weekStart)
	return err
}
