package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/focusmirror/focusmirror/internal/insight/domain"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// SQLiteInsightRepository implements domain.InsightRepository for SQLite.
type SQLiteInsightRepository struct {
	db *sql.DB
}

// NewSQLiteInsightRepository creates a new SQLite insight repository.
func NewSQLiteInsightRepository(db *sql.DB) *SQLiteInsightRepository {
	return &SQLiteInsightRepository{db: db}
}

// Upsert writes the insight, replacing any existing row for the week.
func (r *SQLiteInsightRepository) Upsert(ctx context.Context, insight *domain.WeeklyInsight) error {
	suggestions, err := json.Marshal(insight.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO weekly_insights (id, user_id, week_start, summary, suggestions, infographic_svg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, week_start) DO UPDATE SET
			summary = excluded.summary,
			suggestions = excluded.suggestions,
			infographic_svg = excluded.infographic_svg,
			created_at = excluded.created_at`,
		insight.ID.String(),
		insight.UserID.String(),
		insight.WeekStart.Format(dateLayout),
		insight.Summary,
		string(suggestions),
		insight.InfographicSVG,
		insight.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// GetByWeek returns the insight for the exact week, or nil.
func (r *SQLiteInsightRepository) GetByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklyInsight, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, week_start, summary, suggestions, infographic_svg, created_at
		FROM weekly_insights
		WHERE user_id = ? AND week_start = ?`,
		userID.String(), weekStart.Format(dateLayout))

	var idStr, userIDStr, weekStr, summary, suggestionsJSON, svg, createdStr string
	err := row.Scan(&idStr, &userIDStr, &weekStr, &summary, &suggestionsJSON, &svg, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	week, err := time.ParseInLocation(dateLayout, weekStr, time.Local)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, err
	}
	var suggestions []string
	if err := json.Unmarshal([]byte(suggestionsJSON), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}

	return &domain.WeeklyInsight{
		ID:             id,
		UserID:         uid,
		WeekStart:      week,
		Summary:        summary,
		Suggestions:    suggestions,
		InfographicSVG: svg,
		CreatedAt:      createdAt,
	}, nil
}

// DeleteByWeek removes the stored insight for the week.
func (r *SQLiteInsightRepository) DeleteByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM weekly_insights WHERE user_id = ? AND week_start = ?`,
		userID.String(), weekStart.Format(dateLayout))
	return err
}
