package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSummaryRepository implements domain.SummaryRepository using PostgreSQL.
type PostgresSummaryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSummaryRepository creates a new PostgreSQL summary repository.
func NewPostgresSummaryRepository(pool *pgxpool.Pool) *PostgresSummaryRepository {
	return &PostgresSummaryRepository{pool: pool}
}

// Upsert writes the summary, replacing any existing row for the week.
func (r *PostgresSummaryRepository) Upsert(ctx context.Context, summary *domain.WeeklySummary) error {
	perGoal, err := json.Marshal(summary.PerGoal)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO weekly_summaries (
			id, user_id, week_start, focus_score, xp_earned,
			total_planned_minutes, total_matched_minutes, streak,
			per_goal, computed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			focus_score = EXCLUDED.focus_score,
			xp_earned = EXCLUDED.xp_earned,
			total_planned_minutes = EXCLUDED.total_planned_minutes,
			total_matched_minutes = EXCLUDED.total_matched_minutes,
			streak = EXCLUDED.streak,
			per_goal = EXCLUDED.per_goal,
			computed_at = EXCLUDED.computed_at
	`

	_, err = r.pool.Exec(ctx, query,
		summary.ID,
		summary.UserID,
		summary.WeekStart,
		summary.FocusScore,
		summary.XPEarned,
		summary.TotalPlannedMinutes,
		summary.TotalMatchedMinutes,
		summary.Streak,
		perGoal,
		summary.ComputedAt,
		summary.CreatedAt,
	)
	return err
}

const pgSelectSummary = `
	SELECT id, user_id, week_start, focus_score, xp_earned,
		total_planned_minutes, total_matched_minutes, streak,
		per_goal, computed_at, created_at
	FROM weekly_summaries`

// GetByWeek retrieves the summary for a specific week, or nil.
func (r *PostgresSummaryRepository) GetByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklySummary, error) {
	row := r.pool.QueryRow(ctx, pgSelectSummary+` WHERE user_id = $1 AND week_start = $2`, userID, weekStart)
	return scanPgSummary(row)
}

// GetLatestBefore retrieves the most recent summary before the given week, or nil.
func (r *PostgresSummaryRepository) GetLatestBefore(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklySummary, error) {
	row := r.pool.QueryRow(ctx, pgSelectSummary+`
		WHERE user_id = $1 AND week_start < $2
		ORDER BY week_start DESC
		LIMIT 1`, userID, weekStart)
	return scanPgSummary(row)
}

// GetRecent retrieves up to limit summaries, newest week first.
func (r *PostgresSummaryRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WeeklySummary, error) {
	rows, err := r.pool.Query(ctx, pgSelectSummary+`
		WHERE user_id = $1
		ORDER BY week_start DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*domain.WeeklySummary
	for rows.Next() {
		summary, err := scanPgSummaryRow(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Totals scans all of the user's summaries for lifetime XP and longest streak.
func (r *PostgresSummaryRepository) Totals(ctx context.Context, userID uuid.UUID) (domain.SummaryTotals, error) {
	query := `
		SELECT COALESCE(SUM(xp_earned), 0), COALESCE(MAX(streak), 0)
		FROM weekly_summaries
		WHERE user_id = $1`

	var totals domain.SummaryTotals
	err := r.pool.QueryRow(ctx, query, userID).Scan(&totals.XPTotal, &totals.LongestStreak)
	return totals, err
}

func scanPgSummary(row pgx.Row) (*domain.WeeklySummary, error) {
	summary, err := scanPgSummaryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return summary, nil
}

func scanPgSummaryRow(row pgx.Row) (*domain.WeeklySummary, error) {
	var summary domain.WeeklySummary
	var perGoal []byte

	err := row.Scan(
		&summary.ID,
		&summary.UserID,
		&summary.WeekStart,
		&summary.FocusScore,
		&summary.XPEarned,
		&summary.TotalPlannedMinutes,
		&summary.TotalMatchedMinutes,
		&summary.Streak,
		&perGoal,
		&summary.ComputedAt,
		&summary.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(perGoal, &summary.PerGoal); err != nil {
		return nil, err
	}
	return &summary, nil
}
