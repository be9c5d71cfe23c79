package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// SQLiteSummaryRepository implements domain.SummaryRepository using SQLite.
type SQLiteSummaryRepository struct {
	db *sql.DB
}

// NewSQLiteSummaryRepository creates a new SQLite summary repository.
func NewSQLiteSummaryRepository(db *sql.DB) *SQLiteSummaryRepository {
	return &SQLiteSummaryRepository{db: db}
}

// Upsert writes the summary, replacing any existing row for the week.
func (r *SQLiteSummaryRepository) Upsert(ctx context.Context, summary *domain.WeeklySummary) error {
	perGoal, err := json.Marshal(summary.PerGoal)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO weekly_summaries (
			id, user_id, week_start, focus_score, xp_earned,
			total_planned_minutes, total_matched_minutes, streak,
			per_goal, computed_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, week_start) DO UPDATE SET
			focus_score = excluded.focus_score,
			xp_earned = excluded.xp_earned,
			total_planned_minutes = excluded.total_planned_minutes,
			total_matched_minutes = excluded.total_matched_minutes,
			streak = excluded.streak,
			per_goal = excluded.per_goal,
			computed_at = excluded.computed_at
	`

	_, err = r.db.ExecContext(ctx, query,
		summary.ID.String(),
		summary.UserID.String(),
		summary.WeekStart.Format(dateLayout),
		summary.FocusScore,
		summary.XPEarned,
		summary.TotalPlannedMinutes,
		summary.TotalMatchedMinutes,
		summary.Streak,
		string(perGoal),
		summary.ComputedAt.Format(time.RFC3339),
		summary.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByWeek retrieves the summary for a specific week, or nil.
func (r *SQLiteSummaryRepository) GetByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklySummary, error) {
	query := selectSummary + ` WHERE user_id = ? AND week_start = ?`
	row := r.db.QueryRowContext(ctx, query, userID.String(), weekStart.Format(dateLayout))
	return r.scanSummary(row)
}

// GetLatestBefore retrieves the most recent summary before the given week, or nil.
func (r *SQLiteSummaryRepository) GetLatestBefore(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.WeeklySummary, error) {
	query := selectSummary + `
		WHERE user_id = ? AND week_start < ?
		ORDER BY week_start DESC
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID.String(), weekStart.Format(dateLayout))
	return r.scanSummary(row)
}

// GetRecent retrieves up to limit summaries, newest week first.
func (r *SQLiteSummaryRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WeeklySummary, error) {
	query := selectSummary + `
		WHERE user_id = ?
		ORDER BY week_start DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*domain.WeeklySummary
	for rows.Next() {
		summary, err := r.scanSummaryRow(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Totals scans all of the user's summaries for lifetime XP and longest streak.
func (r *SQLiteSummaryRepository) Totals(ctx context.Context, userID uuid.UUID) (domain.SummaryTotals, error) {
	query := `
		SELECT COALESCE(SUM(xp_earned), 0), COALESCE(MAX(streak), 0)
		FROM weekly_summaries
		WHERE user_id = ?`

	var totals domain.SummaryTotals
	err := r.db.QueryRowContext(ctx, query, userID.String()).Scan(&totals.XPTotal, &totals.LongestStreak)
	return totals, err
}

const selectSummary = `
	SELECT id, user_id, week_start, focus_score, xp_earned,
		total_planned_minutes, total_matched_minutes, streak,
		per_goal, computed_at, created_at
	FROM weekly_summaries`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteSummaryRepository) scanSummary(row *sql.Row) (*domain.WeeklySummary, error) {
	summary, err := r.scanSummaryRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return summary, nil
}

func (r *SQLiteSummaryRepository) scanSummaryRow(row rowScanner) (*domain.WeeklySummary, error) {
	var summary domain.WeeklySummary
	var idStr, userIDStr, weekStartStr, perGoalStr, computedAtStr, createdAtStr string

	err := row.Scan(
		&idStr,
		&userIDStr,
		&weekStartStr,
		&summary.FocusScore,
		&summary.XPEarned,
		&summary.TotalPlannedMinutes,
		&summary.TotalMatchedMinutes,
		&summary.Streak,
		&perGoalStr,
		&computedAtStr,
		&createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	summary.ID, _ = uuid.Parse(idStr)
	summary.UserID, _ = uuid.Parse(userIDStr)
	summary.WeekStart, _ = time.ParseInLocation(dateLayout, weekStartStr, time.Local)
	summary.ComputedAt, _ = time.Parse(time.RFC3339, computedAtStr)
	summary.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

	if err := json.Unmarshal([]byte(perGoalStr), &summary.PerGoal); err != nil {
		return nil, err
	}
	return &summary, nil
}
