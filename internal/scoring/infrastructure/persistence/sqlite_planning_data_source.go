package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/google/uuid"
)

// SQLitePlanningDataSource reads the engine's inputs from the tables
// owned by the planning and calendar contexts.
type SQLitePlanningDataSource struct {
	db *sql.DB
}

// NewSQLitePlanningDataSource creates a new SQLite planning data source.
func NewSQLitePlanningDataSource(db *sql.DB) *SQLitePlanningDataSource {
	return &SQLitePlanningDataSource{db: db}
}

// Goals returns all goals belonging to the user.
func (s *SQLitePlanningDataSource) Goals(ctx context.Context, userID uuid.UUID) ([]domain.GoalRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, priority FROM goals WHERE user_id = ? ORDER BY sort_order, created_at`,
		userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.GoalRecord
	for rows.Next() {
		var idStr string
		var g domain.GoalRecord
		if err := rows.Scan(&idStr, &g.Title, &g.Priority); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue // malformed row, zero contribution
		}
		g.ID = id
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// BlocksInWindow returns planned blocks starting within [start, end).
func (s *SQLitePlanningDataSource) BlocksInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.BlockRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT goal_id, start_time, end_time
		FROM planned_blocks
		WHERE user_id = ? AND start_time >= ? AND start_time < ?`,
		userID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.BlockRecord
	for rows.Next() {
		var goalIDStr, startStr, endStr string
		if err := rows.Scan(&goalIDStr, &startStr, &endStr); err != nil {
			return nil, err
		}
		goalID, err := uuid.Parse(goalIDStr)
		if err != nil {
			continue
		}
		startTime, endTime, ok := parseRange(startStr, endStr)
		if !ok {
			continue // unparseable timestamps, zero contribution
		}
		blocks = append(blocks, domain.BlockRecord{
			GoalID:    goalID,
			StartTime: startTime,
			EndTime:   endTime,
		})
	}
	return blocks, rows.Err()
}

// EventsInWindow returns calendar events starting within [start, end).
func (s *SQLitePlanningDataSource) EventsInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.EventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_time, end_time
		FROM calendar_events
		WHERE user_id = ? AND start_time >= ? AND start_time < ?`,
		userID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.EventRecord
	for rows.Next() {
		var startStr, endStr string
		if err := rows.Scan(&startStr, &endStr); err != nil {
			return nil, err
		}
		startTime, endTime, ok := parseRange(startStr, endStr)
		if !ok {
			continue
		}
		events = append(events, domain.EventRecord{
			StartTime: startTime,
			EndTime:   endTime,
		})
	}
	return events, rows.Err()
}

func parseRange(startStr, endStr string) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
