package persistence

import (
	"context"
	"time"

	"github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPlanningDataSource reads the engine's inputs from the tables
// owned by the planning and calendar contexts.
type PostgresPlanningDataSource struct {
	pool *pgxpool.Pool
}

// NewPostgresPlanningDataSource creates a new PostgreSQL planning data source.
func NewPostgresPlanningDataSource(pool *pgxpool.Pool) *PostgresPlanningDataSource {
	return &PostgresPlanningDataSource{pool: pool}
}

// Goals returns all goals belonging to the user.
func (p *PostgresPlanningDataSource) Goals(ctx context.Context, userID uuid.UUID) ([]domain.GoalRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, title, priority FROM goals WHERE user_id = $1 ORDER BY sort_order, created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.GoalRecord
	for rows.Next() {
		var g domain.GoalRecord
		if err := rows.Scan(&g.ID, &g.Title, &g.Priority); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// BlocksInWindow returns planned blocks starting within [start, end).
func (p *PostgresPlanningDataSource) BlocksInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.BlockRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT goal_id, start_time, end_time
		FROM planned_blocks
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.BlockRecord
	for rows.Next() {
		var b domain.BlockRecord
		if err := rows.Scan(&b.GoalID, &b.StartTime, &b.EndTime); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// EventsInWindow returns calendar events starting within [start, end).
func (p *PostgresPlanningDataSource) EventsInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.EventRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT start_time, end_time
		FROM calendar_events
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.EventRecord
	for rows.Next() {
		var e domain.EventRecord
		if err := rows.Scan(&e.StartTime, &e.EndTime); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
