package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBlockRepository implements domain.BlockRepository for PostgreSQL.
type PostgresBlockRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBlockRepository creates a new PostgreSQL block repository.
func NewPostgresBlockRepository(pool *pgxpool.Pool) *PostgresBlockRepository {
	return &PostgresBlockRepository{pool: pool}
}

// Create inserts a new block row.
func (r *PostgresBlockRepository) Create(ctx context.Context, block *domain.PlannedBlock) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO planned_blocks (id, user_id, goal_id, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		block.ID(),
		block.UserID(),
		block.GoalID(),
		block.StartTime(),
		block.EndTime(),
		block.CreatedAt(),
		block.UpdatedAt())
	return err
}

// GetByID returns the block, or nil when it does not exist.
func (r *PostgresBlockRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlannedBlock, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, goal_id, start_time, end_time, created_at, updated_at
		FROM planned_blocks WHERE id = $1`,
		id)
	block, err := scanPgBlock(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return block, err
}

// ListInWindow returns blocks starting within [start, end), ordered by
// start time.
func (r *PostgresBlockRepository) ListInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PlannedBlock, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, goal_id, start_time, end_time, created_at, updated_at
		FROM planned_blocks
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*domain.PlannedBlock
	for rows.Next() {
		block, err := scanPgBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

// Delete removes the block row.
func (r *PostgresBlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM planned_blocks WHERE id = $1`, id)
	return err
}

// DeleteByGoal removes every block attached to the goal.
func (r *PostgresBlockRepository) DeleteByGoal(ctx context.Context, goalID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM planned_blocks WHERE goal_id = $1`, goalID)
	return err
}

func scanPgBlock(row pgx.Row) (*domain.PlannedBlock, error) {
	var (
		id, userID, goalID   uuid.UUID
		startTime, endTime   time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &goalID, &startTime, &endTime, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.RehydratePlannedBlock(id, userID, goalID, startTime, endTime, createdAt, updatedAt), nil
}
