package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
)

// SQLiteBlockRepository implements domain.BlockRepository for SQLite.
type SQLiteBlockRepository struct {
	db *sql.DB
}

// NewSQLiteBlockRepository creates a new SQLite block repository.
func NewSQLiteBlockRepository(db *sql.DB) *SQLiteBlockRepository {
	return &SQLiteBlockRepository{db: db}
}

// Create inserts a new block row.
func (r *SQLiteBlockRepository) Create(ctx context.Context, block *domain.PlannedBlock) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO planned_blocks (id, user_id, goal_id, start_time, end_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		block.ID().String(),
		block.UserID().String(),
		block.GoalID().String(),
		block.StartTime().UTC().Format(time.RFC3339),
		block.EndTime().UTC().Format(time.RFC3339),
		block.CreatedAt().UTC().Format(time.RFC3339),
		block.UpdatedAt().UTC().Format(time.RFC3339))
	return err
}

// GetByID returns the block, or nil when it does not exist.
func (r *SQLiteBlockRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlannedBlock, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, goal_id, start_time, end_time, created_at, updated_at
		FROM planned_blocks WHERE id = ?`,
		id.String())
	block, err := scanBlock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return block, err
}

// ListInWindow returns blocks starting within [start, end), ordered by
// start time.
func (r *SQLiteBlockRepository) ListInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PlannedBlock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, goal_id, start_time, end_time, created_at, updated_at
		FROM planned_blocks
		WHERE user_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time`,
		userID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*domain.PlannedBlock
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

// Delete removes the block row.
func (r *SQLiteBlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM planned_blocks WHERE id = ?`, id.String())
	return err
}

// DeleteByGoal removes every block attached to the goal.
func (r *SQLiteBlockRepository) DeleteByGoal(ctx context.Context, goalID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM planned_blocks WHERE goal_id = ?`, goalID.String())
	return err
}

func scanBlock(row rowScanner) (*domain.PlannedBlock, error) {
	var idStr, userIDStr, goalIDStr, startStr, endStr, createdStr, updatedStr string
	if err := row.Scan(&idStr, &userIDStr, &goalIDStr, &startStr, &endStr, &createdStr, &updatedStr); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	goalID, err := uuid.Parse(goalIDStr)
	if err != nil {
		return nil, err
	}
	startTime, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}
	endTime, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return nil, err
	}
	return domain.RehydratePlannedBlock(id, userID, goalID, startTime, endTime, createdAt, updatedAt), nil
}
