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

// PostgresGoalRepository implements domain.GoalRepository for PostgreSQL.
type PostgresGoalRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresGoalRepository creates a new PostgreSQL goal repository.
func NewPostgresGoalRepository(pool *pgxpool.Pool) *PostgresGoalRepository {
	return &PostgresGoalRepository{pool: pool}
}

// Create inserts a new goal row.
func (r *PostgresGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO goals (id, user_id, title, priority, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		goal.ID(),
		goal.UserID(),
		goal.Title(),
		goal.Priority().String(),
		goal.SortOrder(),
		goal.CreatedAt(),
		goal.UpdatedAt())
	return err
}

// GetByID returns the goal, or nil when it does not exist.
func (r *PostgresGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, priority, sort_order, created_at, updated_at
		FROM goals WHERE id = $1`,
		id)
	goal, err := scanPgGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return goal, err
}

// ListByUser returns the user's goals in sort order.
func (r *PostgresGoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, priority, sort_order, created_at, updated_at
		FROM goals WHERE user_id = $1
		ORDER BY sort_order, created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanPgGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update saves a modified goal.
func (r *PostgresGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE goals
		SET title = $1, priority = $2, sort_order = $3, updated_at = $4
		WHERE id = $5`,
		goal.Title(),
		goal.Priority().String(),
		goal.SortOrder(),
		goal.UpdatedAt(),
		goal.ID())
	return err
}

// Delete removes the goal row.
func (r *PostgresGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	return err
}

func scanPgGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		id, userID           uuid.UUID
		title, priorityStr   string
		sortOrder            int
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &title, &priorityStr, &sortOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.RehydrateGoal(id, userID, title, domain.Priority(priorityStr), sortOrder, createdAt, updatedAt), nil
}
