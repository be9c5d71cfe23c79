package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
)

// SQLiteGoalRepository implements domain.GoalRepository for SQLite.
type SQLiteGoalRepository struct {
	db *sql.DB
}

// NewSQLiteGoalRepository creates a new SQLite goal repository.
func NewSQLiteGoalRepository(db *sql.DB) *SQLiteGoalRepository {
	return &SQLiteGoalRepository{db: db}
}

// Create inserts a new goal row.
func (r *SQLiteGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, title, priority, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID().String(),
		goal.UserID().String(),
		goal.Title(),
		goal.Priority().String(),
		goal.SortOrder(),
		goal.CreatedAt().UTC().Format(time.RFC3339),
		goal.UpdatedAt().UTC().Format(time.RFC3339))
	return err
}

// GetByID returns the goal, or nil when it does not exist.
func (r *SQLiteGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, priority, sort_order, created_at, updated_at
		FROM goals WHERE id = ?`,
		id.String())
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return goal, err
}

// ListByUser returns the user's goals in sort order.
func (r *SQLiteGoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, priority, sort_order, created_at, updated_at
		FROM goals WHERE user_id = ?
		ORDER BY sort_order, created_at`,
		userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update saves a modified goal.
func (r *SQLiteGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET title = ?, priority = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		goal.Title(),
		goal.Priority().String(),
		goal.SortOrder(),
		goal.UpdatedAt().UTC().Format(time.RFC3339),
		goal.ID().String())
	return err
}

// Delete removes the goal row.
func (r *SQLiteGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id.String())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var idStr, userIDStr, title, priorityStr, createdStr, updatedStr string
	var sortOrder int
	if err := row.Scan(&idStr, &userIDStr, &title, &priorityStr, &sortOrder, &createdStr, &updatedStr); err != nil {
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
	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateGoal(id, userID, title, domain.Priority(priorityStr), sortOrder, createdAt, updatedAt), nil
}
