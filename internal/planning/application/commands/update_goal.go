package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
)

// UpdateGoalCommand changes a goal's title, priority, or position.
// Nil fields are left untouched.
type UpdateGoalCommand struct {
	GoalID    uuid.UUID
	Title     *string
	Priority  *string
	SortOrder *int
}

// UpdateGoalHandler applies partial updates to goals.
type UpdateGoalHandler struct {
	goals  domain.GoalRepository
	logger *slog.Logger
}

// NewUpdateGoalHandler creates a new handler.
func NewUpdateGoalHandler(goals domain.GoalRepository, logger *slog.Logger) *UpdateGoalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateGoalHandler{goals: goals, logger: logger}
}

// Handle loads the goal, applies the requested changes and saves it.
func (h *UpdateGoalHandler) Handle(ctx context.Context, cmd UpdateGoalCommand) (*domain.Goal, error) {
	goal, err := h.goals.GetByID(ctx, cmd.GoalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil {
		return nil, fmt.Errorf("goal %s not found", cmd.GoalID)
	}

	if cmd.Title != nil {
		if err := goal.Rename(*cmd.Title); err != nil {
			return nil, err
		}
	}
	if cmd.Priority != nil {
		priority, err := domain.ParsePriority(*cmd.Priority)
		if err != nil {
			return nil, fmt.Errorf("invalid priority %q: %w", *cmd.Priority, err)
		}
		goal.Reprioritize(priority)
	}
	if cmd.SortOrder != nil {
		goal.Reorder(*cmd.SortOrder)
	}

	if err := h.goals.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	h.logger.Info("goal updated", "goal_id", goal.ID())
	return goal, nil
}
