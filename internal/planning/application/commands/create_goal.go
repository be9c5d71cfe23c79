package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
)

// CreateGoalCommand requests creation of a weekly goal.
type CreateGoalCommand struct {
	UserID    uuid.UUID
	Title     string
	Priority  string
	SortOrder int
}

// CreateGoalHandler creates goals.
type CreateGoalHandler struct {
	goals  domain.GoalRepository
	logger *slog.Logger
}

// NewCreateGoalHandler creates a new handler.
func NewCreateGoalHandler(goals domain.GoalRepository, logger *slog.Logger) *CreateGoalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateGoalHandler{goals: goals, logger: logger}
}

// Handle validates and persists the goal. An unrecognized priority is
// rejected here; only already-stored rows get the permissive fallback.
func (h *CreateGoalHandler) Handle(ctx context.Context, cmd CreateGoalCommand) (*domain.Goal, error) {
	priority, err := domain.ParsePriority(cmd.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority %q: %w", cmd.Priority, err)
	}

	goal, err := domain.NewGoal(cmd.UserID, cmd.Title, priority, cmd.SortOrder)
	if err != nil {
		return nil, err
	}

	if err := h.goals.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	h.logger.Info("goal created",
		"goal_id", goal.ID(),
		"user_id", cmd.UserID,
		"priority", priority.String(),
	)
	return goal, nil
}
