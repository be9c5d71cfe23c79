package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
)

// DeleteGoalCommand removes a goal and all of its planned blocks.
type DeleteGoalCommand struct {
	GoalID uuid.UUID
}

// DeleteGoalHandler deletes goals.
type DeleteGoalHandler struct {
	goals  domain.GoalRepository
	blocks domain.BlockRepository
	logger *slog.Logger
}

// NewDeleteGoalHandler creates a new handler.
func NewDeleteGoalHandler(goals domain.GoalRepository, blocks domain.BlockRepository, logger *slog.Logger) *DeleteGoalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteGoalHandler{goals: goals, blocks: blocks, logger: logger}
}

// Handle removes the goal's blocks first so no orphan blocks are left
// behind; orphaned blocks would be silently dropped from scoring anyway.
func (h *DeleteGoalHandler) Handle(ctx context.Context, cmd DeleteGoalCommand) error {
	if err := h.blocks.DeleteByGoal(ctx, cmd.GoalID); err != nil {
		return fmt.Errorf("failed to delete goal blocks: %w", err)
	}
	if err := h.goals.Delete(ctx, cmd.GoalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	h.logger.Info("goal deleted", "goal_id", cmd.GoalID)
	return nil
}
