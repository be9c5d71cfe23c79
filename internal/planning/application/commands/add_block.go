package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
)

// AddBlockCommand schedules a focus block against a goal.
type AddBlockCommand struct {
	UserID    uuid.UUID
	GoalID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// AddBlockHandler creates planned blocks.
type AddBlockHandler struct {
	goals  domain.GoalRepository
	blocks domain.BlockRepository
	logger *slog.Logger
}

// NewAddBlockHandler creates a new handler.
func NewAddBlockHandler(goals domain.GoalRepository, blocks domain.BlockRepository, logger *slog.Logger) *AddBlockHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddBlockHandler{goals: goals, blocks: blocks, logger: logger}
}

// Handle verifies the goal exists before scheduling the block.
func (h *AddBlockHandler) Handle(ctx context.Context, cmd AddBlockCommand) (*domain.PlannedBlock, error) {
	goal, err := h.goals.GetByID(ctx, cmd.GoalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil {
		return nil, fmt.Errorf("goal %s not found", cmd.GoalID)
	}

	block, err := domain.NewPlannedBlock(cmd.UserID, cmd.GoalID, cmd.StartTime, cmd.EndTime)
	if err != nil {
		return nil, err
	}

	if err := h.blocks.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create block: %w", err)
	}

	h.logger.Info("block scheduled",
		"block_id", block.ID(),
		"goal_id", cmd.GoalID,
		"minutes", block.DurationMinutes(),
	)
	return block, nil
}
