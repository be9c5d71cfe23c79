package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
)

// RemoveBlockCommand deletes a planned block.
type RemoveBlockCommand struct {
	BlockID uuid.UUID
}

// RemoveBlockHandler deletes planned blocks.
type RemoveBlockHandler struct {
	blocks domain.BlockRepository
	logger *slog.Logger
}

// NewRemoveBlockHandler creates a new handler.
func NewRemoveBlockHandler(blocks domain.BlockRepository, logger *slog.Logger) *RemoveBlockHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoveBlockHandler{blocks: blocks, logger: logger}
}

// Handle deletes the block.
func (h *RemoveBlockHandler) Handle(ctx context.Context, cmd RemoveBlockCommand) error {
	if err := h.blocks.Delete(ctx, cmd.BlockID); err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}
	h.logger.Info("block removed", "block_id", cmd.BlockID)
	return nil
}
