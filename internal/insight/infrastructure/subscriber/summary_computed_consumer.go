package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/focusmirror/focusmirror/internal/insight/application/commands"
	"github.com/focusmirror/focusmirror/internal/insight/domain"
	scoringDomain "github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/eventbus"
)

// SummaryComputedConsumer regenerates the week's insight whenever a
// summary is recomputed, so a stale narrative never outlives a rescore.
type SummaryComputedConsumer struct {
	insights domain.InsightRepository
	generate *commands.GenerateInsightHandler
	logger   *slog.Logger
}

// week_start travels as a YYYY-MM-DD key, not a timestamp.
type summaryComputedPayload struct {
	WeekStart string `json:"week_start"`
}

// NewSummaryComputedConsumer creates the consumer.
func NewSummaryComputedConsumer(insights domain.InsightRepository, generate *commands.GenerateInsightHandler, logger *slog.Logger) *SummaryComputedConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryComputedConsumer{insights: insights, generate: generate, logger: logger}
}

// EventTypes declares the routing keys this consumer handles.
func (c *SummaryComputedConsumer) EventTypes() []string {
	return []string{scoringDomain.RoutingKeySummaryComputed}
}

// Handle drops the stored insight for the recomputed week and builds a
// fresh one from the new summary.
func (c *SummaryComputedConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload summaryComputedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("invalid summary computed payload: %w", err)
	}
	parsed, err := time.ParseInLocation("2006-01-02", payload.WeekStart, time.Local)
	if err != nil {
		return fmt.Errorf("invalid week start %q: %w", payload.WeekStart, err)
	}

	weekStart := scoringDomain.StartOfWeek(parsed)
	if err := c.insights.DeleteByWeek(ctx, event.UserID, weekStart); err != nil {
		return fmt.Errorf("failed to invalidate insight: %w", err)
	}

	result, err := c.generate.Handle(ctx, commands.GenerateInsightCommand{
		UserID:    event.UserID,
		WeekStart: weekStart,
	})
	if err != nil {
		return err
	}

	c.logger.Debug("insight refreshed after rescore",
		"user_id", event.UserID,
		"week_start", result.WeekStart,
	)
	return nil
}
