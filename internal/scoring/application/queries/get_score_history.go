package queries

import (
	"context"
	"fmt"
	"math"

	"github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/google/uuid"
)

// DefaultHistoryLimit caps the history query when no limit is given.
const DefaultHistoryLimit = 12

// GetScoreHistoryQuery requests the user's recent weekly summaries,
// newest week first.
type GetScoreHistoryQuery struct {
	UserID uuid.UUID
	Limit  int
}

// HistoryItem is one stored week in the dashboard trend view.
type HistoryItem struct {
	WeekStart         string  `json:"weekStart"`
	WeekLabel         string  `json:"weekLabel"`
	FocusScore        int     `json:"focusScore"`
	XPEarned          int     `json:"xpEarned"`
	Streak            int     `json:"streak"`
	TotalPlannedHours float64 `json:"totalPlannedHours"`
	TotalMatchedHours float64 `json:"totalMatchedHours"`
}

// GetScoreHistoryHandler reads stored summaries for trend display.
type GetScoreHistoryHandler struct {
	summaries domain.SummaryRepository
}

// NewGetScoreHistoryHandler creates a new history query handler.
func NewGetScoreHistoryHandler(summaries domain.SummaryRepository) *GetScoreHistoryHandler {
	return &GetScoreHistoryHandler{summaries: summaries}
}

// Handle returns up to Limit summaries, newest first.
func (h *GetScoreHistoryHandler) Handle(ctx context.Context, query GetScoreHistoryQuery) ([]HistoryItem, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	summaries, err := h.summaries.GetRecent(ctx, query.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load summaries: %w", err)
	}

	items := make([]HistoryItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, HistoryItem{
			WeekStart:         s.WeekKey(),
			WeekLabel:         s.WeekLabel(),
			FocusScore:        s.FocusScore,
			XPEarned:          s.XPEarned,
			Streak:            s.Streak,
			TotalPlannedHours: math.Round(float64(s.TotalPlannedMinutes)/60*10) / 10,
			TotalMatchedHours: math.Round(float64(s.TotalMatchedMinutes)/60*10) / 10,
		})
	}
	return items, nil
}
