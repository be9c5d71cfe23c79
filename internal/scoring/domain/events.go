package domain

import (
	"time"

	sharedDomain "github.com/focusmirror/focusmirror/internal/shared/domain"
)

// RoutingKeySummaryComputed is published after each successful engine run.
const RoutingKeySummaryComputed = "scoring.summary.computed"

// WeeklySummaryComputed signals that a week's focus score was computed
// and its summary upserted.
type WeeklySummaryComputed struct {
	sharedDomain.BaseEvent
	WeekStart  time.Time `json:"week_start"`
	FocusScore int       `json:"focus_score"`
	XPEarned   int       `json:"xp_earned"`
	Streak     int       `json:"streak"`
}

var _ sharedDomain.DomainEvent = (*WeeklySummaryComputed)(nil)

// NewWeeklySummaryComputed creates the event for a computed summary.
func NewWeeklySummaryComputed(summary *WeeklySummary) *WeeklySummaryComputed {
	return &WeeklySummaryComputed{
		BaseEvent:  sharedDomain.NewBaseEvent(summary.ID, "weekly_summary", RoutingKeySummaryComputed, summary.UserID),
		WeekStart:  summary.WeekStart,
		FocusScore: summary.FocusScore,
		XPEarned:   summary.XPEarned,
		Streak:     summary.Streak,
	}
}
