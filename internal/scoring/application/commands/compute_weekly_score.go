package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	identityDomain "github.com/focusmirror/focusmirror/internal/identity/domain"
	"github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// EmptyWeekMessage is returned when the user has no planned blocks in
// the target week.
const EmptyWeekMessage = "No planned blocks found for this week. Create sessions on the timeline to start tracking your focus."

// ComputeWeeklyScoreCommand requests a focus score computation for the
// week containing WeekStart (normalized to Monday).
type ComputeWeeklyScoreCommand struct {
	UserID    uuid.UUID
	WeekStart time.Time
}

// PerGoalResult is the per-goal slice of the response payload.
type PerGoalResult struct {
	GoalID       uuid.UUID `json:"goalId"`
	Title        string    `json:"title"`
	Priority     string    `json:"priority"`
	PlannedHours float64   `json:"plannedHours"`
	ActualHours  float64   `json:"actualHours"`
	MatchPercent int       `json:"matchPercent"`
}

// WeeklyScoreResult is the response payload consumed by the dashboard.
type WeeklyScoreResult struct {
	FocusScore        int             `json:"focusScore"`
	XPEarned          int             `json:"xpEarned"`
	TotalPlannedHours float64         `json:"totalPlannedHours"`
	TotalMatchedHours float64         `json:"totalMatchedHours"`
	CurrentStreak     int             `json:"currentStreak"`
	LongestStreak     int             `json:"longestStreak"`
	XPTotal           int             `json:"xpTotal"`
	WeekStart         string          `json:"weekStart"`
	WeekLabel         string          `json:"weekLabel"`
	PerGoal           []PerGoalResult `json:"perGoal"`
	Message           string          `json:"message,omitempty"`
}

// ComputeWeeklyScoreHandler runs the weekly focus scoring engine:
// aggregate planned blocks against calendar events, compose the weighted
// score, derive XP and streak state, and upsert the weekly summary.
type ComputeWeeklyScoreHandler struct {
	data      domain.PlanningDataSource
	summaries domain.SummaryRepository
	profiles  identityDomain.ProfileRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewComputeWeeklyScoreHandler creates a new handler. The publisher may
// be nil when no event bus is wired.
func NewComputeWeeklyScoreHandler(
	data domain.PlanningDataSource,
	summaries domain.SummaryRepository,
	profiles identityDomain.ProfileRepository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *ComputeWeeklyScoreHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComputeWeeklyScoreHandler{
		data:      data,
		summaries: summaries,
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle computes and persists the weekly score. Any read failure aborts
// the whole computation; the response is only returned once both writes
// (summary upsert, profile progression) have succeeded.
func (h *ComputeWeeklyScoreHandler) Handle(ctx context.Context, cmd ComputeWeeklyScoreCommand) (*WeeklyScoreResult, error) {
	weekStart := domain.StartOfWeek(cmd.WeekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	goals, err := h.data.Goals(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	blocks, err := h.data.BlocksInWindow(ctx, cmd.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load planned blocks: %w", err)
	}
	events, err := h.data.EventsInWindow(ctx, cmd.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar events: %w", err)
	}

	// Empty weeks short-circuit without touching stored streak state.
	if len(blocks) == 0 {
		h.logger.Info("no planned blocks for week",
			"user_id", cmd.UserID,
			"week_start", weekStart.Format("2006-01-02"),
		)
		return &WeeklyScoreResult{
			WeekStart: weekStart.Format("2006-01-02"),
			WeekLabel: domain.WeekLabel(weekStart),
			PerGoal:   []PerGoalResult{},
			Message:   EmptyWeekMessage,
		}, nil
	}

	agg := domain.AggregateWeek(goals, blocks, events)
	focusScore, scored := domain.ComposeScore(agg.PerGoal)
	xpEarned := domain.XPForScore(focusScore)

	prior, err := h.summaries.GetLatestBefore(ctx, cmd.UserID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior summary: %w", err)
	}
	streak := domain.NextStreak(focusScore, prior, weekStart)

	summary := domain.NewWeeklySummary(cmd.UserID, weekStart)
	summary.FocusScore = focusScore
	summary.XPEarned = xpEarned
	summary.TotalPlannedMinutes = agg.TotalPlannedMinutes
	summary.TotalMatchedMinutes = agg.TotalMatchedMinutes
	summary.Streak = streak
	summary.PerGoal = detailsFromScored(scored)

	if err := h.summaries.Upsert(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save weekly summary: %w", err)
	}

	totals, err := h.summaries.Totals(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to scan summary totals: %w", err)
	}
	level := domain.LevelForXP(totals.XPTotal)
	if err := h.profiles.UpdateProgress(ctx, cmd.UserID, totals.XPTotal, level); err != nil {
		return nil, fmt.Errorf("failed to update profile progression: %w", err)
	}

	h.publishComputed(ctx, summary)

	h.logger.Info("weekly score computed",
		"user_id", cmd.UserID,
		"week_start", summary.WeekKey(),
		"focus_score", focusScore,
		"streak", streak,
	)

	return &WeeklyScoreResult{
		FocusScore:        focusScore,
		XPEarned:          xpEarned,
		TotalPlannedHours: minutesToHours(agg.TotalPlannedMinutes),
		TotalMatchedHours: minutesToHours(agg.TotalMatchedMinutes),
		CurrentStreak:     streak,
		LongestStreak:     totals.LongestStreak,
		XPTotal:           totals.XPTotal,
		WeekStart:         summary.WeekKey(),
		WeekLabel:         summary.WeekLabel(),
		PerGoal:           perGoalResults(scored),
	}, nil
}

// publishComputed emits the summary-computed event. Publishing is
// best-effort: a broker outage must not fail an already-persisted run.
func (h *ComputeWeeklyScoreHandler) publishComputed(ctx context.Context, summary *domain.WeeklySummary) {
	if h.publisher == nil {
		return
	}
	event := domain.NewWeeklySummaryComputed(summary)
	payload, err := eventbus.MarshalDomainEvent(event, map[string]any{
		"week_start":  summary.WeekKey(),
		"focus_score": summary.FocusScore,
		"xp_earned":   summary.XPEarned,
		"streak":      summary.Streak,
	})
	if err != nil {
		h.logger.Error("failed to marshal summary event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
		h.logger.Error("failed to publish summary event", "error", err)
	}
}

func detailsFromScored(scored []domain.ScoredGoal) []domain.GoalScoreDetail {
	details := make([]domain.GoalScoreDetail, 0, len(scored))
	for _, g := range scored {
		details = append(details, domain.GoalScoreDetail{
			GoalID:         g.GoalID,
			Title:          g.Title,
			Priority:       g.Priority,
			PlannedMinutes: g.PlannedMinutes,
			MatchedMinutes: g.MatchedMinutes,
			ScoreBucket:    g.ScoreBucket,
		})
	}
	return details
}

func perGoalResults(scored []domain.ScoredGoal) []PerGoalResult {
	results := make([]PerGoalResult, 0, len(scored))
	for _, g := range scored {
		results = append(results, PerGoalResult{
			GoalID:       g.GoalID,
			Title:        g.Title,
			Priority:     g.Priority.String(),
			PlannedHours: minutesToHours(g.PlannedMinutes),
			ActualHours:  minutesToHours(g.MatchedMinutes),
			MatchPercent: g.ScoreBucket,
		})
	}
	return results
}

func minutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}
