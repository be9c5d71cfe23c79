package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/focusmirror/focusmirror/internal/insight/domain"
	scoringDomain "github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/google/uuid"
)

// NoSummaryText is returned when no weekly summary exists yet for the
// requested week.
const NoSummaryText = "### Weekly Insight\n\nNo weekly summary found yet. Visit your dashboard to generate a Focus Score first."

// NoSummarySuggestions accompany the placeholder insight.
var NoSummarySuggestions = []string{
	"Create planned blocks on the timeline.",
	"Sync your calendar.",
	"Return to Dashboard for your weekly score.",
}

// GenerateInsightCommand requests the insight for the week containing
// WeekStart, generating and storing it on first access.
type GenerateInsightCommand struct {
	UserID    uuid.UUID
	WeekStart time.Time
}

// InsightResult is the insight payload.
type InsightResult struct {
	WeekStart      string   `json:"weekStart"`
	Summary        string   `json:"summary"`
	Suggestions    []string `json:"suggestions"`
	InfographicSVG string   `json:"infographicSvg"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	Cached         bool     `json:"cached"`
}

// GenerateInsightHandler builds the weekly narrative, suggestions and
// SVG card from the stored weekly summary.
type GenerateInsightHandler struct {
	insights  domain.InsightRepository
	summaries scoringDomain.SummaryRepository
	logger    *slog.Logger
}

// NewGenerateInsightHandler creates a new handler.
func NewGenerateInsightHandler(insights domain.InsightRepository, summaries scoringDomain.SummaryRepository, logger *slog.Logger) *GenerateInsightHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateInsightHandler{insights: insights, summaries: summaries, logger: logger}
}

// Handle returns the stored insight when one exists; otherwise it
// derives one from the week's summary and persists it. A week without a
// summary gets a placeholder response that is never stored, so the
// insight regenerates once a score exists.
func (h *GenerateInsightHandler) Handle(ctx context.Context, cmd GenerateInsightCommand) (*InsightResult, error) {
	weekStart := scoringDomain.StartOfWeek(cmd.WeekStart)
	weekKey := weekStart.Format("2006-01-02")

	existing, err := h.insights.GetByWeek(ctx, cmd.UserID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load insight: %w", err)
	}
	if existing != nil {
		return &InsightResult{
			WeekStart:      weekKey,
			Summary:        existing.Summary,
			Suggestions:    existing.Suggestions,
			InfographicSVG: existing.InfographicSVG,
			CreatedAt:      existing.CreatedAt.Format(time.RFC3339),
			Cached:         true,
		}, nil
	}

	summary, err := h.summaries.GetByWeek(ctx, cmd.UserID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly summary: %w", err)
	}
	if summary == nil {
		h.logger.Info("no summary for insight week",
			"user_id", cmd.UserID,
			"week_start", weekKey,
		)
		return &InsightResult{
			WeekStart:      weekKey,
			Summary:        NoSummaryText,
			Suggestions:    NoSummarySuggestions,
			InfographicSVG: domain.BuildInfographicSVG(domain.ScoreCard{WeekLabel: weekKey}),
			Cached:         false,
		}, nil
	}

	card := toScoreCard(summary)
	text, suggestions := domain.BuildSummary(card)
	svg := domain.BuildInfographicSVG(card)

	insight := domain.NewWeeklyInsight(cmd.UserID, weekStart, text, suggestions, svg)
	if err := h.insights.Upsert(ctx, insight); err != nil {
		return nil, fmt.Errorf("failed to store insight: %w", err)
	}

	h.logger.Info("insight generated",
		"user_id", cmd.UserID,
		"week_start", weekKey,
		"focus_score", summary.FocusScore,
	)
	return &InsightResult{
		WeekStart:      weekKey,
		Summary:        text,
		Suggestions:    suggestions,
		InfographicSVG: svg,
		CreatedAt:      insight.CreatedAt.Format(time.RFC3339),
		Cached:         false,
	}, nil
}

func toScoreCard(summary *scoringDomain.WeeklySummary) domain.ScoreCard {
	goals := make([]domain.GoalLine, 0, len(summary.PerGoal))
	for _, g := range summary.PerGoal {
		goals = append(goals, domain.GoalLine{
			Title:        g.Title,
			MatchPercent: g.ScoreBucket,
		})
	}
	return domain.ScoreCard{
		FocusScore:        summary.FocusScore,
		XPEarned:          summary.XPEarned,
		TotalPlannedHours: minutesToHours(summary.TotalPlannedMinutes),
		TotalMatchedHours: minutesToHours(summary.TotalMatchedMinutes),
		CurrentStreak:     summary.Streak,
		WeekLabel:         summary.WeekLabel(),
		Goals:             goals,
	}
}

func minutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}
