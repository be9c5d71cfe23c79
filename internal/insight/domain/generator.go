package domain

import (
	"fmt"
	"sort"
	"strings"
)

// GoalLine is one goal's alignment as shown in the insight card.
type GoalLine struct {
	Title        string
	MatchPercent int
}

// ScoreCard is the flattened weekly result the generator works from.
type ScoreCard struct {
	FocusScore        int
	XPEarned          int
	TotalPlannedHours float64
	TotalMatchedHours float64
	CurrentStreak     int
	WeekLabel         string
	Goals             []GoalLine
}

// overPlanRatio is the matched-to-planned ratio below which the
// over-planning suggestion replaces the buffer-block one.
const overPlanRatio = 0.4

// BuildSummary produces the markdown narrative and exactly three
// suggestions for a week.
func BuildSummary(card ScoreCard) (string, []string) {
	top := topGoals(card.Goals, 2)
	bottom := bottomGoals(card.Goals, 2)

	var tone string
	switch {
	case card.FocusScore >= 85:
		tone = "Excellent week — your time matched your intentions unusually well."
	case card.FocusScore >= 70:
		tone = "Strong alignment week — you're building real consistency."
	case card.FocusScore >= 50:
		tone = "Decent week — you showed up, but there's room to tighten the plan-to-reality loop."
	case card.FocusScore > 0:
		tone = "Rough alignment week — not a failure, just a signal to simplify and protect focus blocks."
	default:
		tone = "No score yet — add planned blocks and sync actual time to generate insights."
	}

	var alignment string
	if card.TotalPlannedHours > 0 {
		alignment = fmt.Sprintf("You planned **%.1fh** and matched about **%.1fh**.",
			card.TotalPlannedHours, card.TotalMatchedHours)
	} else {
		alignment = "You haven't planned any blocks yet this week."
	}

	parts := []string{
		fmt.Sprintf("### Weekly Insight (%s)", card.WeekLabel),
		"",
		fmt.Sprintf("**Focus Score:** %d/100", card.FocusScore),
		"",
		tone,
		"",
		alignment,
	}
	if len(top) > 0 {
		parts = append(parts, "", fmt.Sprintf("Best-aligned: **%s**.", joinGoals(top)))
	}
	if len(bottom) > 0 {
		parts = append(parts, "", fmt.Sprintf("Least-aligned: **%s**.", joinGoals(bottom)))
	}

	suggestions := []string{
		"Protect one **Major** goal block by scheduling it earlier in the day (before meetings), even if it's only 30–45 minutes.",
	}
	if card.TotalPlannedHours > 0 && card.TotalMatchedHours/card.TotalPlannedHours < overPlanRatio {
		suggestions = append(suggestions,
			"You may be **over-planning**. Reduce planned hours by ~20% next week and focus on fewer, higher-quality blocks.")
	} else {
		suggestions = append(suggestions,
			"Add a 10-minute **buffer block** before/after focus sessions to reduce schedule collisions.")
	}
	suggestions = append(suggestions,
		"Rename 1–2 recurring calendar events to match your goal titles (e.g., \"Timeline App – Focus\") so the system can map them more reliably.")

	return strings.Join(parts, "\n"), suggestions
}

func topGoals(goals []GoalLine, n int) []GoalLine {
	sorted := append([]GoalLine(nil), goals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchPercent > sorted[j].MatchPercent
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func bottomGoals(goals []GoalLine, n int) []GoalLine {
	sorted := append([]GoalLine(nil), goals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchPercent < sorted[j].MatchPercent
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func joinGoals(goals []GoalLine) string {
	parts := make([]string, len(goals))
	for i, g := range goals {
		parts[i] = fmt.Sprintf("%s (%d%%)", g.Title, g.MatchPercent)
	}
	return strings.Join(parts, ", ")
}
