package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GoalScoreDetail is the denormalized per-goal snapshot stored inside a
// weekly summary. Title and priority are copied from the goal at compute
// time so summaries survive later goal edits or deletion.
type GoalScoreDetail struct {
	GoalID         uuid.UUID `json:"goal_id"`
	Title          string    `json:"title"`
	Priority       Priority  `json:"priority"`
	PlannedMinutes int       `json:"planned_minutes"`
	MatchedMinutes int       `json:"matched_minutes"`
	ScoreBucket    int       `json:"score_bucket"`
}

// WeeklySummary is the engine's persisted output for one user's calendar
// week, keyed uniquely by (UserID, WeekStart). Recomputation overwrites
// the full row, making the engine idempotent per week.
type WeeklySummary struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	WeekStart           time.Time // always a Monday, midnight local
	FocusScore          int
	XPEarned            int
	TotalPlannedMinutes int
	TotalMatchedMinutes int
	Streak              int
	PerGoal             []GoalScoreDetail
	ComputedAt          time.Time
	CreatedAt           time.Time
}

// NewWeeklySummary creates a summary for the week containing weekStart.
func NewWeeklySummary(userID uuid.UUID, weekStart time.Time) *WeeklySummary {
	now := time.Now()
	return &WeeklySummary{
		ID:         uuid.New(),
		UserID:     userID,
		WeekStart:  StartOfWeek(weekStart),
		ComputedAt: now,
		CreatedAt:  now,
	}
}

// WeekEnd returns the exclusive upper bound of the summary's week.
func (s *WeeklySummary) WeekEnd() time.Time {
	return s.WeekStart.AddDate(0, 0, 7)
}

// WeekKey returns the week's canonical YYYY-MM-DD key.
func (s *WeeklySummary) WeekKey() string {
	return s.WeekStart.Format("2006-01-02")
}

// WeekLabel returns a human-readable Monday-to-Sunday range label.
func (s *WeeklySummary) WeekLabel() string {
	return WeekLabel(s.WeekStart)
}

// StartOfWeek returns the Monday 00:00 of the week containing t.
// Weeks run Monday 00:00 through the following Monday 00:00, exclusive.
func StartOfWeek(t time.Time) time.Time {
	daysBack := int(t.Weekday()) - 1
	if daysBack < 0 {
		daysBack = 6 // Sunday belongs to the week that started the previous Monday
	}
	monday := t.AddDate(0, 0, -daysBack)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// WeekLabel formats a week start as "Jan 2 – Jan 8".
func WeekLabel(weekStart time.Time) string {
	sunday := weekStart.AddDate(0, 0, 6)
	return fmt.Sprintf("%s – %s", weekStart.Format("Jan 2"), sunday.Format("Jan 2"))
}
