package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyInsight holds the generated narrative, suggestions and shareable
// SVG card for one week. Insights are immutable once generated; a
// regeneration after a rescore replaces the row.
type WeeklyInsight struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	WeekStart      time.Time
	Summary        string
	Suggestions    []string
	InfographicSVG string
	CreatedAt      time.Time
}

// NewWeeklyInsight creates an insight for the given week.
func NewWeeklyInsight(userID uuid.UUID, weekStart time.Time, summary string, suggestions []string, infographicSVG string) *WeeklyInsight {
	return &WeeklyInsight{
		ID:             uuid.New(),
		UserID:         userID,
		WeekStart:      weekStart,
		Summary:        summary,
		Suggestions:    suggestions,
		InfographicSVG: infographicSVG,
		CreatedAt:      time.Now().UTC(),
	}
}
