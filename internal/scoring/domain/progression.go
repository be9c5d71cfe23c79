package domain

import (
	"math"
	"time"
)

// StreakThreshold is the minimum focus score for a week to qualify for
// the consecutive-week streak.
const StreakThreshold = 70

// XPForScore derives the XP reward for a weekly focus score. High scores
// earn stacking bonuses: +20 at 80 and above, a further +30 at 90 and above.
func XPForScore(score int) int {
	xp := int(math.Round(float64(score) * 1.2))
	if score >= 80 {
		xp += 20
	}
	if score >= 90 {
		xp += 30
	}
	return xp
}

// NextStreak computes the streak value for a week scoring `score`, given
// the most recent stored summary before that week (nil when none exists).
//
// A score below the threshold always breaks the chain. A qualifying score
// extends the prior streak only when the prior summary is for exactly the
// previous calendar week and itself qualified; otherwise the chain
// restarts at 1.
func NextStreak(score int, prior *WeeklySummary, weekStart time.Time) int {
	if score < StreakThreshold {
		return 0
	}
	if prior != nil &&
		isExactlyOneWeekBefore(prior.WeekStart, weekStart) &&
		prior.FocusScore >= StreakThreshold {
		return prior.Streak + 1
	}
	return 1
}

// LevelForXP maps a lifetime XP total to a profile level.
func LevelForXP(xpTotal int) int {
	level := xpTotal/100 + 1
	if level < 1 {
		level = 1
	}
	return level
}

func isExactlyOneWeekBefore(prior, current time.Time) bool {
	return prior.AddDate(0, 0, 7).Equal(current)
}
