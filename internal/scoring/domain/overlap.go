package domain

import "time"

// OverlapMinutes returns the overlap between two time ranges in whole
// minutes. Non-overlapping ranges yield 0; a fully nested range yields
// its full duration. Partial minutes are truncated.
func OverlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}
