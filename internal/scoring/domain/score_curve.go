package domain

// Score buckets produced by the attempt-ratio curve.
const (
	BucketFull    = 100
	BucketStrong  = 75
	BucketHalf    = 50
	BucketAttempt = 30
	BucketNone    = 0
)

// ScoreFromRatio converts a matched/planned ratio into a discrete score
// bucket. The curve is deliberately non-linear: any overlap at all earns
// partial credit, rewarding attempts over strict proportionality.
//
// The ratio is undefined for zero planned minutes; callers must exclude
// goals with no planned time before invoking.
func ScoreFromRatio(ratio float64) int {
	switch {
	case ratio >= 0.6:
		return BucketFull
	case ratio >= 0.4:
		return BucketStrong
	case ratio >= 0.2:
		return BucketHalf
	case ratio > 0:
		return BucketAttempt
	default:
		return BucketNone
	}
}
