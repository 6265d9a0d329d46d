package trust

// OverallProgress returns score as a percentage of ScoreCeiling, capped at 100.
// It ignores tier boundaries.
func OverallProgress(score uint64) float64 {
	if score >= ScoreCeiling {
		return 100
	}
	return float64(score) / ScoreCeiling * 100
}

// TierProgress interpolates score linearly between tier's threshold and the
// next tier's threshold, clamped to [0, 100]. PLATINUM interpolates up to
// ScoreCeiling so growth inside the top tier is still visible.
//
// tier need not be TierOf(score); a score outside the band clamps.
func TierProgress(score uint64, tier Tier) float64 {
	lo := Threshold(tier)
	hi := upperBound(tier)
	if score <= lo {
		return 0
	}
	if score >= hi {
		return 100
	}
	return float64(score-lo) / float64(hi-lo) * 100
}
