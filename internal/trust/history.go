package trust

import "math"

// HistoryEntry is one score sample. History slices are ordered most recent
// first.
type HistoryEntry struct {
	Timestamp int64  `json:"timestamp" yaml:"timestamp"` // unix seconds
	Score     uint64 `json:"score" yaml:"score"`
	Tier      Tier   `json:"tier" yaml:"tier"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Trend is the direction of the most recent score change.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// TrendOf compares history[0] with history[1] only. Fewer than two samples
// is stable. Older samples are never consulted.
func TrendOf(history []HistoryEntry) Trend {
	if len(history) < 2 {
		return TrendStable
	}
	switch {
	case history[0].Score > history[1].Score:
		return TrendUp
	case history[0].Score < history[1].Score:
		return TrendDown
	default:
		return TrendStable
	}
}

// ScoreChange returns history[0].score - history[1].score, or 0 with fewer
// than two samples. The difference is clamped to the int64 range, so its
// sign always agrees with TrendOf.
func ScoreChange(history []HistoryEntry) int64 {
	if len(history) < 2 {
		return 0
	}
	cur, prev := history[0].Score, history[1].Score
	if cur >= prev {
		d := cur - prev
		if d > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(d)
	}
	d := prev - cur
	if d > math.MaxInt64 {
		return math.MinInt64
	}
	return -int64(d)
}

// prepend returns history with e at the front, truncated to limit entries.
// The oldest entries are dropped. A non-positive limit disables the cap.
func prepend(history []HistoryEntry, e HistoryEntry, limit int) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(history)+1)
	out = append(out, e)
	out = append(out, history...)
	return truncate(out, limit)
}

func truncate(history []HistoryEntry, limit int) []HistoryEntry {
	if limit > 0 && len(history) > limit {
		return history[:limit:limit]
	}
	return history
}
