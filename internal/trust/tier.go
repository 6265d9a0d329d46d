package trust

import (
	"fmt"
	"strings"
)

// Tier is a coarse trust classification derived from a score.
type Tier int

const (
	Newcomer Tier = iota
	Silver
	Gold
	Platinum
)

// Tiers lists every tier in ascending order.
var Tiers = []Tier{Newcomer, Silver, Gold, Platinum}

// ScoreCeiling is the conceptual maximum used for display. It is not a cap.
const ScoreCeiling = 1000

var thresholds = [...]uint64{
	Newcomer: 0,
	Silver:   250,
	Gold:     500,
	Platinum: 750,
}

var tierNames = [...]string{
	Newcomer: "NEWCOMER",
	Silver:   "SILVER",
	Gold:     "GOLD",
	Platinum: "PLATINUM",
}

// String returns the upper-case tier name.
func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t >= Newcomer && t <= Platinum
}

// Level returns the tier's ordinal (0 for NEWCOMER). Circle requirements
// (params.minTrustTier) are compared against it.
func (t Tier) Level() uint8 {
	if !t.Valid() {
		return 0
	}
	return uint8(t)
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return Newcomer, fmt.Errorf("unknown tier %q", s)
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Threshold returns the inclusive lower bound of t.
func Threshold(t Tier) uint64 {
	if !t.Valid() {
		return 0
	}
	return thresholds[t]
}

// TierOf returns the highest tier whose threshold does not exceed score.
func TierOf(score uint64) Tier {
	for i := len(thresholds) - 1; i > 0; i-- {
		if score >= thresholds[i] {
			return Tier(i)
		}
	}
	return Newcomer
}

// NextTier returns the tier above t. The second result is false at PLATINUM.
func NextTier(t Tier) (Tier, bool) {
	if !t.Valid() || t == Platinum {
		return Platinum, false
	}
	return t + 1, true
}

// upperBound is the score at which progress within t reaches 100%: the next
// tier's threshold, or ScoreCeiling for PLATINUM.
func upperBound(t Tier) uint64 {
	if next, ok := NextTier(t); ok {
		return thresholds[next]
	}
	return ScoreCeiling
}

// PointsToNextTier returns how many points separate score from the next
// tier's threshold. It is 0 once the score is PLATINUM.
func PointsToNextTier(score uint64) uint64 {
	next, ok := NextTier(TierOf(score))
	if !ok {
		return 0
	}
	return thresholds[next] - score
}
