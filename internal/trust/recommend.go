package trust

import "math"

// Components are the named sub-scores behind a trust score. Their sum need
// not equal the score.
type Components struct {
	Payment    uint64 `json:"payment" yaml:"payment"`
	Completion uint64 `json:"completion" yaml:"completion"`
	DeFi       uint64 `json:"defi" yaml:"defi"`
	Social     uint64 `json:"social" yaml:"social"`
}

// Total returns the sum of all four components, saturating at
// math.MaxUint64.
func (c Components) Total() uint64 {
	var total uint64
	for _, v := range [...]uint64{c.Payment, c.Completion, c.DeFi, c.Social} {
		if total > math.MaxUint64-v {
			return math.MaxUint64
		}
		total += v
	}
	return total
}

// Recommendation messages, in rule order.
const (
	RecImprovePayments = "improve payment timeliness"
	RecCompleteCircles = "complete more circles"
	RecLinkDeFi        = "link DeFi history"
	RecAddSocial       = "add social verifications"
	RecBuildHistory    = "build a consistent payment history"
)

type rule struct {
	applies func(Components, uint64) bool
	message string
}

// rules is evaluated top to bottom. UIs that show only the first N messages
// depend on this order.
var rules = []rule{
	{func(c Components, _ uint64) bool { return c.Payment < 800 }, RecImprovePayments},
	{func(c Components, _ uint64) bool { return c.Completion < 600 }, RecCompleteCircles},
	{func(c Components, _ uint64) bool { return c.DeFi < 400 }, RecLinkDeFi},
	{func(c Components, _ uint64) bool { return c.Social < 200 }, RecAddSocial},
	{func(_ Components, score uint64) bool { return score < 250 }, RecBuildHistory},
}

// Recommendations returns one message per matching rule, in rule order.
// Overlapping rules are not deduplicated. The result is never nil.
func Recommendations(c Components, score uint64) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.applies(c, score) {
			out = append(out, r.message)
		}
	}
	return out
}

// Distribution is each component's percentage share of Components.Total.
type Distribution struct {
	Payment    float64 `json:"payment"`
	Completion float64 `json:"completion"`
	DeFi       float64 `json:"defi"`
	Social     float64 `json:"social"`
}

// ScoreDistribution returns each component's share of the total as a
// percentage. A zero total yields all zeros.
func ScoreDistribution(c Components) Distribution {
	// Summed as float64 so components near math.MaxUint64 cannot wrap.
	total := float64(c.Payment) + float64(c.Completion) + float64(c.DeFi) + float64(c.Social)
	if total == 0 {
		return Distribution{}
	}
	share := func(v uint64) float64 { return float64(v) / total * 100 }
	return Distribution{
		Payment:    share(c.Payment),
		Completion: share(c.Completion),
		DeFi:       share(c.DeFi),
		Social:     share(c.Social),
	}
}
