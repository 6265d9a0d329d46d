package catalog

import "github.com/roach88/circles/internal/circle"

// PublicCircles returns records whose params.isPublic is set, in input order.
func PublicCircles(records []circle.Record) []circle.Record {
	return selectRecords(records, func(r circle.Record) bool { return r.Params.IsPublic })
}

// ActiveCircles returns records still accepting activity.
func ActiveCircles(records []circle.Record) []circle.Record {
	return selectRecords(records, func(r circle.Record) bool { return r.IsActive })
}

// CompletedCircles returns the complement of ActiveCircles.
func CompletedCircles(records []circle.Record) []circle.Record {
	return selectRecords(records, func(r circle.Record) bool { return !r.IsActive })
}

// ByCreator returns the circles created by address, compared exactly.
func ByCreator(records []circle.Record, address string) []circle.Record {
	return selectRecords(records, func(r circle.Record) bool { return r.Creator == address })
}

// Eligible returns the circles a user at the given tier level and score may
// join: public, active, with an open seat, and with both trust requirements
// met. tierLevel is compared against params.minTrustTier.
func Eligible(records []circle.Record, tierLevel uint8, score uint64) []circle.Record {
	return selectRecords(records, func(r circle.Record) bool {
		return r.Params.IsPublic &&
			r.IsActive &&
			!r.IsFull() &&
			r.Params.MinTrustTier <= tierLevel &&
			r.Params.MinTrustScore <= score
	})
}

// Stats summarizes a record set by phase.
type Stats struct {
	Total     int `json:"total"`
	Public    int `json:"public"`
	Forming   int `json:"forming"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Summarize counts records per phase using the same predicates as the status
// filter. Forming and completed may overlap for a cancelled circle that never
// filled.
func Summarize(records []circle.Record) Stats {
	s := Stats{Total: len(records)}
	for _, r := range records {
		if r.Params.IsPublic {
			s.Public++
		}
		if StatusForming.match(r) {
			s.Forming++
		}
		if StatusActive.match(r) {
			s.Active++
		}
		if StatusCompleted.match(r) {
			s.Completed++
		}
	}
	return s
}

func selectRecords(records []circle.Record, keep func(circle.Record) bool) []circle.Record {
	out := make([]circle.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
