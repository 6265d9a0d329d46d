package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/circles/internal/circle"
)

// SortKey names the record field the catalog is ordered by.
type SortKey string

const (
	SortNewest   SortKey = "newest"   // createdAt
	SortOldest   SortKey = "oldest"   // createdAt
	SortAmount   SortKey = "amount"   // params.contributionAmount
	SortDuration SortKey = "duration" // params.cycleDuration
	SortMembers  SortKey = "members"  // memberCount
)

// SortKeys lists every sort key.
var SortKeys = []SortKey{SortNewest, SortOldest, SortAmount, SortDuration, SortMembers}

// ParseSortKey parses a sort key case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q: must be one of %v", s, SortKeys)
}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection parses "asc" or "desc" case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q: must be asc or desc", s)
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortConfig is the active ordering.
type SortConfig struct {
	Key       SortKey   `json:"key" yaml:"key"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// DefaultSort orders newest circles first.
var DefaultSort = SortConfig{Key: SortNewest, Direction: Desc}

// Toggle applies a sort-header click: the same key flips direction, a
// different key always starts descending. The previous direction is not
// remembered per key.
func (s SortConfig) Toggle(key SortKey) SortConfig {
	if key == s.Key {
		return SortConfig{Key: key, Direction: s.Direction.Flip()}
	}
	return SortConfig{Key: key, Direction: Desc}
}

// compare orders a before b by the configured key, ascending. Unknown keys
// compare equal, which leaves input order intact.
func (k SortKey) compare(a, b circle.Record) int {
	switch k {
	case SortNewest, SortOldest:
		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	case SortAmount:
		return a.Params.ContributionAmount.Cmp(b.Params.ContributionAmount)
	case SortDuration:
		return cmp.Compare(a.Params.CycleDuration, b.Params.CycleDuration)
	case SortMembers:
		return cmp.Compare(a.MemberCount, b.MemberCount)
	default:
		return 0
	}
}

// sortRecords sorts records in place. The sort is stable in both directions:
// descending negates the comparison rather than reversing the output, so
// equal keys keep their input order.
func sortRecords(records []circle.Record, cfg SortConfig) {
	slices.SortStableFunc(records, func(a, b circle.Record) int {
		c := cfg.Key.compare(a, b)
		if cfg.Direction == Desc {
			return -c
		}
		return c
	})
}
