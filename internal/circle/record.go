package circle

import (
	"fmt"
	"strings"
)

// PayoutMethod is the rule deciding which member receives a cycle's pool.
type PayoutMethod string

const (
	PayoutFixedRotation PayoutMethod = "FIXED_ROTATION"
	PayoutAuction       PayoutMethod = "AUCTION"
	PayoutRandom        PayoutMethod = "RANDOM"
	PayoutHybrid        PayoutMethod = "HYBRID"
)

// PayoutMethods lists every known payout method in declaration order.
var PayoutMethods = []PayoutMethod{
	PayoutFixedRotation,
	PayoutAuction,
	PayoutRandom,
	PayoutHybrid,
}

// Valid reports whether m is a known payout method.
func (m PayoutMethod) Valid() bool {
	for _, known := range PayoutMethods {
		if m == known {
			return true
		}
	}
	return false
}

// ParsePayoutMethod parses a payout method name case-insensitively.
// Hyphens are accepted in place of underscores ("fixed-rotation").
func ParsePayoutMethod(s string) (PayoutMethod, error) {
	m := PayoutMethod(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !m.Valid() {
		return "", fmt.Errorf("unknown payout method %q: must be one of %v", s, PayoutMethods)
	}
	return m, nil
}

// MaxTrustTier is the highest value params.minTrustTier may take.
const MaxTrustTier = 4

// Params is the immutable creation-time configuration of a circle.
type Params struct {
	ContributionAmount Amount       `json:"contributionAmount" yaml:"contributionAmount"`
	MaxMembers         uint32       `json:"maxMembers" yaml:"maxMembers"`
	CycleDuration      uint64       `json:"cycleDuration" yaml:"cycleDuration"` // seconds
	MinTrustTier       uint8        `json:"minTrustTier" yaml:"minTrustTier"`
	MinTrustScore      uint64       `json:"minTrustScore" yaml:"minTrustScore"`
	PayoutMethod       PayoutMethod `json:"payoutMethod" yaml:"payoutMethod"`
	IsPublic           bool         `json:"isPublic" yaml:"isPublic"`
}

// Record is one lending circle as known to the client.
type Record struct {
	Address     string `json:"address" yaml:"address"`
	Creator     string `json:"creator" yaml:"creator"`
	Params      Params `json:"params" yaml:"params"`
	MemberCount uint32 `json:"memberCount" yaml:"memberCount"`
	IsActive    bool   `json:"isActive" yaml:"isActive"`
	CreatedAt   int64  `json:"createdAt" yaml:"createdAt"` // unix seconds

	// Optional display fields. Included in search when present.
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsFull reports whether every seat is taken.
func (r Record) IsFull() bool {
	return r.MemberCount >= r.Params.MaxMembers
}

// OpenSeats returns the number of seats still available.
func (r Record) OpenSeats() uint32 {
	if r.IsFull() {
		return 0
	}
	return r.Params.MaxMembers - r.MemberCount
}

// Clamp returns r with memberCount capped at params.maxMembers.
func (r Record) Clamp() Record {
	if r.MemberCount > r.Params.MaxMembers {
		r.MemberCount = r.Params.MaxMembers
	}
	return r
}
