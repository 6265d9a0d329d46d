package catalog

import (
	"fmt"
	"strings"

	"github.com/roach88/circles/internal/circle"
)

// Status narrows the catalog by lifecycle phase.
type Status string

const (
	StatusAll       Status = "all"
	StatusForming   Status = "forming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Statuses lists every status filter value.
var Statuses = []Status{StatusAll, StatusForming, StatusActive, StatusCompleted}

// ParseStatus parses a status name case-insensitively. The empty string is
// StatusAll.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StatusAll, nil
	}
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q: must be one of %v", s, Statuses)
}

// Filters holds the narrowing criteria. A nil field (or empty Status) places
// no constraint.
//
// MinTrustTier is a ceiling: records whose params.minTrustTier is at most the
// configured value are kept.
type Filters struct {
	MinAmount    *circle.Amount       `json:"minAmount,omitempty" yaml:"minAmount,omitempty"`
	MaxAmount    *circle.Amount       `json:"maxAmount,omitempty" yaml:"maxAmount,omitempty"`
	MinDuration  *uint64              `json:"minDuration,omitempty" yaml:"minDuration,omitempty"`
	MaxDuration  *uint64              `json:"maxDuration,omitempty" yaml:"maxDuration,omitempty"`
	MinTrustTier *uint8               `json:"minTrustTier,omitempty" yaml:"minTrustTier,omitempty"`
	Status       Status               `json:"status,omitempty" yaml:"status,omitempty"`
	PayoutMethod *circle.PayoutMethod `json:"payoutMethod,omitempty" yaml:"payoutMethod,omitempty"`
	IsPublic     *bool                `json:"isPublic,omitempty" yaml:"isPublic,omitempty"`
}

// IsZero reports whether no field constrains the catalog.
func (f Filters) IsZero() bool {
	return f.MinAmount == nil && f.MaxAmount == nil &&
		f.MinDuration == nil && f.MaxDuration == nil &&
		f.MinTrustTier == nil &&
		(f.Status == "" || f.Status == StatusAll) &&
		f.PayoutMethod == nil && f.IsPublic == nil
}

// Merge returns f with every non-nil field of patch laid over it.
// A non-empty patch.Status replaces the current status.
//
// Pointers are copied so later changes to patch do not leak into the result.
func (f Filters) Merge(patch Filters) Filters {
	var out Filters
	out.overlay(f)
	out.overlay(patch)
	return out
}

func (f *Filters) overlay(src Filters) {
	if src.MinAmount != nil {
		f.MinAmount = ptr(*src.MinAmount)
	}
	if src.MaxAmount != nil {
		f.MaxAmount = ptr(*src.MaxAmount)
	}
	if src.MinDuration != nil {
		f.MinDuration = ptr(*src.MinDuration)
	}
	if src.MaxDuration != nil {
		f.MaxDuration = ptr(*src.MaxDuration)
	}
	if src.MinTrustTier != nil {
		f.MinTrustTier = ptr(*src.MinTrustTier)
	}
	if src.Status != "" {
		f.Status = src.Status
	}
	if src.PayoutMethod != nil {
		f.PayoutMethod = ptr(*src.PayoutMethod)
	}
	if src.IsPublic != nil {
		f.IsPublic = ptr(*src.IsPublic)
	}
}

// Match reports whether r satisfies every present filter field.
func (f Filters) Match(r circle.Record) bool {
	amount := r.Params.ContributionAmount
	if f.MinAmount != nil && amount.Cmp(*f.MinAmount) < 0 {
		return false
	}
	if f.MaxAmount != nil && amount.Cmp(*f.MaxAmount) > 0 {
		return false
	}
	if f.MinDuration != nil && r.Params.CycleDuration < *f.MinDuration {
		return false
	}
	if f.MaxDuration != nil && r.Params.CycleDuration > *f.MaxDuration {
		return false
	}
	if f.MinTrustTier != nil && r.Params.MinTrustTier > *f.MinTrustTier {
		return false
	}
	if !f.Status.match(r) {
		return false
	}
	if f.PayoutMethod != nil && r.Params.PayoutMethod != *f.PayoutMethod {
		return false
	}
	if f.IsPublic != nil && r.Params.IsPublic != *f.IsPublic {
		return false
	}
	return true
}

func (s Status) match(r circle.Record) bool {
	switch s {
	case StatusForming:
		return r.MemberCount < r.Params.MaxMembers
	case StatusActive:
		return r.IsActive && r.MemberCount == r.Params.MaxMembers
	case StatusCompleted:
		return !r.IsActive
	default:
		// StatusAll, empty, and unknown values place no constraint.
		return true
	}
}

func ptr[T any](v T) *T {
	return &v
}
