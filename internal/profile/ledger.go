// Package profile holds the connected user's identity and activity totals.
// The catalog and trust packages read the address and tier from it but do not
// own it.
package profile

import (
	"github.com/roach88/circles/internal/circle"
	"github.com/roach88/circles/internal/trust"
)

// Step is an onboarding milestone.
type Step string

const (
	StepConnectWallet  Step = "connect_wallet"
	StepVerifyIdentity Step = "verify_identity"
	StepLinkDeFi       Step = "link_defi"
	StepJoinCircle     Step = "join_circle"
)

// Steps lists the onboarding milestones in display order.
var Steps = []Step{StepConnectWallet, StepVerifyIdentity, StepLinkDeFi, StepJoinCircle}

// Totals are cumulative activity counters.
type Totals struct {
	CirclesJoined    int           `json:"circlesJoined"`
	CirclesCompleted int           `json:"circlesCompleted"`
	Contributed      circle.Amount `json:"contributed"`
}

// Ledger is the owned profile state. Not safe for concurrent use.
type Ledger struct {
	address string
	tier    trust.Tier
	steps   map[Step]bool
	totals  Totals
}

// New creates an empty ledger.
func New() *Ledger {
	l := &Ledger{}
	l.Reset()
	return l
}

// Reset clears the ledger to its initial state, as on wallet disconnect.
func (l *Ledger) Reset() {
	l.address = ""
	l.tier = trust.Newcomer
	l.steps = make(map[Step]bool, len(Steps))
	l.totals = Totals{}
}

// SetAddress records the connected wallet address and completes the
// connect-wallet step. An empty address disconnects.
func (l *Ledger) SetAddress(address string) {
	l.address = address
	l.steps[StepConnectWallet] = address != ""
}

// Address returns the connected wallet address, or "" if none.
func (l *Ledger) Address() string { return l.address }

// SetTier mirrors the tier computed by the trust progression.
func (l *Ledger) SetTier(t trust.Tier) { l.tier = t }

// Tier returns the mirrored trust tier.
func (l *Ledger) Tier() trust.Tier { return l.tier }

// CompleteStep marks an onboarding step done. Unknown steps are ignored.
func (l *Ledger) CompleteStep(s Step) {
	for _, known := range Steps {
		if s == known {
			l.steps[s] = true
			return
		}
	}
}

// StepCompleted reports whether s is done.
func (l *Ledger) StepCompleted(s Step) bool { return l.steps[s] }

// OnboardingProgress returns the percentage of onboarding steps completed.
func (l *Ledger) OnboardingProgress() float64 {
	done := 0
	for _, s := range Steps {
		if l.steps[s] {
			done++
		}
	}
	return float64(done) / float64(len(Steps)) * 100
}

// RecordJoin counts a circle join and completes the join-circle step.
func (l *Ledger) RecordJoin() {
	l.totals.CirclesJoined++
	l.steps[StepJoinCircle] = true
}

// RecordCompletion counts a completed circle.
func (l *Ledger) RecordCompletion() {
	l.totals.CirclesCompleted++
}

// RecordContribution adds to the contributed total.
func (l *Ledger) RecordContribution(amount circle.Amount) {
	l.totals.Contributed = l.totals.Contributed.Add(amount)
}

// Totals returns the activity counters.
func (l *Ledger) Totals() Totals { return l.totals }
