package trust

import "slices"

// DefaultHistoryCap bounds stored history when Options.HistoryCap is unset.
const DefaultHistoryCap = 100

// Record is one user's trust state.
type Record struct {
	Score      uint64         `json:"score" yaml:"score"`
	Tier       Tier           `json:"tier" yaml:"tier"`
	Components Components     `json:"components" yaml:"components"`
	History    []HistoryEntry `json:"history,omitempty" yaml:"history,omitempty"`
}

// Options configures a Progression.
type Options struct {
	// HistoryCap is the maximum number of samples kept. The oldest samples
	// are discarded silently once it is reached.
	HistoryCap int

	// Clock stamps samples recorded with Update. Defaults to SystemClock.
	Clock Clock
}

// Progression owns a user's trust record. Every getter recomputes from the
// current record.
//
// Progression is not safe for concurrent use.
type Progression struct {
	rec        Record
	historyCap int
	clock      Clock
}

// New creates a Progression holding a zero-score NEWCOMER record.
func New(opts Options) *Progression {
	p := &Progression{
		historyCap: opts.HistoryCap,
		clock:      opts.Clock,
	}
	if p.historyCap <= 0 {
		p.historyCap = DefaultHistoryCap
	}
	if p.clock == nil {
		p.clock = SystemClock{}
	}
	p.Reset()
	return p
}

// Reset returns to the initial zero-score record with empty history.
func (p *Progression) Reset() {
	p.rec = Record{Tier: Newcomer}
}

// Load replaces the whole record, last writer wins. The tier is re-derived
// from the score and history is truncated to the cap.
func (p *Progression) Load(rec Record) {
	p.rec = Record{
		Score:      rec.Score,
		Tier:       TierOf(rec.Score),
		Components: rec.Components,
		History:    truncate(slices.Clone(rec.History), p.historyCap),
	}
}

// Apply replaces score and components and prepends entry to history.
// entry.Tier is taken as given; use Update to derive it.
func (p *Progression) Apply(score uint64, components Components, entry HistoryEntry) {
	p.rec.Score = score
	p.rec.Tier = TierOf(score)
	p.rec.Components = components
	p.rec.History = prepend(p.rec.History, entry, p.historyCap)
}

// Update is Apply with a history entry built from the clock and the new
// score.
func (p *Progression) Update(score uint64, components Components, reason string) HistoryEntry {
	entry := HistoryEntry{
		Timestamp: p.clock.Now().Unix(),
		Score:     score,
		Tier:      TierOf(score),
		Reason:    reason,
	}
	p.Apply(score, components, entry)
	return entry
}

// Record returns a copy of the current record.
func (p *Progression) Record() Record {
	out := p.rec
	out.History = slices.Clone(p.rec.History)
	return out
}

// Score returns the current score.
func (p *Progression) Score() uint64 { return p.rec.Score }

// Tier returns the tier derived from the current score.
func (p *Progression) Tier() Tier { return p.rec.Tier }

// Components returns the current component breakdown.
func (p *Progression) Components() Components { return p.rec.Components }

// History returns a copy of stored samples, most recent first.
func (p *Progression) History() []HistoryEntry { return slices.Clone(p.rec.History) }

// HistoryCap returns the configured cap.
func (p *Progression) HistoryCap() int { return p.historyCap }

// OverallProgress is OverallProgress of the current score.
func (p *Progression) OverallProgress() float64 { return OverallProgress(p.rec.Score) }

// TierProgress is TierProgress of the current score within its tier.
func (p *Progression) TierProgress() float64 { return TierProgress(p.rec.Score, p.rec.Tier) }

// NextTier returns the tier above the current one.
func (p *Progression) NextTier() (Tier, bool) { return NextTier(p.rec.Tier) }

// PointsToNextTier returns the points still needed for the next tier.
func (p *Progression) PointsToNextTier() uint64 { return PointsToNextTier(p.rec.Score) }

// Trend is TrendOf the stored history.
func (p *Progression) Trend() Trend { return TrendOf(p.rec.History) }

// ScoreChange is ScoreChange of the stored history.
func (p *Progression) ScoreChange() int64 { return ScoreChange(p.rec.History) }

// Recommendations evaluates the rule table against the current record.
func (p *Progression) Recommendations() []string {
	return Recommendations(p.rec.Components, p.rec.Score)
}

// Distribution is ScoreDistribution of the current components.
func (p *Progression) Distribution() Distribution { return ScoreDistribution(p.rec.Components) }
