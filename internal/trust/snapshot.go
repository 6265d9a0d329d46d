package trust

// Snapshot is the persisted subset of a Progression: the record without its
// derived tier.
type Snapshot struct {
	Score      uint64         `json:"score"`
	Components Components     `json:"components"`
	History    []HistoryEntry `json:"history"`
}

// Snapshot captures the current record.
func (p *Progression) Snapshot() Snapshot {
	rec := p.Record()
	if rec.History == nil {
		rec.History = []HistoryEntry{}
	}
	return Snapshot{
		Score:      rec.Score,
		Components: rec.Components,
		History:    rec.History,
	}
}

// Restore loads a snapshot, re-deriving the tier.
func (p *Progression) Restore(s Snapshot) {
	p.Load(Record{
		Score:      s.Score,
		Components: s.Components,
		History:    s.History,
	})
}
