package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/circles/internal/trust"
)

// SaveTrust stores a trust snapshot for address. Stored history for the
// address is replaced wholesale.
func (s *Store) SaveTrust(ctx context.Context, address string, snap trust.Snapshot) (err error) {
	components, err := json.Marshal(snap.Components)
	if err != nil {
		return fmt.Errorf("save trust %q: %w", address, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trust %q: begin: %w", address, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trust_records (address, score, components, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			score = excluded.score,
			components = excluded.components,
			updated_at = excluded.updated_at
	`, address, int64(snap.Score), string(components), s.now().Unix())
	if err != nil {
		return fmt.Errorf("save trust %q: %w", address, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM trust_history WHERE address = ?`, address); err != nil {
		return fmt.Errorf("save trust %q: clear history: %w", address, err)
	}

	for seq, e := range snap.History {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO trust_history (address, seq, timestamp, score, tier, reason)
			VALUES (?, ?, ?, ?, ?, ?)
		`, address, seq, e.Timestamp, int64(e.Score), e.Tier.String(), e.Reason)
		if err != nil {
			return fmt.Errorf("save trust %q: history[%d]: %w", address, seq, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save trust %q: commit: %w", address, err)
	}
	return nil
}

// LoadTrust returns the stored snapshot for address, or ErrNotFound.
// History is returned most recent first.
func (s *Store) LoadTrust(ctx context.Context, address string) (trust.Snapshot, error) {
	var (
		score      int64
		components string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT score, components FROM trust_records WHERE address = ?`, address,
	).Scan(&score, &components)
	if errors.Is(err, sql.ErrNoRows) {
		return trust.Snapshot{}, fmt.Errorf("load trust %q: %w", address, ErrNotFound)
	}
	if err != nil {
		return trust.Snapshot{}, fmt.Errorf("load trust %q: %w", address, err)
	}

	snap := trust.Snapshot{Score: uint64(score), History: []trust.HistoryEntry{}}
	if err := json.Unmarshal([]byte(components), &snap.Components); err != nil {
		return trust.Snapshot{}, fmt.Errorf("decode trust components %q: %w", address, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, score, tier, reason
		FROM trust_history
		WHERE address = ?
		ORDER BY seq ASC
	`, address)
	if err != nil {
		return trust.Snapshot{}, fmt.Errorf("load trust history %q: %w", address, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e        trust.HistoryEntry
			rowScore int64
			tier     string
		)
		if err := rows.Scan(&e.Timestamp, &rowScore, &tier, &e.Reason); err != nil {
			return trust.Snapshot{}, fmt.Errorf("scan trust history %q: %w", address, err)
		}
		e.Score = uint64(rowScore)
		if e.Tier, err = trust.ParseTier(tier); err != nil {
			return trust.Snapshot{}, fmt.Errorf("scan trust history %q: %w", address, err)
		}
		snap.History = append(snap.History, e)
	}
	if err := rows.Err(); err != nil {
		return trust.Snapshot{}, fmt.Errorf("load trust history %q: %w", address, err)
	}

	return snap, nil
}
