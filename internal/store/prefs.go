package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/circles/internal/catalog"
)

// SaveCatalog stores the view preferences for a profile, replacing any
// previous snapshot.
func (s *Store) SaveCatalog(ctx context.Context, profile string, snap catalog.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("save catalog prefs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO catalog_prefs (profile, snapshot, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at
	`, profile, string(data), s.now().Unix())
	if err != nil {
		return fmt.Errorf("save catalog prefs: %w", err)
	}
	return nil
}

// LoadCatalog returns the stored preferences for a profile, or ErrNotFound.
func (s *Store) LoadCatalog(ctx context.Context, profile string) (catalog.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM catalog_prefs WHERE profile = ?`, profile,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Snapshot{}, fmt.Errorf("load catalog prefs %q: %w", profile, ErrNotFound)
	}
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("load catalog prefs %q: %w", profile, err)
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("decode catalog prefs %q: %w", profile, err)
	}
	return snap, nil
}

// DeleteCatalog removes stored preferences. Reports whether a row existed.
func (s *Store) DeleteCatalog(ctx context.Context, profile string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM catalog_prefs WHERE profile = ?`, profile)
	if err != nil {
		return false, fmt.Errorf("delete catalog prefs %q: %w", profile, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete catalog prefs %q: %w", profile, err)
	}
	return n > 0, nil
}

// Profiles lists profile keys with stored preferences, in ascending order.
func (s *Store) Profiles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT profile FROM catalog_prefs ORDER BY profile ASC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
