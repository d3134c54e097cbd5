// Package phrases holds curated translations that bypass the machine
// translator for specific known phrases.
package phrases

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store maps (locale, source phrase) to a curated translation.
// Populated once at process start; read-only after load.
type Store struct {
	// locale -> phrase -> curated translation
	overrides map[string]map[string]string
}

// Load reads every row of the translation_overrides table. No filtering;
// the table is small and queried in full at startup.
func Load(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	query := `
		SELECT locale, phrase, english
		FROM translation_overrides
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load translation overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]map[string]string)
	for rows.Next() {
		var loc, phrase, english string
		if err := rows.Scan(&loc, &phrase, &english); err != nil {
			return nil, fmt.Errorf("failed to scan translation override: %w", err)
		}
		byPhrase, ok := overrides[loc]
		if !ok {
			byPhrase = make(map[string]string)
			overrides[loc] = byPhrase
		}
		byPhrase[phrase] = english
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read translation overrides: %w", err)
	}

	return &Store{overrides: overrides}, nil
}

// NewStore builds a store from an in-memory mapping (locale -> phrase ->
// translation). Used by tests and file-backed deployments.
func NewStore(overrides map[string]map[string]string) *Store {
	if overrides == nil {
		overrides = make(map[string]map[string]string)
	}
	return &Store{overrides: overrides}
}

// Lookup returns the curated translation for the exact phrase at the
// given locale.
func (s *Store) Lookup(loc, phrase string) (string, bool) {
	byPhrase, ok := s.overrides[loc]
	if !ok {
		return "", false
	}
	translation, ok := byPhrase[phrase]
	if !ok || translation == "" {
		return "", false
	}
	return translation, true
}

// Len returns the number of loaded overrides across all locales.
func (s *Store) Len() int {
	n := 0
	for _, byPhrase := range s.overrides {
		n += len(byPhrase)
	}
	return n
}
