// Package cache provides a SQLite-backed store for computed difficulty
// attributes, keyed by beatmap checksum and mod bitfield, so a batch run
// over an unchanged song library can skip recomputation entirely (spec §8,
// "byte-identical" testable property applies to cache hits too).
package cache

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

// Store wraps a single SQLite connection holding the difficulty-attribute
// cache table.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS difficulty_attrs (
	checksum TEXT NOT NULL,
	mode INTEGER NOT NULL,
	mods INTEGER NOT NULL,
	stars REAL NOT NULL,
	max_combo INTEGER NOT NULL,
	PRIMARY KEY (checksum, mode, mods)
);
`

// Entry is the subset of DifficultyAttributes every ruleset shares, which
// is all the cache keys off of; a cache miss still requires a full
// recalculation for the richer per-ruleset fields.
type Entry struct {
	Stars    float64
	MaxCombo int
}

// Get looks up a cached entry for (checksum, mode, mods).
func (s *Store) Get(checksum string, mode beatmap.Mode, mods difficulty.Mods) (Entry, bool, error) {
	row := s.db.QueryRow(
		`SELECT stars, max_combo FROM difficulty_attrs WHERE checksum = ? AND mode = ? AND mods = ?`,
		checksum, int(mode), uint32(mods),
	)

	var e Entry

	err := row.Scan(&e.Stars, &e.MaxCombo)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}

	if err != nil {
		return Entry{}, false, err
	}

	return e, true, nil
}

// Put inserts or replaces the cached entry for (checksum, mode, mods).
func (s *Store) Put(checksum string, mode beatmap.Mode, mods difficulty.Mods, e Entry) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO difficulty_attrs (checksum, mode, mods, stars, max_combo) VALUES (?, ?, ?, ?, ?)`,
		checksum, int(mode), uint32(mods), e.Stars, e.MaxCombo,
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}

	return nil
}
