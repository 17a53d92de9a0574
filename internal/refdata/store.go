package refdata

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Source supplies reference-data snapshots. Implementations live in
// internal/storage (CSV directory, GORM-backed databases, pgx pool, memory).
type Source interface {
	// LoadTables reads a complete snapshot. It must return an error
	// wrapping ErrStructural when the data cannot possibly serve quotes.
	LoadTables(ctx context.Context) (*Tables, error)

	// Ping reports whether the source is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources (no-op for CSV and memory).
	Close() error
}

// Store holds the current reference-data snapshot. Load happens once at
// startup; Reload builds a fresh snapshot and swaps the pointer atomically,
// so in-flight quotes keep the snapshot they started with.
type Store struct {
	src    Source
	tables atomic.Pointer[Tables]
}

func NewStore(src Source) *Store {
	return &Store{src: src}
}

// Load fetches, validates and installs a snapshot. The previous snapshot
// stays in place when the load fails.
func (s *Store) Load(ctx context.Context) error {
	t, err := s.src.LoadTables(ctx)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: source returned no tables", ErrStructural)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	s.tables.Store(t)
	return nil
}

// Reload is Load under a name that reads better at call sites that refresh.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Snapshot returns the current tables, or nil before the first Load.
func (s *Store) Snapshot() *Tables {
	return s.tables.Load()
}
