package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/aifuge/freightquote/internal/refdata"
)

// Memory is an in-memory source preloaded with tables, used by tests and as
// a harness for wiring experiments.
type Memory struct {
	mu     sync.RWMutex
	tables *refdata.Tables
}

func NewMemory(tables *refdata.Tables) *Memory {
	return &Memory{tables: tables}
}

// SetTables replaces the snapshot the source will serve next.
func (m *Memory) SetTables(tables *refdata.Tables) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = tables
}

func (m *Memory) LoadTables(ctx context.Context) (*refdata.Tables, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tables == nil {
		return nil, fmt.Errorf("%w: memory source has no tables", refdata.ErrStructural)
	}
	// Shallow copy so a reload installs a distinct snapshot pointer.
	t := *m.tables
	return &t, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
