package memory

import (
	"context"
	"sync"

	"drivelog/internal/core"
)

// Store keeps the journal in process memory. It backs tests and the
// DATA_BACKEND=memory mode, where nothing survives a restart.
type Store struct {
	mu       sync.Mutex
	table    core.Table
	persists int
}

func New(seed ...core.DailyRecord) *Store {
	return &Store{table: append(core.Table{}, seed...)}
}

// Load returns a copy of the stored table.
func (s *Store) Load(_ context.Context) (core.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(core.Table{}, s.table...), nil
}

// Persist replaces the stored table with a copy of t.
func (s *Store) Persist(_ context.Context, t core.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = append(core.Table{}, t...)
	s.persists++
	return nil
}

// Persists reports how many times the table was written.
func (s *Store) Persists() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persists
}
