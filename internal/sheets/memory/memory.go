// Package memory is an in-process TransactionMirror used for development
// and tests when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finvault/internal/core"
	ports "finvault/internal/sheets"
)

var _ ports.TransactionMirror = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	order []string
	rows  map[string][]any
}

func New() *Store {
	return &Store{rows: map[string][]any{}}
}

func (s *Store) Upsert(_ context.Context, t core.Transaction) (string, error) {
	if t.ID == "" {
		return "", fmt.Errorf("mirror transaction: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.rows[t.ID] = ports.Row(t)
	return fmt.Sprintf("mem:%d", s.index(t.ID)+2), nil
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return nil
	}
	delete(s.rows, id)
	i := s.index(id)
	s.order = append(s.order[:i], s.order[i+1:]...)
	return nil
}

// Rows returns the mirrored rows in insertion order.
func (s *Store) Rows() [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]any, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, append([]any(nil), s.rows[id]...))
	}
	return out
}

func (s *Store) index(id string) int {
	for i, v := range s.order {
		if v == id {
			return i
		}
	}
	return -1
}
