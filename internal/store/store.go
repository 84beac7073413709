// Package store holds the current generation of imported transactions.
package store

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/watspent/watspent/internal/model"
)

// Snapshot is an immutable view of one store generation.
type Snapshot struct {
	Generation   uuid.UUID
	Seq          uint64 // increments on every Replace
	Transactions []model.Transaction
}

// Len returns the number of transactions in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Transactions)
}

// Store holds exactly one generation of transactions. Every Replace
// discards the previous generation; the last Replace to run wins.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New returns an empty store.
func New() *Store {
	return &Store{snap: Snapshot{Generation: uuid.New()}}
}

// Replace swaps in a new generation. An empty slice resets the store.
func (s *Store) Replace(txns []model.Transaction) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = Snapshot{
		Generation:   uuid.New(),
		Seq:          s.snap.Seq + 1,
		Transactions: slices.Clone(txns),
	}
	return s.view()
}

// Clear resets the store to empty.
func (s *Store) Clear() Snapshot {
	return s.Replace(nil)
}

// Current returns a copy of the current transactions.
func (s *Store) Current() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snap.Transactions)
}

// Snapshot returns the current generation.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view()
}

// Generation returns the current generation ID.
func (s *Store) Generation() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Generation
}

// view must be called with mu held.
func (s *Store) view() Snapshot {
	v := s.snap
	v.Transactions = slices.Clone(s.snap.Transactions)
	return v
}
