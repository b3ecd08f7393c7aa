// Package memory holds the canonical in-memory transaction and budget
// collections. The aggregation engine only ever reads snapshots of these;
// every mutation is a single replace-or-append under one lock.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AnirbanSinha27/Spendly/internal/core"
	"github.com/AnirbanSinha27/Spendly/internal/store"
)

type Store struct {
	mu      sync.Mutex
	txs     []core.Transaction
	budgets []core.Budget
	newID   func() string
}

func New() *Store {
	return &Store{newID: uuid.NewString}
}

// Seed replaces both collections wholesale. Used when loading persisted data
// at startup and in tests.
func (s *Store) Seed(txs []core.Transaction, budgets []core.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append([]core.Transaction(nil), txs...)
	s.budgets = append([]core.Budget(nil), budgets...)
}

// ListTransactions returns a copy of the collection sorted by date
// descending, newest entries first within a date.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.txs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// CreateTransaction prepends the record so callers see the newest entry
// first, assigning a fresh id when the caller has not supplied one.
func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = s.newID()
	}
	s.txs = append([]core.Transaction{t}, s.txs...)
	return t, nil
}

// UpdateTransaction replaces every field of the matching record except its
// id. It never creates a record for an unknown id.
func (s *Store) UpdateTransaction(_ context.Context, id string, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id {
			t.ID = id
			s.txs[i] = t
			return t, nil
		}
	}
	return core.Transaction{}, store.ErrNotFound
}

// DeleteTransaction removes the matching record permanently.
func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// ListBudgets returns a copy sorted month descending, category ascending.
func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Budget(nil), s.budgets...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// UpsertBudget replaces the budget in place when (category, month) already
// exists, otherwise appends. At most one budget per pair survives any call.
func (s *Store) UpsertBudget(_ context.Context, category string, limit decimal.Decimal, month string) (core.Budget, error) {
	b := core.Budget{Category: category, Limit: limit, Month: month}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].Category == category && s.budgets[i].Month == month {
			s.budgets[i] = b
			return b, nil
		}
	}
	s.budgets = append(s.budgets, b)
	return b, nil
}
