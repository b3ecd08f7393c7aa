package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AnirbanSinha27/Spendly/internal/amqp"
	"github.com/AnirbanSinha27/Spendly/internal/core"
	"github.com/AnirbanSinha27/Spendly/internal/store"
)

// EventPublisher notifies interested consumers that the ledger changed.
// *amqp.Client satisfies it; a nil publisher disables events.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, action, id, month string) error
}

// LedgerService owns the transaction and budget collections for the session.
// Reads are handed to the aggregation engine untouched; every mutation is
// validated before it reaches a collection.
type LedgerService struct {
	txStore     store.TransactionStore
	budgetStore store.BudgetStore
	publisher   EventPublisher
}

func NewLedgerService(txStore store.TransactionStore, budgetStore store.BudgetStore, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		txStore:     txStore,
		budgetStore: budgetStore,
		publisher:   publisher,
	}
}

// ListTransactions returns the full transaction collection, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.txStore.ListTransactions(ctx)
}

// ListBudgets returns the full budget collection.
func (s *LedgerService) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.budgetStore.ListBudgets(ctx)
}

// CreateTransaction validates the record, assigns a fresh id and appends it
// to the collection.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.txStore.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.publish(ctx, amqp.ActionCreated, created.ID, created.MonthKey())
	return created, nil
}

// UpdateTransaction replaces every field of the identified record except its
// id. Unknown ids report store.ErrNotFound; an update never creates.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	t.ID = id
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	updated, err := s.txStore.UpdateTransaction(ctx, id, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", id, err)
	}

	s.publish(ctx, amqp.ActionUpdated, updated.ID, updated.MonthKey())
	return updated, nil
}

// DeleteTransaction removes the identified record permanently.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	month := s.monthOf(ctx, id)

	if err := s.txStore.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}

	s.publish(ctx, amqp.ActionDeleted, id, month)
	return nil
}

// SetBudget creates or replaces the budget for (category, month). The pair
// stays unique after every call.
func (s *LedgerService) SetBudget(ctx context.Context, category string, limit decimal.Decimal, month string) (core.Budget, error) {
	b := core.Budget{Category: category, Limit: limit, Month: month}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	saved, err := s.budgetStore.UpsertBudget(ctx, category, limit, month)
	if err != nil {
		return core.Budget{}, fmt.Errorf("set budget %s/%s: %w", category, month, err)
	}

	s.publish(ctx, amqp.ActionBudget, "", month)
	return saved, nil
}

// monthOf resolves the month key of a stored transaction so delete events
// can say which month to recompute. Best effort only.
func (s *LedgerService) monthOf(ctx context.Context, id string) string {
	txs, err := s.txStore.ListTransactions(ctx)
	if err != nil {
		return ""
	}
	for _, t := range txs {
		if t.ID == id {
			return t.MonthKey()
		}
	}
	return ""
}

// publish emits a change event without failing the mutation. The record is
// already committed; a lost event only delays downstream consumers.
func (s *LedgerService) publish(ctx context.Context, action, id, month string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, action, id, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"action", action,
			"id", id,
			"month", month,
			"error", err)
	}
}
