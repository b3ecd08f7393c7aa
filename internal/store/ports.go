package store

import (
	"context"
	"errors"

	"github.com/AnirbanSinha27/Spendly/internal/core"
	"github.com/shopspring/decimal"
)

// ErrNotFound reports an update or delete referencing a nonexistent id. It is
// surfaced to the caller, not treated as fatal.
var ErrNotFound = errors.New("not found")

// Ports for the persistence collaborator.
type (
	TransactionStore interface {
		// ListTransactions returns the full collection, newest date first.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		// CreateTransaction persists a transaction with its already-assigned id.
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// UpdateTransaction replaces every field except the id. Returns
		// ErrNotFound if no transaction carries that id.
		UpdateTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error)
		// DeleteTransaction removes the transaction permanently. Returns
		// ErrNotFound if absent.
		DeleteTransaction(ctx context.Context, id string) error
	}

	BudgetStore interface {
		// ListBudgets returns the full collection, month descending then
		// category ascending.
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		// UpsertBudget creates or replaces the budget keyed on
		// (category, month), enforcing uniqueness of the pair.
		UpsertBudget(ctx context.Context, category string, limit decimal.Decimal, month string) (core.Budget, error)
	}
)
