package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AnirbanSinha27/Spendly/internal/amqp"
	"github.com/AnirbanSinha27/Spendly/internal/core"
	"github.com/AnirbanSinha27/Spendly/internal/store/memory"
)

func TestDigestMonthRejectsBadMonth(t *testing.T) {
	st := memory.New()
	w := NewDigestWorker(st, st)

	if err := w.DigestMonth(context.Background(), "March 2024"); !errors.Is(err, core.ErrInvalidMonth) {
		t.Fatalf("expected core.ErrInvalidMonth, got %v", err)
	}
}

func TestHandleLedgerEvent(t *testing.T) {
	st := memory.New()
	if _, err := st.CreateTransaction(context.Background(), core.Transaction{
		ID:          "tx-1",
		Description: "Groceries",
		Amount:      decimal.NewFromInt(80),
		Type:        core.Expense,
		Category:    "Food & Dining",
		Date:        "2024-03-05",
	}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	if _, err := st.UpsertBudget(context.Background(), "Food & Dining", decimal.NewFromInt(100), "2024-03"); err != nil {
		t.Fatalf("seed budget: %v", err)
	}

	w := NewDigestWorker(st, st)
	msg := amqp.NewLedgerEventMessage(amqp.ActionCreated, "tx-1", "2024-03")

	if err := w.HandleLedgerEvent(msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}
}

func TestHandleLedgerEventWithoutMonth(t *testing.T) {
	st := memory.New()
	w := NewDigestWorker(st, st)

	// Events missing a month fall back to the current one.
	msg := amqp.NewLedgerEventMessage(amqp.ActionDeleted, "tx-gone", "")
	if err := w.HandleLedgerEvent(msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}
}
