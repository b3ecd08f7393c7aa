package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AnirbanSinha27/Spendly/internal/core"
	"github.com/AnirbanSinha27/Spendly/internal/store"
	"github.com/AnirbanSinha27/Spendly/internal/store/memory"
)

type recordedEvent struct {
	action string
	id     string
	month  string
}

type fakePublisher struct {
	events []recordedEvent
	err    error
}

func (f *fakePublisher) PublishLedgerEvent(_ context.Context, action, id, month string) error {
	f.events = append(f.events, recordedEvent{action: action, id: id, month: month})
	return f.err
}

func newTestService() (*LedgerService, *fakePublisher) {
	st := memory.New()
	pub := &fakePublisher{}
	return NewLedgerService(st, st, pub), pub
}

func TestCreateTransactionAssignsID(t *testing.T) {
	svc, pub := newTestService()

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(42),
		Type:        core.Expense,
		Category:    "Food & Dining",
		Date:        "2024-03-05",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	second, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Description: "Coffee",
		Amount:      decimal.NewFromInt(3),
		Type:        core.Expense,
		Category:    "Food & Dining",
		Date:        "2024-03-06",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if second.ID == created.ID {
		t.Fatal("ids must be unique across creates")
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.events))
	}
	if pub.events[0].action != "created" || pub.events[0].month != "2024-03" {
		t.Fatalf("unexpected first event: %+v", pub.events[0])
	}
}

func TestCreateTransactionRejectsInvalid(t *testing.T) {
	svc, pub := newTestService()

	tests := []struct {
		name    string
		tx      core.Transaction
		wantErr error
	}{
		{
			name: "negative amount",
			tx: core.Transaction{
				Description: "Refund gone wrong",
				Amount:      decimal.NewFromInt(-5),
				Type:        core.Expense,
				Category:    "Other",
				Date:        "2024-03-05",
			},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name: "empty description",
			tx: core.Transaction{
				Amount:   decimal.NewFromInt(5),
				Type:     core.Expense,
				Category: "Other",
				Date:     "2024-03-05",
			},
			wantErr: core.ErrEmptyDescription,
		},
		{
			name: "bad type",
			tx: core.Transaction{
				Description: "Mystery",
				Amount:      decimal.NewFromInt(5),
				Type:        "transfer",
				Category:    "Other",
				Date:        "2024-03-05",
			},
			wantErr: core.ErrInvalidType,
		},
		{
			name: "bad date",
			tx: core.Transaction{
				Description: "Calendar slip",
				Amount:      decimal.NewFromInt(5),
				Type:        core.Expense,
				Category:    "Other",
				Date:        "2024-13-40",
			},
			wantErr: core.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateTransaction(context.Background(), tt.tx); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	txs, err := svc.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("rejected creates must not touch the collection, got %d", len(txs))
	}
	if len(pub.events) != 0 {
		t.Fatalf("rejected creates must not publish events, got %d", len(pub.events))
	}
}

func TestUpdateTransactionPreservesID(t *testing.T) {
	svc, pub := newTestService()

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(42),
		Type:        core.Expense,
		Category:    "Food & Dining",
		Date:        "2024-03-05",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	updated, err := svc.UpdateTransaction(context.Background(), created.ID, core.Transaction{
		ID:          "ignored",
		Description: "Weekly groceries",
		Amount:      decimal.NewFromInt(55),
		Type:        core.Expense,
		Category:    "Food & Dining",
		Date:        "2024-03-07",
	})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changed on update: %s != %s", updated.ID, created.ID)
	}
	if updated.Description != "Weekly groceries" || !updated.Amount.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("unexpected updated record: %+v", updated)
	}

	last := pub.events[len(pub.events)-1]
	if last.action != "updated" || last.id != created.ID {
		t.Fatalf("unexpected event: %+v", last)
	}
}

func TestUpdateTransactionUnknownID(t *testing.T) {
	svc, pub := newTestService()

	_, err := svc.UpdateTransaction(context.Background(), "missing", core.Transaction{
		Description: "Ghost",
		Amount:      decimal.NewFromInt(1),
		Type:        core.Expense,
		Category:    "Other",
		Date:        "2024-03-05",
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}

	txs, _ := svc.ListTransactions(context.Background())
	if len(txs) != 0 {
		t.Fatal("update against an unknown id must never create")
	}
	if len(pub.events) != 0 {
		t.Fatal("failed updates must not publish events")
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc, pub := newTestService()

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(42),
		Type:        core.Expense,
		Category:    "Food & Dining",
		Date:        "2024-03-05",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if err := svc.DeleteTransaction(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if err := svc.DeleteTransaction(context.Background(), created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete should report store.ErrNotFound, got %v", err)
	}

	last := pub.events[len(pub.events)-1]
	if last.action != "deleted" || last.id != created.ID || last.month != "2024-03" {
		t.Fatalf("unexpected delete event: %+v", last)
	}
}

func TestSetBudgetUpserts(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.SetBudget(context.Background(), "Food & Dining", decimal.NewFromInt(100), "2024-03")
	if err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if !first.Limit.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected limit: %s", first.Limit)
	}

	second, err := svc.SetBudget(context.Background(), "Food & Dining", decimal.NewFromInt(150), "2024-03")
	if err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if !second.Limit.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("upsert did not replace the limit: %s", second.Limit)
	}

	budgets, err := svc.ListBudgets(context.Background())
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected one budget after repeated upserts, got %d", len(budgets))
	}
}

func TestSetBudgetRejectsNonPositiveLimit(t *testing.T) {
	svc, _ := newTestService()

	for _, limit := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		if _, err := svc.SetBudget(context.Background(), "Food & Dining", limit, "2024-03"); !errors.Is(err, core.ErrInvalidLimit) {
			t.Fatalf("limit %s: expected core.ErrInvalidLimit, got %v", limit, err)
		}
	}

	budgets, _ := svc.ListBudgets(context.Background())
	if len(budgets) != 0 {
		t.Fatal("rejected budgets must not touch the collection")
	}
}

func TestNilPublisherIsSafe(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st, st, nil)

	if _, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(42),
		Type:        core.Expense,
		Category:    "Food & Dining",
		Date:        "2024-03-05",
	}); err != nil {
		t.Fatalf("CreateTransaction with nil publisher: %v", err)
	}
}

func TestPublisherFailureDoesNotFailMutation(t *testing.T) {
	st := memory.New()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewLedgerService(st, st, pub)

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(42),
		Type:        core.Expense,
		Category:    "Food & Dining",
		Date:        "2024-03-05",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	txs, _ := svc.ListTransactions(context.Background())
	if len(txs) != 1 || txs[0].ID != created.ID {
		t.Fatal("mutation must commit even when publishing fails")
	}
}
