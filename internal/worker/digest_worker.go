package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AnirbanSinha27/Spendly/internal/amqp"
	"github.com/AnirbanSinha27/Spendly/internal/core"
	"github.com/AnirbanSinha27/Spendly/internal/store"
)

// DigestWorker recomputes the monthly roll-up whenever the ledger changes.
// It consumes change events and logs the refreshed digest, flagging budgets
// that crossed into warning or overrun.
type DigestWorker struct {
	txStore     store.TransactionStore
	budgetStore store.BudgetStore
}

func NewDigestWorker(txStore store.TransactionStore, budgetStore store.BudgetStore) *DigestWorker {
	return &DigestWorker{
		txStore:     txStore,
		budgetStore: budgetStore,
	}
}

// HandleLedgerEvent processes a single change event from AMQP.
func (w *DigestWorker) HandleLedgerEvent(msg *amqp.LedgerEventMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.InfoContext(ctx, "Processing ledger event",
		"action", msg.Action,
		"id", msg.ID,
		"month", msg.Month)

	month := msg.Month
	if month == "" {
		// Delete events may not carry a month; refresh the current one.
		month = time.Now().Format("2006-01")
	}

	return w.DigestMonth(ctx, month)
}

// DigestMonth rebuilds the summary and budget statuses for one month.
func (w *DigestWorker) DigestMonth(ctx context.Context, month string) error {
	if err := core.ValidateMonth(month); err != nil {
		return fmt.Errorf("digest month %q: %w", month, err)
	}

	txs, err := w.txStore.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}
	budgets, err := w.budgetStore.ListBudgets(ctx)
	if err != nil {
		return fmt.Errorf("list budgets: %w", err)
	}

	summary := core.Summarize(txs, month)
	statuses := core.EvaluateBudgets(budgets, txs, month)

	slog.InfoContext(ctx, "Monthly digest refreshed",
		"month", month,
		"total_income", summary.TotalIncome,
		"total_expenses", summary.TotalExpenses,
		"net_income", summary.NetIncome,
		"transaction_count", summary.TransactionCount,
		"budgets_evaluated", len(statuses))

	for _, st := range statuses {
		if st.Status == core.StatusGood {
			continue
		}
		slog.WarnContext(ctx, "Budget consumption alert",
			"month", month,
			"category", st.Category,
			"limit", st.Limit,
			"spent", st.Spent,
			"status", st.Status)
	}

	return nil
}

// DigestCurrentMonth refreshes the digest for the month in progress. Run
// periodically to catch events lost while the worker was down.
func (w *DigestWorker) DigestCurrentMonth(ctx context.Context) error {
	return w.DigestMonth(ctx, time.Now().Format("2006-01"))
}
