package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/AnirbanSinha27/Spendly/internal/core"
	"github.com/AnirbanSinha27/Spendly/internal/store"
)

type SQLiteRepository struct {
	db *sql.DB
}

var (
	sharedMu   sync.Mutex
	sharedRepo *SQLiteRepository
	sharedPath string
)

// Open returns the process-wide repository handle, creating it lazily on
// first use and reusing it afterwards. Concurrent first callers cannot race
// into two connections.
func Open(dbPath string) (*SQLiteRepository, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedRepo != nil {
		if sharedPath != dbPath {
			return nil, fmt.Errorf("repository already open at %s", sharedPath)
		}
		return sharedRepo, nil
	}
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, err
	}
	sharedRepo = repo
	sharedPath = dbPath
	return repo, nil
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	sharedMu.Lock()
	if sharedRepo == r {
		sharedRepo = nil
		sharedPath = ""
	}
	sharedMu.Unlock()
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListTransactions implements store.TransactionStore, newest date first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount, type, category, date
		FROM transactions
		ORDER BY date DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var amount, typ string
		if err := rows.Scan(&t.ID, &t.Description, &amount, &typ, &t.Category, &t.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount for %s: %w", t.ID, err)
		}
		t.Type = core.TransactionType(typ)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, description, amount, type, category, date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Description, t.Amount.String(), string(t.Type), t.Category, t.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", string(t.Type),
		"amount", t.Amount.String(),
		"date", t.Date)

	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET description = ?, amount = ?, type = ?, category = ?, date = ?
		WHERE id = ?
	`, t.Description, t.Amount.String(), string(t.Type), t.Category, t.Date, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.Transaction{}, store.ErrNotFound
	}
	t.ID = id
	return t, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// ListBudgets implements store.BudgetStore, month descending then category.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, limit_amount, month
		FROM budgets
		ORDER BY month DESC, category ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var limit string
		if err := rows.Scan(&b.Category, &limit, &b.Month); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Limit, err = decimal.NewFromString(limit)
		if err != nil {
			return nil, fmt.Errorf("parse limit for %s/%s: %w", b.Category, b.Month, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpsertBudget relies on the unique (category, month) index so the
// replace-or-create is a single atomic statement even under concurrent
// writers.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, category string, limit decimal.Decimal, month string) (core.Budget, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (category, limit_amount, month)
		VALUES (?, ?, ?)
		ON CONFLICT (category, month) DO UPDATE SET limit_amount = excluded.limit_amount
	`, category, limit.String(), month)
	if err != nil {
		return core.Budget{}, fmt.Errorf("upsert budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget upserted",
		"category", category,
		"limit", limit.String(),
		"month", month)

	return core.Budget{Category: category, Limit: limit, Month: month}, nil
}

// GetTransaction retrieves a single transaction by id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	var t core.Transaction
	var amount, typ string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, description, amount, type, category, date
		FROM transactions WHERE id = ?
	`, id).Scan(&t.ID, &t.Description, &amount, &typ, &t.Category, &t.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount for %s: %w", id, err)
	}
	t.Type = core.TransactionType(typ)
	return t, nil
}
