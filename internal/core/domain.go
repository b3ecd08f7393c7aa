package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	// TransactionType is the closed income/expense tag every aggregation
	// branches on.
	TransactionType string

	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Date        string          `json:"date"` // YYYY-MM-DD
	}

	Budget struct {
		Category string          `json:"category"`
		Limit    decimal.Decimal `json:"limit"`
		Month    string          `json:"month"` // YYYY-MM
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrDescriptionLong  = errors.New("description too long (max 200 characters)")
	ErrInvalidLimit     = errors.New("limit must be positive")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense:
		return true
	}
	return false
}

// MonthKey returns the YYYY-MM bucketing key of the transaction date.
func (t Transaction) MonthKey() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

// InMonth reports whether the transaction belongs to the given YYYY-MM month.
// Membership is a prefix match on the canonical date string.
func (t Transaction) InMonth(month string) bool {
	return len(month) == 7 && strings.HasPrefix(t.Date, month)
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionLong
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if !b.Limit.IsPositive() {
		return ErrInvalidLimit
	}
	if _, err := time.Parse("2006-01", b.Month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

// ValidateMonth checks that month is a well-formed YYYY-MM key.
func ValidateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

// Key returns the uniqueness key of the budget: one budget per category per month.
func (b Budget) Key() (category, month string) {
	return b.Category, b.Month
}

// FilterByDescription returns the transactions whose description contains the
// query, case-insensitively. An empty query matches everything.
func FilterByDescription(txs []Transaction, query string) []Transaction {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return txs
	}
	var out []Transaction
	for _, t := range txs {
		if strings.Contains(strings.ToLower(t.Description), query) {
			out = append(out, t)
		}
	}
	return out
}
