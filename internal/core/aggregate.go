package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

type (
	// Status classifies budget consumption for one category-month.
	Status string

	// MonthlySummary is the income/expense roll-up for a single month.
	MonthlySummary struct {
		Month            string          `json:"month"`
		TotalIncome      decimal.Decimal `json:"totalIncome"`
		TotalExpenses    decimal.Decimal `json:"totalExpenses"`
		NetIncome        decimal.Decimal `json:"netIncome"`
		TransactionCount int             `json:"transactionCount"`
	}

	// CategorySpend is one slice of the month's expense breakdown.
	CategorySpend struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
		Icon     string          `json:"icon"`
		Color    string          `json:"color"`
	}

	// MonthTotal is one point of the all-months expense series.
	MonthTotal struct {
		Month    string          `json:"month"`
		Expenses decimal.Decimal `json:"expenses"`
	}

	// BudgetStatus is the consumption view of a single budget.
	BudgetStatus struct {
		Budget
		Spent      decimal.Decimal `json:"spent"`
		Percentage float64         `json:"percentage"` // clamped to [0, 100] for display
		Remaining  decimal.Decimal `json:"remaining"`  // negative when over budget
		Status     Status          `json:"status"`
	}

	// BudgetVariance pairs a budgeted limit with actual spend for one budget.
	BudgetVariance struct {
		Category   string          `json:"category"`
		Budgeted   decimal.Decimal `json:"budgeted"`
		Actual     decimal.Decimal `json:"actual"`
		Difference decimal.Decimal `json:"difference"`
		UsagePct   float64         `json:"usagePct"`
		Icon       string          `json:"icon"`
		Color      string          `json:"color"`
	}
)

// Summarize partitions the month's transactions by type and totals them.
// Derivations never mutate their inputs and never fail on well-formed input.
func Summarize(txs []Transaction, month string) MonthlySummary {
	s := MonthlySummary{Month: month}
	for _, t := range txs {
		if !t.InMonth(month) {
			continue
		}
		s.TransactionCount++
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.NetIncome = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// BreakdownByCategory groups the month's expense transactions by category
// name and sums each group. Output order is the insertion order of first
// occurrence so a chart re-renders identically for identical input.
func BreakdownByCategory(txs []Transaction, month string) []CategorySpend {
	index := make(map[string]int)
	var out []CategorySpend
	for _, t := range txs {
		if t.Type != Expense || !t.InMonth(month) {
			continue
		}
		if i, ok := index[t.Category]; ok {
			out[i].Amount = out[i].Amount.Add(t.Amount)
			continue
		}
		cat := LookupByName(t.Category)
		index[t.Category] = len(out)
		out = append(out, CategorySpend{
			Category: t.Category,
			Amount:   t.Amount,
			Icon:     cat.Icon,
			Color:    cat.Color,
		})
	}
	return out
}

// ExpenseSeries totals expenses per month over every month present among
// expense transactions, in ascending month order. Recomputed fresh on each
// call; no state is retained between calls.
func ExpenseSeries(txs []Transaction) []MonthTotal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		key := t.MonthKey()
		totals[key] = totals[key].Add(t.Amount)
	}
	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	// Lexicographic order of YYYY-MM keys is chronological order.
	sort.Strings(months)
	out := make([]MonthTotal, len(months))
	for i, m := range months {
		out[i] = MonthTotal{Month: m, Expenses: totals[m]}
	}
	return out
}

// spentFor sums the month- and category-scoped expense transactions.
func spentFor(txs []Transaction, month, category string) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range txs {
		if t.Type == Expense && t.InMonth(month) && t.Category == category {
			spent = spent.Add(t.Amount)
		}
	}
	return spent
}

// EvaluateBudget computes consumption of a single budget.
//
// Classification uses the unclamped ratio: strictly over 100% is "over",
// strictly over 80% is "warning", anything else is "good" — spending exactly
// the limit lands on "warning". A non-positive limit cannot pass validation;
// if one arrives anyway it reads as fully consumed rather than dividing by
// zero.
func EvaluateBudget(b Budget, txs []Transaction) BudgetStatus {
	spent := spentFor(txs, b.Month, b.Category)
	st := BudgetStatus{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Limit.Sub(spent),
	}
	if !b.Limit.IsPositive() {
		st.Percentage = 100
		st.Status = StatusOver
		return st
	}
	// spent/limit > 1  <=>  spent > limit; compare decimals to keep the
	// thresholds exact.
	switch {
	case spent.GreaterThan(b.Limit):
		st.Status = StatusOver
	case spent.Mul(decimal.NewFromInt(100)).GreaterThan(b.Limit.Mul(decimal.NewFromInt(80))):
		st.Status = StatusWarning
	default:
		st.Status = StatusGood
	}
	pct, _ := spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		pct = 100
	}
	st.Percentage = pct
	return st
}

// EvaluateBudgets evaluates every budget belonging to the given month, in the
// order the budgets appear.
func EvaluateBudgets(budgets []Budget, txs []Transaction, month string) []BudgetStatus {
	var out []BudgetStatus
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		out = append(out, EvaluateBudget(b, txs))
	}
	return out
}

// CompareBudgets pairs budgeted limits against actual spend for the month's
// budgets. A zero budgeted amount yields a usage of 0 instead of an error.
func CompareBudgets(budgets []Budget, txs []Transaction, month string) []BudgetVariance {
	var out []BudgetVariance
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		actual := spentFor(txs, month, b.Category)
		v := BudgetVariance{
			Category:   b.Category,
			Budgeted:   b.Limit,
			Actual:     actual,
			Difference: b.Limit.Sub(actual),
		}
		if b.Limit.IsPositive() {
			v.UsagePct, _ = actual.Div(b.Limit).Mul(decimal.NewFromInt(100)).Float64()
		}
		cat := LookupByName(b.Category)
		v.Icon = cat.Icon
		v.Color = cat.Color
		out = append(out, v)
	}
	return out
}
