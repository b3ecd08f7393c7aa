package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "1", Description: "groceries", Amount: dec("100"), Type: Expense, Category: "Food & Dining", Date: "2024-03-05"},
		{ID: "2", Description: "refund", Amount: dec("50"), Type: Income, Category: "Other", Date: "2024-03-10"},
		{ID: "3", Description: "bus pass", Amount: dec("20"), Type: Expense, Category: "Transportation", Date: "2024-02-28"},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTransactions(), "2024-03")
	if !s.TotalIncome.Equal(dec("50")) {
		t.Fatalf("totalIncome = %s, want 50", s.TotalIncome)
	}
	if !s.TotalExpenses.Equal(dec("100")) {
		t.Fatalf("totalExpenses = %s, want 100", s.TotalExpenses)
	}
	if !s.NetIncome.Equal(dec("-50")) {
		t.Fatalf("netIncome = %s, want -50", s.NetIncome)
	}
	if s.TransactionCount != 2 {
		t.Fatalf("transactionCount = %d, want 2", s.TransactionCount)
	}
}

func TestSummarizeEmptyMonth(t *testing.T) {
	s := Summarize(sampleTransactions(), "2024-07")
	if !s.NetIncome.IsZero() || s.TransactionCount != 0 {
		t.Fatalf("expected zeroed summary, got %+v", s)
	}
}

func TestSummarizeNetIdentity(t *testing.T) {
	for _, month := range []string{"2024-02", "2024-03", "2024-07"} {
		s := Summarize(sampleTransactions(), month)
		if !s.NetIncome.Equal(s.TotalIncome.Sub(s.TotalExpenses)) {
			t.Fatalf("month %s: net != income - expenses", month)
		}
		if s.TotalIncome.IsNegative() || s.TotalExpenses.IsNegative() {
			t.Fatalf("month %s: negative totals", month)
		}
	}
}

func TestSummarizeDecimalAccumulation(t *testing.T) {
	// 0.1 summed ten times must be exactly 1, not 0.9999999999999999.
	var txs []Transaction
	for i := 0; i < 10; i++ {
		txs = append(txs, Transaction{Amount: dec("0.1"), Type: Expense, Date: "2024-03-01"})
	}
	s := Summarize(txs, "2024-03")
	if !s.TotalExpenses.Equal(dec("1")) {
		t.Fatalf("totalExpenses = %s, want exactly 1", s.TotalExpenses)
	}
}

func TestBreakdownByCategory(t *testing.T) {
	txs := []Transaction{
		{Amount: dec("30"), Type: Expense, Category: "Travel", Date: "2024-03-01"},
		{Amount: dec("10"), Type: Expense, Category: "Food & Dining", Date: "2024-03-02"},
		{Amount: dec("5"), Type: Expense, Category: "Travel", Date: "2024-03-03"},
		{Amount: dec("99"), Type: Income, Category: "Travel", Date: "2024-03-04"},
		{Amount: dec("7"), Type: Expense, Category: "Mystery Stuff", Date: "2024-03-05"},
	}
	got := BreakdownByCategory(txs, "2024-03")
	if len(got) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(got))
	}
	// Insertion order of first occurrence, not sorted by amount.
	if got[0].Category != "Travel" || got[1].Category != "Food & Dining" || got[2].Category != "Mystery Stuff" {
		t.Fatalf("unexpected order: %v, %v, %v", got[0].Category, got[1].Category, got[2].Category)
	}
	if !got[0].Amount.Equal(dec("35")) {
		t.Fatalf("Travel amount = %s, want 35", got[0].Amount)
	}
	// Unknown category styles fall back to Other.
	other := LookupByName("Other")
	if got[2].Icon != other.Icon || got[2].Color != other.Color {
		t.Fatalf("unknown category did not fall back to Other styling")
	}

	// The groups must sum to the month's total expenses.
	sum := decimal.Zero
	for _, g := range got {
		sum = sum.Add(g.Amount)
	}
	if s := Summarize(txs, "2024-03"); !sum.Equal(s.TotalExpenses) {
		t.Fatalf("breakdown sum %s != totalExpenses %s", sum, s.TotalExpenses)
	}
}

func TestExpenseSeries(t *testing.T) {
	txs := []Transaction{
		{Amount: dec("10"), Type: Expense, Date: "2024-03-01"},
		{Amount: dec("5"), Type: Expense, Date: "2024-01-15"},
		{Amount: dec("2"), Type: Expense, Date: "2024-03-20"},
		{Amount: dec("100"), Type: Income, Date: "2023-12-31"},
	}
	got := ExpenseSeries(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 months, got %d", len(got))
	}
	if got[0].Month != "2024-01" || got[1].Month != "2024-03" {
		t.Fatalf("months not ascending: %s, %s", got[0].Month, got[1].Month)
	}
	if !got[1].Expenses.Equal(dec("12")) {
		t.Fatalf("2024-03 total = %s, want 12", got[1].Expenses)
	}
}

func TestEvaluateBudget(t *testing.T) {
	budget := func(limit string) Budget {
		return Budget{Category: "Food & Dining", Limit: dec(limit), Month: "2024-03"}
	}
	spend := func(amount string) []Transaction {
		return []Transaction{{Amount: dec(amount), Type: Expense, Category: "Food & Dining", Date: "2024-03-05"}}
	}

	cases := []struct {
		name   string
		limit  string
		spent  string
		pct    float64
		status Status
	}{
		{"well under", "100", "40", 40, StatusGood},
		{"at 80 percent", "100", "80", 80, StatusGood},
		{"just over 80", "100", "80.01", 80.01, StatusWarning},
		{"over limit", "100", "150", 100, StatusOver},
	}
	for _, tc := range cases {
		st := EvaluateBudget(budget(tc.limit), spend(tc.spent))
		if st.Status != tc.status {
			t.Fatalf("%s: status = %s, want %s", tc.name, st.Status, tc.status)
		}
		if st.Percentage != tc.pct {
			t.Fatalf("%s: percentage = %v, want %v", tc.name, st.Percentage, tc.pct)
		}
		if st.Percentage < 0 || st.Percentage > 100 {
			t.Fatalf("%s: percentage %v out of [0,100]", tc.name, st.Percentage)
		}
		if st.Remaining.IsNegative() != (st.Status == StatusOver) {
			t.Fatalf("%s: remaining %s sign disagrees with status %s", tc.name, st.Remaining, st.Status)
		}
	}
}

func TestEvaluateBudgetSpentEqualsLimit(t *testing.T) {
	// Spending exactly the limit is 100%, which is not strictly over 100,
	// so it classifies as warning, not over.
	b := Budget{Category: "Food & Dining", Limit: dec("100"), Month: "2024-03"}
	st := EvaluateBudget(b, sampleTransactions())
	if !st.Spent.Equal(dec("100")) {
		t.Fatalf("spent = %s, want 100", st.Spent)
	}
	if st.Percentage != 100 {
		t.Fatalf("percentage = %v, want 100", st.Percentage)
	}
	if !st.Remaining.IsZero() {
		t.Fatalf("remaining = %s, want 0", st.Remaining)
	}
	if st.Status != StatusWarning {
		t.Fatalf("status = %s, want %s", st.Status, StatusWarning)
	}
}

func TestEvaluateBudgetZeroLimit(t *testing.T) {
	// A zero limit is rejected by validation; if one slips through it reads
	// as fully consumed instead of dividing by zero.
	st := EvaluateBudget(Budget{Category: "Travel", Month: "2024-03"}, nil)
	if st.Status != StatusOver || st.Percentage != 100 {
		t.Fatalf("zero limit: status=%s pct=%v, want over/100", st.Status, st.Percentage)
	}
}

func TestEvaluateBudgetsScopesToMonth(t *testing.T) {
	budgets := []Budget{
		{Category: "Travel", Limit: dec("50"), Month: "2024-02"},
		{Category: "Food & Dining", Limit: dec("200"), Month: "2024-03"},
	}
	got := EvaluateBudgets(budgets, sampleTransactions(), "2024-03")
	if len(got) != 1 || got[0].Category != "Food & Dining" {
		t.Fatalf("expected only the 2024-03 budget, got %+v", got)
	}
}

func TestCompareBudgets(t *testing.T) {
	budgets := []Budget{{Category: "Food & Dining", Limit: dec("150"), Month: "2024-03"}}
	got := CompareBudgets(budgets, sampleTransactions(), "2024-03")
	if len(got) != 1 {
		t.Fatalf("expected 1 variance, got %d", len(got))
	}
	v := got[0]
	if !v.Budgeted.Equal(dec("150")) || !v.Actual.Equal(dec("100")) {
		t.Fatalf("budgeted/actual = %s/%s, want 150/100", v.Budgeted, v.Actual)
	}
	if !v.Difference.Equal(dec("50")) {
		t.Fatalf("difference = %s, want 50", v.Difference)
	}
	if v.UsagePct < 66.6 || v.UsagePct > 66.7 {
		t.Fatalf("usagePct = %v, want ~66.67", v.UsagePct)
	}
}

func TestCompareBudgetsZeroBudgeted(t *testing.T) {
	got := CompareBudgets([]Budget{{Category: "Travel", Month: "2024-03"}}, nil, "2024-03")
	if len(got) != 1 || got[0].UsagePct != 0 {
		t.Fatalf("zero budget must yield usage 0, got %+v", got)
	}
}
