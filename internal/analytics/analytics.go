// Package analytics aggregates transaction records into period,
// monthly, and per-category totals. Everything here is a pure function
// over an in-memory slice; callers fetch and owner-filter records at the
// store layer first.
//
// Amounts travel as float64 on the wire but are accumulated as decimals
// so that summing many currency values does not drift.
package analytics

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/finwise/finance-api/internal/domain"
)

// Summary holds the income and expense sums for one owner and date
// range, plus their difference.
type Summary struct {
	IncomeTotal  float64 `json:"incomeTotal"`
	ExpenseTotal float64 `json:"expenseTotal"`
	Balance      float64 `json:"balance"`
}

// MonthBucket is one entry of a dense yearly breakdown. Month is labeled
// 1 through 12.
type MonthBucket struct {
	Month        int     `json:"month"`
	IncomeTotal  float64 `json:"incomeTotal"`
	ExpenseTotal float64 `json:"expenseTotal"`
}

// CategoryTotal is the summed amount for one category name.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// inRange is a closed-closed calendar-date interval test: a transaction
// dated exactly on either bound is included.
func inRange(d, start, end civil.Date) bool {
	return !d.Before(start) && !d.After(end)
}

// PeriodTotals partitions the transactions dated within [start, end] by
// type and sums each partition.
func PeriodTotals(txns []*domain.Transaction, start, end civil.Date) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, txn := range txns {
		if !inRange(txn.Date, start, end) {
			continue
		}
		amount := decimal.NewFromFloat(txn.Amount)
		switch txn.Type {
		case domain.TypeIncome:
			income = income.Add(amount)
		case domain.TypeExpense:
			expense = expense.Add(amount)
		}
	}

	incomeF, _ := income.Float64()
	expenseF, _ := expense.Float64()
	balanceF, _ := income.Sub(expense).Float64()
	return Summary{IncomeTotal: incomeF, ExpenseTotal: expenseF, Balance: balanceF}
}

// MonthlyTotals buckets the given year's transactions by calendar month.
// The result always has exactly 12 entries, one per month in order;
// months without transactions report zero totals.
func MonthlyTotals(txns []*domain.Transaction, year int) []MonthBucket {
	income := make([]decimal.Decimal, 12)
	expense := make([]decimal.Decimal, 12)

	for _, txn := range txns {
		if txn.Date.Year != year {
			continue
		}
		idx := int(txn.Date.Month) - 1
		if idx < 0 || idx > 11 {
			continue
		}
		amount := decimal.NewFromFloat(txn.Amount)
		switch txn.Type {
		case domain.TypeIncome:
			income[idx] = income[idx].Add(amount)
		case domain.TypeExpense:
			expense[idx] = expense[idx].Add(amount)
		}
	}

	buckets := make([]MonthBucket, 12)
	for i := 0; i < 12; i++ {
		incomeF, _ := income[i].Float64()
		expenseF, _ := expense[i].Float64()
		buckets[i] = MonthBucket{Month: i + 1, IncomeTotal: incomeF, ExpenseTotal: expenseF}
	}
	return buckets
}

// CategoryTotals filters the transactions to [start, end] and the given
// type, then groups by category name and sums each group. Categories
// with no matching transactions are omitted, not zero-filled. The result
// is ordered by descending amount, then name.
func CategoryTotals(txns []*domain.Transaction, typ domain.TransactionType, start, end civil.Date) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)

	for _, txn := range txns {
		if txn.Type != typ || !inRange(txn.Date, start, end) {
			continue
		}
		sums[txn.Category] = sums[txn.Category].Add(decimal.NewFromFloat(txn.Amount))
	}

	result := make([]CategoryTotal, 0, len(sums))
	for category, sum := range sums {
		amount, _ := sum.Float64()
		result = append(result, CategoryTotal{Category: category, Amount: amount})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Category < result[j].Category
	})
	return result
}
