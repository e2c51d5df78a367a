// Package analysis aggregates ledger entries into the figures shown on the
// finance pages and in the ledger export. All functions are pure and do not
// depend on the order of their input.
package analysis

import (
	"sort"
	"time"

	"laporrt/backend/internal/idfmt"
	"laporrt/backend/internal/models"
)

// Summary holds the fund totals in rupiah.
type Summary struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

// CategoryAmount is the total spent in one expense category.
type CategoryAmount struct {
	Category models.FinanceCategory `json:"category"`
	Amount   int64                  `json:"amount"`
}

// MonthTotal is the income and expense of one calendar month, with its
// short Indonesian chart label.
type MonthTotal struct {
	Month   time.Month `json:"month"`
	Label   string     `json:"label"`
	Income  int64      `json:"income"`
	Expense int64      `json:"expense"`
}

// BalancePoint is a ledger entry with the fund balance after it.
type BalancePoint struct {
	Entry   models.LedgerEntry `json:"entry"`
	Balance int64              `json:"balance"`
}

// signed returns the entry amount as it affects the balance.
func signed(e models.LedgerEntry) int64 {
	if e.Type == models.EntryExpense {
		return -e.Amount
	}
	return e.Amount
}

func Totals(entries []models.LedgerEntry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Type {
		case models.EntryIncome:
			s.Income += e.Amount
		case models.EntryExpense:
			s.Expense += e.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}

// ExpenseByCategory sums expenses per category, largest first. Categories
// without expenses are omitted.
func ExpenseByCategory(entries []models.LedgerEntry) []CategoryAmount {
	sums := make(map[models.FinanceCategory]int64)
	for _, e := range entries {
		if e.Type == models.EntryExpense {
			sums[e.Category] += e.Amount
		}
	}
	out := make([]CategoryAmount, 0, len(sums))
	for c, amount := range sums {
		out = append(out, CategoryAmount{Category: c, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthlyTotals returns twelve buckets, January first, for the entries dated in year.
func MonthlyTotals(entries []models.LedgerEntry, year int) []MonthTotal {
	months := make([]MonthTotal, 12)
	for i := range months {
		months[i].Month = time.Month(i + 1)
		months[i].Label = idfmt.ShortMonth(months[i].Month)
	}
	for _, e := range entries {
		if e.Date.Year() != year {
			continue
		}
		m := &months[e.Date.Month()-1]
		switch e.Type {
		case models.EntryIncome:
			m.Income += e.Amount
		case models.EntryExpense:
			m.Expense += e.Amount
		}
	}
	return months
}

// Chronological returns a copy of entries ordered by date. Entries of the
// same day keep their creation order.
func Chronological(entries []models.LedgerEntry) []models.LedgerEntry {
	sorted := make([]models.LedgerEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

// RunningBalance walks the entries chronologically and records the balance after each.
func RunningBalance(entries []models.LedgerEntry) []BalancePoint {
	points := make([]BalancePoint, 0, len(entries))
	var balance int64
	for _, e := range Chronological(entries) {
		balance += signed(e)
		points = append(points, BalancePoint{Entry: e, Balance: balance})
	}
	return points
}
