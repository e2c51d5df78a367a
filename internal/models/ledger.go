package models

import "time"

type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

type FinanceCategory string

const (
	FinanceIuran         FinanceCategory = "iuran"
	FinanceSumbangan     FinanceCategory = "sumbangan"
	FinanceInfrastruktur FinanceCategory = "infrastruktur"
	FinanceKebersihan    FinanceCategory = "kebersihan"
	FinanceKeamanan      FinanceCategory = "keamanan"
	FinanceAcara         FinanceCategory = "acara"
	FinanceLainnya       FinanceCategory = "lainnya"
)

// FinanceCategories is the closed category set per entry type.
var FinanceCategories = map[EntryType][]FinanceCategory{
	EntryIncome:  {FinanceIuran, FinanceSumbangan, FinanceLainnya},
	EntryExpense: {FinanceInfrastruktur, FinanceKebersihan, FinanceKeamanan, FinanceAcara, FinanceLainnya},
}

// Allows reports whether category c belongs to entry type t.
func (t EntryType) Allows(c FinanceCategory) bool {
	for _, allowed := range FinanceCategories[t] {
		if allowed == c {
			return true
		}
	}
	return false
}

func (t EntryType) Valid() bool {
	return t == EntryIncome || t == EntryExpense
}

// LedgerEntry is one income or expense transaction of the community fund.
// Amount is in rupiah. Date is the calendar day of the transaction at 00:00 UTC.
type LedgerEntry struct {
	ID            string          `json:"id"`
	Type          EntryType       `json:"type"`
	Category      FinanceCategory `json:"category"`
	Amount        int64           `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"createdBy"`
	CreatedByName string          `json:"createdByName"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
