// Package export renders the ledger spreadsheet downloaded from the finance page.
package export

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"laporrt/backend/internal/analysis"
	"laporrt/backend/internal/idfmt"
	"laporrt/backend/internal/localization"
	"laporrt/backend/internal/models"
)

var ledgerHeader = []string{
	"No", "Tanggal", "Tipe", "Kategori", "Keterangan", "Debit (Masuk)", "Kredit (Keluar)", "Saldo",
}

var cellCleaner = strings.NewReplacer(";", ",", "\r\n", " ", "\n", " ", "\r", " ")

// LedgerFilename is the download name of an export made at now.
func LedgerFilename(now time.Time) string {
	return "laporan-keuangan-" + idfmt.ISODate(now) + ".csv"
}

// LedgerCSV renders the ledger as a semicolon separated sheet: a title, the
// export date, the totals and every entry in date order with the running
// balance. unit is printed in the title, e.g. "RT 01 / RW 05". The output
// depends only on the entries, unit and now. Cells are written unquoted, so
// free text is cleaned of separators instead of escaped.
func LedgerCSV(entries []models.LedgerEntry, unit string, now time.Time, labels *localization.Localizer) ([]byte, error) {
	var buf bytes.Buffer
	totals := analysis.Totals(entries)
	rows := [][]string{
		{"LAPORAN KEUANGAN " + clean(unit)},
		{"Tanggal Export", idfmt.LongDate(now)},
		{},
		{"RINGKASAN KEUANGAN"},
		{"Total Pemasukan", idfmt.Rupiah(totals.Income)},
		{"Total Pengeluaran", idfmt.Rupiah(totals.Expense)},
		{"Saldo Akhir", idfmt.Rupiah(totals.Balance)},
		{},
		{"DETAIL TRANSAKSI"},
		ledgerHeader,
	}

	for i, p := range analysis.RunningBalance(entries) {
		e := p.Entry
		debit, kredit := "-", "-"
		if e.Type == models.EntryIncome {
			debit = idfmt.Rupiah(e.Amount)
		} else {
			kredit = idfmt.Rupiah(e.Amount)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			idfmt.ShortDate(e.Date),
			labels.Label(localization.DefaultLang, "entry_type", string(e.Type)),
			labels.Label(localization.DefaultLang, "finance_category", string(e.Category)),
			clean(e.Description),
			debit,
			kredit,
			idfmt.Rupiah(p.Balance),
		})
	}

	if err := writeRows(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(w io.Writer, rows [][]string) error {
	for _, row := range rows {
		if _, err := io.WriteString(w, strings.Join(row, ";")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// clean keeps a free-text value on one line and inside its cell.
func clean(s string) string {
	return strings.TrimSpace(cellCleaner.Replace(s))
}
