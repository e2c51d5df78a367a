// Package idfmt formats amounts and dates the way Indonesian readers expect
// them on exports and letters: "Rp 1.500.000", "10 Desember 2024", "15 Jan 2024".
package idfmt

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

var longMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var shortMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// Number groups thousands with dots: 1500000 -> "1.500.000".
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Rupiah prefixes Number with the currency: "Rp 1.500.000".
func Rupiah(n int64) string {
	return "Rp " + Number(n)
}

// LongDate renders t as "10 Desember 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), longMonths[t.Month()-1], t.Year())
}

// ShortDate renders t as "15 Jan 2024".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// ShortMonth is the abbreviated month name used on charts.
func ShortMonth(m time.Month) string {
	return shortMonths[m-1]
}

// ISODate renders t as "2006-01-02", the form used in export filenames.
func ISODate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// RelativeTime describes how long ago t was, e.g. "3 jam yang lalu". Past
// four weeks it falls back to ShortDate.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Baru saja"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + " menit yang lalu"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + " jam yang lalu"
	case d < 7*24*time.Hour:
		return strconv.Itoa(int(d/(24*time.Hour))) + " hari yang lalu"
	case d < 30*24*time.Hour:
		return strconv.Itoa(int(d/(7*24*time.Hour))) + " minggu yang lalu"
	}
	return ShortDate(t)
}
