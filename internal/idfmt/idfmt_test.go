package idfmt_test

import (
	"testing"
	"time"

	"laporrt/backend/internal/idfmt"

	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	cases := map[int64]string{
		0:        "Rp 0",
		500:      "Rp 500",
		1500000:  "Rp 1.500.000",
		-200000:  "Rp -200.000",
		12345678: "Rp 12.345.678",
	}
	for n, want := range cases {
		assert.Equal(t, want, idfmt.Rupiah(n), n)
	}
}

func TestDates(t *testing.T) {
	d := time.Date(2024, time.December, 10, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "10 Desember 2024", idfmt.LongDate(d))
	assert.Equal(t, "10 Des 2024", idfmt.ShortDate(d))
	assert.Equal(t, "15 Agu 2024", idfmt.ShortDate(time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12-10", idfmt.ISODate(d))
	assert.Equal(t, "Mei", idfmt.ShortMonth(time.May))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, time.December, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Baru saja"},
		{5 * time.Minute, "5 menit yang lalu"},
		{3 * time.Hour, "3 jam yang lalu"},
		{2 * 24 * time.Hour, "2 hari yang lalu"},
		{15 * 24 * time.Hour, "2 minggu yang lalu"},
		{60 * 24 * time.Hour, "11 Okt 2024"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, idfmt.RelativeTime(now.Add(-tc.ago), now), tc.ago)
	}
}
