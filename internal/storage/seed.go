package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"laporrt/backend/internal/models"
)

// PasswordHasher turns a plain credential into its stored form.
type PasswordHasher func(plain string) (string, error)

type demoAccount struct {
	id, name, email, password, phone, address string
	role                                      models.Role
}

var demoAccounts = []demoAccount{
	{"USR-001", "Budi Santoso", "ketua@rtrw.com", "admin123", "081234567890", "RT 01/RW 05", models.RoleKetuaRT},
	{"USR-002", "Siti Rahayu", "bendahara@rtrw.com", "admin123", "081234567891", "RT 01/RW 05", models.RoleAdmin},
	{"USR-003", "Ahmad Wijaya", "warga@rtrw.com", "warga123", "081234567892", "RT 01/RW 05, No. 15", models.RoleWarga},
}

// Seed fills empty collections with the demo community: three accounts,
// sample reports, ledger entries and document requests. Collections that
// already hold records are left untouched.
func Seed(ctx context.Context, s Storage, now time.Time, hash PasswordHasher) error {
	existing, err := s.ListAccounts(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, d := range demoAccounts {
			password, err := hash(d.password)
			if err != nil {
				return fmt.Errorf("hash demo password: %w", err)
			}
			account := models.Account{
				ID:        d.id,
				Name:      d.name,
				Email:     d.email,
				Password:  password,
				Phone:     d.phone,
				Address:   d.address,
				Role:      d.role,
				CreatedAt: now,
			}
			if err := s.CreateAccount(ctx, &account); err != nil {
				return fmt.Errorf("seed account %s: %w", d.email, err)
			}
		}
		log.Printf("INFO: Seeded %d demo accounts", len(demoAccounts))
	}

	reports, err := s.ListReports(ctx)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		// Oldest first; both stores list newest first.
		for _, r := range demoReports(now) {
			if err := s.CreateReport(ctx, &r); err != nil {
				return fmt.Errorf("seed report %s: %w", r.ID, err)
			}
		}
	}

	entries, err := s.ListLedgerEntries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		for _, e := range demoLedger(now) {
			if err := s.CreateLedgerEntry(ctx, &e); err != nil {
				return fmt.Errorf("seed ledger entry %s: %w", e.ID, err)
			}
		}
	}

	docs, err := s.ListDocuments(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		for _, d := range demoDocuments(now) {
			if err := s.CreateDocument(ctx, &d); err != nil {
				return fmt.Errorf("seed document %s: %w", d.ID, err)
			}
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func demoReports(now time.Time) []models.IncidentReport {
	day := 24 * time.Hour
	return []models.IncidentReport{
		{
			ID:          "RPT-002",
			Title:       "Lampu Jalan Mati",
			Category:    models.CategoryInfrastruktur,
			Description: "Lampu jalan di depan pos ronda sudah mati sejak 1 minggu yang lalu.",
			Location:    "Depan Pos Ronda, RT 01/RW 05",
			Status:      models.ReportSelesai,
			IsAnonymous: true,
			UserName:    models.AnonymousName,
			Images:      []string{},
			Responses: []models.Response{{
				ID:            "1",
				Message:       "Lampu sudah diperbaiki oleh petugas PLN. Terima kasih atas laporannya.",
				ResponderID:   "USR-002",
				ResponderName: "Siti Rahayu",
				ResponderRole: models.RoleAdmin,
				CreatedAt:     now.Add(-day / 2),
			}},
			CreatedAt: now.Add(-7 * day),
			UpdatedAt: now.Add(-day / 2),
		},
		{
			ID:          "RPT-001",
			Title:       "Jalan Berlubang di Gang Mawar",
			Category:    models.CategoryInfrastruktur,
			Description: "Terdapat lubang besar di jalan gang mawar yang membahayakan pengendara motor, terutama saat malam hari.",
			Location:    "Gang Mawar, RT 01/RW 05",
			Status:      models.ReportProses,
			UserID:      ptr("USR-003"),
			UserName:    "Ahmad Wijaya",
			Images:      []string{},
			Responses: []models.Response{{
				ID:            "1",
				Message:       "Terima kasih atas laporannya. Kami akan segera menindaklanjuti dengan mengecek lokasi.",
				ResponderID:   "USR-001",
				ResponderName: "Budi Santoso",
				ResponderRole: models.RoleKetuaRT,
				CreatedAt:     now.Add(-day),
			}},
			CreatedAt: now.Add(-2 * day),
			UpdatedAt: now.Add(-day),
		},
		{
			ID:          "RPT-003",
			Title:       "Sampah Menumpuk",
			Category:    models.CategoryKebersihan,
			Description: "Sampah di TPS sudah menumpuk dan berbau tidak sedap. Mohon segera diangkut.",
			Location:    "TPS RT 01/RW 05",
			Status:      models.ReportBaru,
			UserID:      ptr("USR-003"),
			UserName:    "Ahmad Wijaya",
			Images:      []string{},
			Responses:   []models.Response{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func demoLedger(now time.Time) []models.LedgerEntry {
	y, m, _ := now.Date()
	date := func(monthOffset, day int) time.Time {
		return time.Date(y, m+time.Month(monthOffset), day, 0, 0, 0, 0, time.UTC)
	}
	entry := func(n int, t models.EntryType, c models.FinanceCategory, amount int64, desc string, on time.Time) models.LedgerEntry {
		return models.LedgerEntry{
			ID:            fmt.Sprintf("FIN-%03d", n),
			Type:          t,
			Category:      c,
			Amount:        amount,
			Description:   desc,
			Date:          on,
			CreatedBy:     "USR-002",
			CreatedByName: "Siti Rahayu",
			CreatedAt:     now.Add(time.Duration(n-9) * time.Minute),
		}
	}
	return []models.LedgerEntry{
		entry(1, models.EntryIncome, models.FinanceIuran, 500000, "Iuran bulanan RT", date(-1, 5)),
		entry(2, models.EntryIncome, models.FinanceIuran, 520000, "Iuran bulanan RT", date(-2, 5)),
		entry(3, models.EntryIncome, models.FinanceSumbangan, 1000000, "Sumbangan warga untuk perbaikan jalan", date(-1, 10)),
		entry(4, models.EntryIncome, models.FinanceIuran, 500000, "Iuran bulanan RT", date(0, 5)),
		entry(5, models.EntryExpense, models.FinanceInfrastruktur, 750000, "Perbaikan jalan gang mawar", date(-1, 15)),
		entry(6, models.EntryExpense, models.FinanceKebersihan, 200000, "Pembelian peralatan kebersihan", date(-2, 20)),
		entry(7, models.EntryExpense, models.FinanceKeamanan, 300000, "Gaji satpam", date(-1, 28)),
		entry(8, models.EntryExpense, models.FinanceAcara, 500000, "Acara 17 Agustus", time.Date(y, time.August, 17, 0, 0, 0, 0, time.UTC)),
	}
}

func demoDocuments(now time.Time) []models.DocumentRequest {
	day := 24 * time.Hour
	return []models.DocumentRequest{
		{
			ID:               "DOC-001",
			Type:             models.DocSuratPengantar,
			Purpose:          "Pembuatan KTP",
			Status:           models.DocumentSelesai,
			RequesterID:      "USR-003",
			RequesterName:    "Ahmad Wijaya",
			RequesterAddress: "RT 01/RW 05, No. 15",
			SupportingDocs:   []string{"KK", "KTP Lama"},
			ApprovedAt:       ptr(now.Add(-day)),
			ApprovedBy:       "USR-001",
			ApproverName:     "Budi Santoso",
			CreatedAt:        now.Add(-2 * day),
			UpdatedAt:        now.Add(-day),
		},
		{
			ID:               "DOC-002",
			Type:             models.DocSuratDomisili,
			Purpose:          "Keperluan pekerjaan",
			Status:           models.DocumentProses,
			RequesterID:      "USR-003",
			RequesterName:    "Ahmad Wijaya",
			RequesterAddress: "RT 01/RW 05, No. 15",
			SupportingDocs:   []string{"KTP", "KK"},
			CreatedAt:        now.Add(-day / 2),
			UpdatedAt:        now.Add(-day / 2),
		},
	}
}
