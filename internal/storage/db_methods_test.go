package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgres connects to the database named by DB_DSN. Integration tests
// are opt-in: set DB_DSN_TEST=1 to run them.
func setupPostgres(t *testing.T) *storage.Service {
	t.Helper()
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	db, err := gorm.Open(postgres.Open(os.Getenv("DB_DSN")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	s := storage.NewStorageService(db)
	require.NoError(t, s.Migrate())
	for _, table := range []string{"report_responses", "reports", "finances", "documents", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return s
}

func TestService_AccountUniqueEmail(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAccount(ctx, &models.Account{ID: "USR-1", Name: "Ahmad", Email: "warga@rtrw.com", Password: "x", Role: models.RoleWarga}))
	err := s.CreateAccount(ctx, &models.Account{ID: "USR-2", Name: "Other", Email: "WARGA@rtrw.com", Password: "x", Role: models.RoleWarga})

	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestService_ReportResponsesAppend(t *testing.T) {
	// Arrange
	s := setupPostgres(t)
	ctx := context.Background()
	report := models.IncidentReport{ID: "RPT-1", Title: "Lampu Jalan Mati", Category: models.CategoryInfrastruktur, Status: models.ReportBaru, Images: []string{}, Responses: []models.Response{}}
	require.NoError(t, s.CreateReport(ctx, &report))
	first := models.Response{ID: "R1", Message: "Dicek", ResponderID: "USR-1", ResponderName: "Budi", ResponderRole: models.RoleKetuaRT, CreatedAt: time.Now()}
	second := models.Response{ID: "R2", Message: "Sudah diperbaiki", ResponderID: "USR-2", ResponderName: "Siti", ResponderRole: models.RoleAdmin, CreatedAt: time.Now()}

	// Act
	_, err := s.UpdateReport(ctx, "RPT-1", models.Fields{"responses": []models.Response{first}, "status": models.ReportProses})
	require.NoError(t, err)
	updated, err := s.UpdateReport(ctx, "RPT-1", models.Fields{"responses": []models.Response{first, second}})
	require.NoError(t, err)

	// Assert
	got, err := s.GetReportByID(ctx, "RPT-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ReportProses, got.Status)
	require.Len(t, got.Responses, 2)
	assert.Equal(t, "R1", got.Responses[0].ID)
	assert.Equal(t, "R2", got.Responses[1].ID)
	assert.Len(t, updated.Responses, 2)
}

func TestService_LedgerDateRoundTrip(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	entry := models.LedgerEntry{ID: "FIN-1", Type: models.EntryExpense, Category: models.FinanceAcara, Amount: 500000, Description: "Acara 17 Agustus", Date: time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, s.CreateLedgerEntry(ctx, &entry))
	got, err := s.GetLedgerEntryByID(ctx, "FIN-1")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Date, got.Date)
	assert.Equal(t, int64(500000), got.Amount)
}

func TestService_DeleteReportRemovesResponses(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	report := models.IncidentReport{ID: "RPT-1", Title: "Sampah", Status: models.ReportBaru, Responses: []models.Response{{ID: "R1", Message: "ok"}}}
	require.NoError(t, s.CreateReport(ctx, &report))

	require.NoError(t, s.DeleteReport(ctx, "RPT-1"))
	require.NoError(t, s.DeleteReport(ctx, "RPT-1"))

	got, err := s.GetReportByID(ctx, "RPT-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_SeedMatchesLocalStore(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, storage.Seed(ctx, s, time.Now(), plain))

	reports, err := s.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "RPT-003", reports[0].ID)
}
