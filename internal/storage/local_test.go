package storage_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	return storage.NewLocalStore(filepath.Join(t.TempDir(), "laporrt.json"))
}

func TestLocalStore_EmptyFileYieldsEmptyCollections(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()

	reports, err := s.ListReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)

	acc, err := s.GetAccountByEmail(ctx, "nobody@rtrw.com")
	require.NoError(t, err)
	assert.Nil(t, acc)
}

func TestLocalStore_ReportRoundTrip(t *testing.T) {
	// Arrange
	s := newLocalStore(t)
	ctx := context.Background()
	uid := "USR-003"
	in := models.IncidentReport{
		ID:          "RPT-1",
		Title:       "Jalan Berlubang",
		Category:    models.CategoryInfrastruktur,
		Description: "Lubang besar di gang mawar",
		Location:    "Gang Mawar",
		Status:      models.ReportBaru,
		UserID:      &uid,
		UserName:    "Ahmad Wijaya",
		Images:      []string{"data:image/png;base64,AAAA"},
		Responses:   []models.Response{},
		CreatedAt:   time.Date(2024, 11, 5, 8, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 11, 5, 8, 0, 0, 0, time.UTC),
	}

	// Act
	require.NoError(t, s.CreateReport(ctx, &in))
	got, err := s.GetReportByID(ctx, "RPT-1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Images, got.Images)
	assert.Equal(t, *in.UserID, *got.UserID)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))
}

func TestLocalStore_NewestFirstForRecordsAppendForAccounts(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.CreateDocument(ctx, &models.DocumentRequest{ID: fmt.Sprintf("DOC-%d", i), Status: models.DocumentDiajukan}))
		require.NoError(t, s.CreateAccount(ctx, &models.Account{ID: fmt.Sprintf("USR-%d", i), Email: fmt.Sprintf("u%d@rtrw.com", i)}))
	}

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"DOC-3", "DOC-2", "DOC-1"}, []string{docs[0].ID, docs[1].ID, docs[2].ID})

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "USR-1", accounts[0].ID)
}

func TestLocalStore_DuplicateIDAndEmail(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateAccount(ctx, &models.Account{ID: "USR-1", Email: "warga@rtrw.com"}))

	err := s.CreateAccount(ctx, &models.Account{ID: "USR-2", Email: " Warga@RTRW.com "})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	err = s.CreateAccount(ctx, &models.Account{ID: "USR-1", Email: "other@rtrw.com"})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	found, err := s.GetAccountByEmail(ctx, "WARGA@rtrw.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "USR-1", found.ID)
}

func TestLocalStore_UpdateStampsUpdatedAt(t *testing.T) {
	// Arrange
	s := newLocalStore(t)
	ctx := context.Background()
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateReport(ctx, &models.IncidentReport{ID: "RPT-1", Status: models.ReportBaru, CreatedAt: old, UpdatedAt: old}))

	// Act
	updated, err := s.UpdateReport(ctx, "RPT-1", models.Fields{"status": models.ReportSelesai})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.ReportSelesai, updated.Status)
	assert.True(t, updated.UpdatedAt.After(old))
	assert.True(t, updated.CreatedAt.Equal(old))

	stored, err := s.GetReportByID(ctx, "RPT-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReportSelesai, stored.Status)
}

func TestLocalStore_UpdateLedgerDoesNotTouchOtherFields(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()
	entry := models.LedgerEntry{ID: "FIN-1", Type: models.EntryIncome, Category: models.FinanceIuran, Amount: 500000, Date: time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.CreateLedgerEntry(ctx, &entry))

	updated, err := s.UpdateLedgerEntry(ctx, "FIN-1", models.Fields{"amount": 520000})

	require.NoError(t, err)
	assert.Equal(t, int64(520000), updated.Amount)
	assert.Equal(t, models.FinanceIuran, updated.Category)
}

func TestLocalStore_UpdateMissingReturnsNil(t *testing.T) {
	s := newLocalStore(t)

	updated, err := s.UpdateDocument(context.Background(), "DOC-404", models.Fields{"status": models.DocumentProses})

	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestLocalStore_UpdateRejectsUnknownAndImmutableFields(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateDocument(ctx, &models.DocumentRequest{ID: "DOC-1"}))

	_, err := s.UpdateDocument(ctx, "DOC-1", models.Fields{"approver": "x"})
	assert.ErrorIs(t, err, storage.ErrUnknownField)

	_, err = s.UpdateDocument(ctx, "DOC-1", models.Fields{"id": "DOC-2"})
	assert.ErrorIs(t, err, storage.ErrImmutableField)
}

func TestLocalStore_DeleteIsIdempotent(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateReport(ctx, &models.IncidentReport{ID: "RPT-1"}))

	require.NoError(t, s.DeleteReport(ctx, "RPT-1"))
	require.NoError(t, s.DeleteReport(ctx, "RPT-1"))

	got, err := s.GetReportByID(ctx, "RPT-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocalStore_FileLayout(t *testing.T) {
	// Arrange
	s := newLocalStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateAccount(ctx, &models.Account{ID: "USR-1", Email: "a@rtrw.com"}))
	require.NoError(t, s.CreateReport(ctx, &models.IncidentReport{ID: "RPT-1", IsAnonymous: true}))
	require.NoError(t, s.WriteKey(ctx, storage.KeyCurrentUser, []byte(`{"id":"USR-1"}`)))

	// Act
	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var layout map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &layout))

	// Assert
	assert.Contains(t, layout, storage.KeyUsers)
	assert.Contains(t, layout, storage.KeyReports)
	assert.Contains(t, layout, storage.KeyCurrentUser)
	assert.Contains(t, string(layout[storage.KeyReports]), `"isAnonymous":true`)
}

func TestLocalStore_KeyValue(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()

	value, err := s.ReadKey(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, s.WriteKey(ctx, storage.KeyCurrentUser, []byte(`{"sid":"abc"}`)))
	value, err = s.ReadKey(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sid":"abc"}`, string(value))

	assert.Error(t, s.WriteKey(ctx, storage.KeyCurrentUser, []byte("not json")))

	require.NoError(t, s.RemoveKey(ctx, storage.KeyCurrentUser))
	require.NoError(t, s.RemoveKey(ctx, storage.KeyCurrentUser))
	value, err = s.ReadKey(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestLocalStore_ConcurrentCreatesAreSerialised(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, s.CreateLedgerEntry(ctx, &models.LedgerEntry{ID: fmt.Sprintf("FIN-%02d", n), Type: models.EntryIncome, Amount: 1000}))
		}(i)
	}
	wg.Wait()

	entries, err := s.ListLedgerEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestLocalStore_CancelledContext(t *testing.T) {
	s := newLocalStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListReports(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laporrt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	s := storage.NewLocalStore(path)

	_, err := s.ListAccounts(context.Background())

	assert.Error(t, err)
}
