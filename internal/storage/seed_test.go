package storage_test

import (
	"context"
	"testing"
	"time"

	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(p string) (string, error) { return p, nil }

func TestSeed_PopulatesEmptyStore(t *testing.T) {
	// Arrange
	s := newLocalStore(t)
	ctx := context.Background()
	now := time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC)

	// Act
	require.NoError(t, storage.Seed(ctx, s, now, plain))

	// Assert
	ketua, err := s.GetAccountByEmail(ctx, "ketua@rtrw.com")
	require.NoError(t, err)
	require.NotNil(t, ketua)
	assert.Equal(t, models.RoleKetuaRT, ketua.Role)
	assert.Equal(t, "admin123", ketua.Password)

	reports, err := s.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "RPT-003", reports[0].ID, "newest report first")

	anonymous, err := s.GetReportByID(ctx, "RPT-002")
	require.NoError(t, err)
	assert.True(t, anonymous.IsAnonymous)
	assert.Nil(t, anonymous.UserID)
	assert.Equal(t, models.AnonymousName, anonymous.UserName)

	entries, err := s.ListLedgerEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 8)

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestSeed_IsIdempotent(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, storage.Seed(ctx, s, now, plain))
	require.NoError(t, storage.Seed(ctx, s, now, plain))

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestSeed_HashesPasswords(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()

	require.NoError(t, storage.Seed(ctx, s, time.Now(), func(p string) (string, error) { return "hashed:" + p, nil }))

	warga, err := s.GetAccountByEmail(ctx, "warga@rtrw.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:warga123", warga.Password)
}
