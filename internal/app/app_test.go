package app_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"laporrt/backend/internal/app"
	"laporrt/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StorageMode:     config.ModeLocal,
		LocalStorePath:  filepath.Join(t.TempDir(), "laporrt.json"),
		LocalSeed:       true,
		PasswordHashing: config.HashPlain,
		JWTSecret:       "test-secret",
		SessionTTL:      time.Hour,
		RTName:          "RT 01",
		RWName:          "RW 05",
		Kelurahan:       "Kelurahan XYZ",
	}
}

func TestOpen_LocalModeSeedsAndLogsIn(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	a, err := app.Open(ctx, localConfig(t))
	require.NoError(t, err)
	defer a.Close()

	// Assert
	require.NoError(t, a.Ping(ctx))
	s, err := a.Auth.Login(ctx, "ketua@rtrw.com", "admin123")
	require.NoError(t, err)
	current, err := a.Auth.Current(ctx, s.Token)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Budi Santoso", current.Name)
	assert.Equal(t, "Kelurahan XYZ", a.Unit().Kelurahan)
	assert.NoError(t, a.Migrate())
}

func TestOpen_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := localConfig(t)
	a, err := app.Open(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, a.Seed(ctx))
	accounts, err := a.Storage.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestOpen_UnknownMode(t *testing.T) {
	cfg := localConfig(t)
	cfg.StorageMode = "sqlite"

	_, err := app.Open(context.Background(), cfg)

	assert.Error(t, err)
}
