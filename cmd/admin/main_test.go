package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	s := storage.NewLocalStore(filepath.Join(t.TempDir(), "laporrt.json"))
	require.NoError(t, storage.Seed(context.Background(), s, time.Now(), func(p string) (string, error) { return p, nil }))
	return s
}

func TestSetRole(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	account, err := setRole(ctx, s, " WARGA@rtrw.com", models.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)

	_, err = setRole(ctx, s, "warga@rtrw.com", models.Role("root"))
	assert.Error(t, err)
	_, err = setRole(ctx, s, "nobody@rtrw.com", models.RoleAdmin)
	assert.Error(t, err)
}

func TestDeleteUser(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	require.NoError(t, deleteUser(ctx, s, "bendahara@rtrw.com"))

	gone, err := s.GetAccountByEmail(ctx, "bendahara@rtrw.com")
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Error(t, deleteUser(ctx, s, "bendahara@rtrw.com"))
}
