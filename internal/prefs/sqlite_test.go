package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSQLiteSetAndGet(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_prefs.db")
	ctx := context.Background()

	s, err := NewSQLite(dbPath, zap.NewNop())
	require.NoError(t, err)

	_, err = s.Get(ctx, LastCityKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, LastCityKey, "Paris"))
	require.NoError(t, s.Set(ctx, LastCityKey, "São Paulo"))

	got, err := s.Get(ctx, LastCityKey)
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", got)
	require.NoError(t, s.Close())

	// Values survive reopening the file.
	reopened, err := NewSQLite(dbPath, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err = reopened.Get(ctx, LastCityKey)
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", got)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, LastCityKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, LastCityKey, "Recife"))
	got, err := m.Get(ctx, LastCityKey)
	require.NoError(t, err)
	assert.Equal(t, "Recife", got)
}
