package tokens_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/client/adapters/tokens"
	"quizdeck/internal/client/config"
	"quizdeck/internal/client/domain/entities"
)

func fileStoreConfig(t *testing.T) *config.StorageConfig {
	t.Helper()
	return &config.StorageConfig{
		Backend:   config.StorageFile,
		TokenPath: filepath.Join(t.TempDir(), "tokens.json"),
	}
}

func randomKeyHex(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return hex.EncodeToString(key)
}

func TestFileStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	cfg := fileStoreConfig(t)

	store, err := tokens.NewFileStore(cfg)
	require.NoError(t, err)

	// Empty store reports no pair.
	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	pair := entities.TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"}
	require.NoError(t, store.Save(ctx, pair))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pair, got)

	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already empty store is not an error.
	assert.NoError(t, store.Clear(ctx))
}

func TestFileStore_DurableAcrossInstances(t *testing.T) {
	ctx := context.Background()
	cfg := fileStoreConfig(t)

	first, err := tokens.NewFileStore(cfg)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, entities.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	second, err := tokens.NewFileStore(cfg)
	require.NoError(t, err)
	got, ok, err := second.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", got.AccessToken)
	assert.Equal(t, "r", got.RefreshToken)
}

func TestFileStore_CorruptFileTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	cfg := fileStoreConfig(t)

	store, err := tokens.NewFileStore(cfg)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.TokenPath, []byte("not json"), 0o600))

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// The corrupt file is removed so the next load is clean.
	_, statErr := os.Stat(cfg.TokenPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStore_HalfPairTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	cfg := fileStoreConfig(t)

	store, err := tokens.NewFileStore(cfg)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.TokenPath, []byte(`{"access":"only-access"}`), 0o600))

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_Encrypted(t *testing.T) {
	ctx := context.Background()
	cfg := fileStoreConfig(t)
	cfg.EncryptionKey = randomKeyHex(t)

	store, err := tokens.NewFileStore(cfg)
	require.NoError(t, err)

	pair := entities.TokenPair{AccessToken: "secret-access", RefreshToken: "secret-refresh"}
	require.NoError(t, store.Save(ctx, pair))

	// Ciphertext on disk must not contain the tokens.
	raw, err := os.ReadFile(cfg.TokenPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-access")

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pair, got)
}

func TestFileStore_WrongKeyTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	cfg := fileStoreConfig(t)
	cfg.EncryptionKey = randomKeyHex(t)

	store, err := tokens.NewFileStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, entities.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	cfg.EncryptionKey = randomKeyHex(t)
	reopened, err := tokens.NewFileStore(cfg)
	require.NoError(t, err)

	_, ok, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewFileStore_InvalidKey(t *testing.T) {
	cfg := fileStoreConfig(t)
	cfg.EncryptionKey = "deadbeef"

	store, err := tokens.NewFileStore(cfg)
	assert.Error(t, err)
	assert.Nil(t, store)
}
