package tokens_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"

	tokensAdapter "quizdeck/internal/client/adapters/tokens"
	"quizdeck/internal/client/config"
	"quizdeck/internal/client/domain/entities"
)

func safeUnpatch(t *testing.T, patch *mpatch.Patch) {
	t.Helper()
	if err := patch.Unpatch(); err != nil {
		t.Errorf("failed to unpatch: %v", err)
	}
}

func TestNewFileStore_DefaultPathUnderUserConfigDir(t *testing.T) {
	ctx := context.Background()
	configDir := t.TempDir()

	patch, err := mpatch.PatchMethod(os.UserConfigDir, func() (string, error) {
		return configDir, nil
	})
	require.NoError(t, err)
	defer safeUnpatch(t, patch)

	store, err := tokensAdapter.NewFileStore(&config.StorageConfig{})
	require.NoError(t, err)

	pair := entities.TokenPair{AccessToken: "acc", RefreshToken: "ref"}
	require.NoError(t, store.Save(ctx, pair))

	// Файл ложится в каталог конфигурации пользователя.
	_, err = os.Stat(filepath.Join(configDir, "quizdeck", "tokens.json"))
	assert.NoError(t, err)

	loaded, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pair, loaded)
}
