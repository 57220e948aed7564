package tokens

import (
	"context"
	"fmt"

	"quizdeck/internal/client/config"
	tokensPorts "quizdeck/internal/client/ports/tokens"
)

// NewStore создает хранилище токенов по настройкам.
func NewStore(ctx context.Context, cfg *config.Config) (tokensPorts.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		store, err := NewRedisStore(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis token store: %w", err)
		}
		return store, nil
	case config.StorageFile, "":
		store, err := NewFileStore(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create file token store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown token storage backend %q", cfg.Storage.Backend)
	}
}
