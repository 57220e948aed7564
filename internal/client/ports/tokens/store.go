// Package tokens определяет порт хранилища учетных данных.
package tokens

import (
	"context"

	"quizdeck/internal/client/domain/entities"
)

// Store - долговременное хранилище пары токенов. Содержимое токенов
// непрозрачно; хранилище сохраняет и удаляет пару атомарно.
type Store interface {
	// Save сохраняет пару токенов, замещая предыдущую.
	Save(ctx context.Context, pair entities.TokenPair) error
	// Load возвращает сохраненную пару; ok=false означает, что пары нет.
	Load(ctx context.Context) (pair entities.TokenPair, ok bool, err error)
	// Clear удаляет пару целиком. Отсутствие пары не является ошибкой.
	Clear(ctx context.Context) error
	// Close освобождает ресурсы хранилища.
	Close() error
}
