// Package tokens содержит реализации хранилища пары токенов.
package tokens

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"quizdeck/internal/client/config"
	"quizdeck/internal/client/domain/entities"
	"quizdeck/pkg/logger"
)

// Константы для логирования.
const (
	LogTokensSaved   = "token pair saved"
	LogTokensCleared = "token pair cleared"

	ErrorFailedToWrite   = "failed to write token file"
	ErrorFailedToRead    = "failed to read token file"
	ErrorFailedToDecode  = "failed to decode token file"
	ErrorInvalidKey      = "encryption key must be 64 hex characters"
	ErrorFailedToEncrypt = "failed to encrypt token pair"
	ErrorFailedToDecrypt = "failed to decrypt token pair"
)

const (
	defaultDirName  = "quizdeck"
	defaultFileName = "tokens.json"
)

// FileStore хранит пару токенов в файле на диске, опционально шифруя содержимое.
type FileStore struct {
	path string
	aead interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

// NewFileStore создает файловое хранилище токенов. Пустой путь означает
// каталог конфигурации пользователя; непустой ключ включает шифрование.
func NewFileStore(cfg *config.StorageConfig) (*FileStore, error) {
	path := cfg.TokenPath
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config dir: %w", err)
		}
		path = filepath.Join(dir, defaultDirName, defaultFileName)
	}

	store := &FileStore{path: path}

	if cfg.EncryptionKey != "" {
		key, err := hex.DecodeString(cfg.EncryptionKey)
		if err != nil || len(key) != chacha20poly1305.KeySize {
			return nil, errors.New(ErrorInvalidKey)
		}
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher: %w", err)
		}
		store.aead = aead
	}

	return store, nil
}

// Save сохраняет пару токенов атомарной заменой файла.
func (s *FileStore) Save(ctx context.Context, pair entities.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to marshal token pair: %w", err)
	}

	if s.aead != nil {
		nonce := make([]byte, chacha20poly1305.NonceSizeX)
		if _, err := rand.Read(nonce); err != nil {
			return fmt.Errorf("%s: %w", ErrorFailedToEncrypt, err)
		}
		data = s.aead.Seal(nonce, nonce, data, nil)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}

	logger.Log(ctx).Debug(ctx, LogTokensSaved)
	return nil
}

// Load возвращает сохраненную пару. Поврежденный файл или неполная пара
// считаются отсутствием токенов, файл при этом удаляется.
func (s *FileStore) Load(ctx context.Context) (entities.TokenPair, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.TokenPair{}, false, nil
		}
		return entities.TokenPair{}, false, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}

	if s.aead != nil {
		if len(data) < chacha20poly1305.NonceSizeX {
			return s.discard(ctx)
		}
		nonce, ciphertext := data[:chacha20poly1305.NonceSizeX], data[chacha20poly1305.NonceSizeX:]
		data, err = s.aead.Open(nil, nonce, ciphertext, nil)
		if err != nil {
			return s.discard(ctx)
		}
	}

	var pair entities.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return s.discard(ctx)
	}
	if !pair.Valid() {
		return s.discard(ctx)
	}

	return pair, true, nil
}

// Clear удаляет файл с токенами.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	logger.Log(ctx).Debug(ctx, LogTokensCleared)
	return nil
}

// Close освобождает ресурсы хранилища. Для файлового хранилища это no-op.
func (s *FileStore) Close() error {
	return nil
}

// discard удаляет нечитаемый файл и сообщает об отсутствии пары.
func (s *FileStore) discard(ctx context.Context) (entities.TokenPair, bool, error) {
	logger.Log(ctx).Warn(ctx, ErrorFailedToDecode)
	_ = os.Remove(s.path)
	return entities.TokenPair{}, false, nil
}
