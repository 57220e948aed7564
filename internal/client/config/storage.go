package config

// Поддерживаемые backend'ы хранилища токенов.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

// StorageConfig представляет конфигурацию хранилища токенов.
// EncryptionKey - hex-строка из 64 символов (32 байта); пустая строка
// отключает шифрование файла с токенами.
type StorageConfig struct {
	Backend       string `yaml:"backend" env:"QUIZ_STORAGE_BACKEND" env-default:"file"`
	TokenPath     string `yaml:"token_path" env:"QUIZ_STORAGE_TOKEN_PATH" env-default:""`
	EncryptionKey string `yaml:"encryption_key" env:"QUIZ_STORAGE_ENCRYPTION_KEY" env-default:""`
}
