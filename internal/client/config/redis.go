package config

import (
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию для Redis-хранилища токенов.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"QUIZ_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"QUIZ_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"QUIZ_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"QUIZ_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"QUIZ_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"QUIZ_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"QUIZ_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"QUIZ_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"QUIZ_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"QUIZ_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"QUIZ_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"QUIZ_REDIS_DEFAULT_TTL" env-default:"720h"`
}

// GetAddressString возвращает адрес Redis строкой.
func (c *RedisConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
