package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию веб-оболочки клиента.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"QUIZ_HTTP_HOST" env-default:"127.0.0.1"`
	Port         int           `yaml:"port" env:"QUIZ_HTTP_PORT" env-default:"3000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"QUIZ_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"QUIZ_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
