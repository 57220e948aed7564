package config

import (
	"strings"
	"time"
)

// APIConfig представляет конфигурацию подключения к backend API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"QUIZ_API_BASE_URL" env-default:"http://localhost:8000/api"`
	Timeout time.Duration `yaml:"timeout" env:"QUIZ_API_TIMEOUT" env-default:"30s"`
}

// GetBaseURL возвращает базовый URL без завершающего слэша.
func (c *APIConfig) GetBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}
