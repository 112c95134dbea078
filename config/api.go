package config

import (
	"strings"
	"time"
)

// APIConfig describes the marketplace backend.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:5000"`
	Timeout time.Duration `env:"API_TIMEOUT"  envDefault:"10s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.BaseURL == "" {
		a.BaseURL = "http://localhost:5000"
	}
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
}
