package config

import (
	"fmt"
	"strings"
)

// StorageBackend selects where browser-context state is persisted.
type StorageBackend string

const (
	// StorageMemory keeps state in process memory; lost on restart.
	StorageMemory StorageBackend = "memory"
	// StorageFile keeps state in one JSON file.
	StorageFile StorageBackend = "file"
	// StorageRedis keeps state in Redis, shared by every replica.
	StorageRedis StorageBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch StorageBackend(v) {
	case StorageMemory, StorageFile, StorageRedis:
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: memory, file, redis)", v)
	}
}

// StorageConfig contains key-value store configuration.
type StorageConfig struct {
	Backend StorageBackend `env:"STORAGE_BACKEND" envDefault:"memory"`

	// FilePath is the JSON file used by the file backend.
	FilePath string `env:"STORAGE_FILE_PATH" envDefault:"./var/carematch-kv.json"`

	// KeyPrefix namespaces every key written to Redis.
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"carematch:"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = StorageMemory
	}
	if s.Backend == StorageFile && strings.TrimSpace(s.FilePath) == "" {
		s.FilePath = "./var/carematch-kv.json"
	}
}
