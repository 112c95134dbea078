package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/carematch-ui/config"
	"github.com/target/carematch-ui/internal/adapters/filekv"
	"github.com/target/carematch-ui/internal/adapters/memory"
	redisadapter "github.com/target/carematch-ui/internal/adapters/redis"
	"github.com/target/carematch-ui/internal/data"
	"github.com/target/carematch-ui/internal/ports"
)

// Storage is the opened key-value backend plus the per-browser-context view on top of it.
type Storage struct {
	Backend config.StorageBackend
	// Store is the shared, un-namespaced store.
	Store        ports.KVStore
	ClientStates data.ClientStates
	// Ready probes the backend; nil for in-process backends.
	Ready func(ctx context.Context) error
	close func() error
}

// Close releases the backend connection, if any.
func (s *Storage) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// StorageDeps groups dependencies for OpenStorage.
type StorageDeps struct {
	Storage config.StorageConfig
	Redis   config.RedisConfig
	Logger  *slog.Logger
}

// OpenStorage opens the configured backend.
func OpenStorage(ctx context.Context, deps StorageDeps) (*Storage, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Storage{Backend: deps.Storage.Backend}
	switch deps.Storage.Backend {
	case config.StorageFile:
		store, err := filekv.Open(deps.Storage.FilePath, filekv.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		s.Store = store
		logger.InfoContext(ctx, "file store opened", "path", store.Path())
	case config.StorageRedis:
		client, err := ConnectRedis(ctx, deps.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.Store = redisadapter.NewKVStoreWithPrefix(client, deps.Storage.KeyPrefix)
		s.Ready = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		s.close = client.Close
	case config.StorageMemory, "":
		s.Backend = config.StorageMemory
		s.Store = memory.NewKVStore()
		logger.WarnContext(ctx, "using in-memory store; browser state is lost on restart")
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", deps.Storage.Backend)
	}

	s.ClientStates = data.ClientStates{
		Stores: data.NamespacedFactory{Store: s.Store},
		Clock:  data.RealTimeProvider{},
		Logger: logger,
	}
	return s, nil
}
