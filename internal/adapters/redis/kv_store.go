package redis

// Package redis provides the Redis-backed KVStore shared by every server replica.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/target/carematch-ui/internal/data"
	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/ports"
)

// DefaultMaxRetries bounds optimistic transaction attempts in Update.
const DefaultMaxRetries = 64

// KVStore stores values as plain Redis strings. Keys never expire.
// Update is a WATCH/MULTI compare-and-swap retried while another writer wins.
type KVStore struct {
	client     redis.UniversalClient
	prefix     string
	maxRetries int
}

var _ ports.KVStore = (*KVStore)(nil)

// NewKVStore creates a store using the default "carematch:" key prefix.
func NewKVStore(client redis.UniversalClient) *KVStore {
	return NewKVStoreWithPrefix(client, "carematch:")
}

// NewKVStoreWithPrefix creates a store with a custom key prefix.
func NewKVStoreWithPrefix(client redis.UniversalClient, prefix string) *KVStore {
	return &KVStore{
		client:     client,
		prefix:     prefix,
		maxRetries: DefaultMaxRetries,
	}
}

// WithMaxRetries overrides the CAS retry bound.
func (s *KVStore) WithMaxRetries(n int) *KVStore {
	if n > 0 {
		s.maxRetries = n
	}
	return s
}

func (s *KVStore) key(k string) string { return s.prefix + k }

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, data.ErrKeyRequired
	}

	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

// GetMany issues one MGET. In cluster mode every key must share a hash slot,
// which the {clientID} tag from data.ClientNamespace guarantees.
func (s *KVStore) GetMany(ctx context.Context, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	vals, err := s.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[keys[i]] = []byte(str)
		}
	}
	return out, nil
}

func (s *KVStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	pairs := make([]any, 0, len(entries)*2)
	for k, v := range entries {
		if k == "" {
			return data.ErrKeyRequired
		}
		pairs = append(pairs, s.key(k), v)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.MSet(ctx, pairs...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis mset: %w", err)
	}
	return nil
}

func (s *KVStore) DeleteMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Update retries until the watched key is unchanged between read and EXEC.
// Exhausting the retry bound returns a conflict AppError.
func (s *KVStore) Update(ctx context.Context, key string, fn ports.Mutation) error {
	if key == "" {
		return data.ErrKeyRequired
	}
	full := s.key(key)

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, full).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return fmt.Errorf("redis get: %w", err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if next == nil {
				pipe.Del(ctx, full)
				return nil
			}
			pipe.Set(ctx, full, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, full)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return apperrors.Conflict(fmt.Sprintf("update %s: gave up after %d attempts", key, s.maxRetries))
}
