package memory

// Package memory provides the in-process KVStore used in development and tests.

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/target/carematch-ui/internal/data"
	"github.com/target/carematch-ui/internal/ports"
)

// KVStore is a mutex-guarded map. Values are copied on the way in and out.
type KVStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

var _ ports.KVStore = (*KVStore)(nil)

// NewKVStore creates an empty store.
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string][]byte)}
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, data.ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	return slices.Clone(v), ok, nil
}

func (s *KVStore) GetMany(_ context.Context, keys ...string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			out[k] = slices.Clone(v)
		}
	}
	return out, nil
}

func (s *KVStore) SetMany(_ context.Context, entries map[string][]byte) error {
	for k := range entries {
		if k == "" {
			return data.ErrKeyRequired
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range entries {
		s.values[k] = slices.Clone(v)
	}
	return nil
}

func (s *KVStore) DeleteMany(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

// Update holds the store lock for the whole read-modify-write.
func (s *KVStore) Update(_ context.Context, key string, fn ports.Mutation) error {
	if key == "" {
		return data.ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.values[key]
	if ok {
		current = slices.Clone(current)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		delete(s.values, key)
		return nil
	}
	s.values[key] = slices.Clone(next)
	return nil
}

// Keys returns a sorted snapshot of the stored keys.
func (s *KVStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.values))
}
