package filekv

// Package filekv persists a KVStore as a single JSON document on disk, which
// gives a local browser-like store that survives restarts without Redis.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/target/carematch-ui/internal/data"
	"github.com/target/carematch-ui/internal/ports"
)

const fileVersion = 1

// document is the on-disk layout.
type document struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// Store keeps every key in one file. Each mutation rewrites the whole file
// through a temp file and rename, so readers see either the old or the new state.
// Writers are serialized within the process.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

var _ ports.KVStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for corruption diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open prepares a store at path, creating its directory with 0700 permissions.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	s := &Store{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, data.ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc.Values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (s *Store) GetMany(_ context.Context, keys ...string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := doc.Values[k]; ok {
			out[k] = []byte(v)
		}
	}
	return out, nil
}

func (s *Store) SetMany(_ context.Context, entries map[string][]byte) error {
	for k := range entries {
		if k == "" {
			return data.ErrKeyRequired
		}
	}
	return s.mutate(func(doc *document) error {
		for k, v := range entries {
			doc.Values[k] = string(v)
		}
		return nil
	})
}

func (s *Store) DeleteMany(_ context.Context, keys ...string) error {
	return s.mutate(func(doc *document) error {
		for _, k := range keys {
			delete(doc.Values, k)
		}
		return nil
	})
}

func (s *Store) Update(_ context.Context, key string, fn ports.Mutation) error {
	if key == "" {
		return data.ErrKeyRequired
	}
	return s.mutate(func(doc *document) error {
		var current []byte
		if v, ok := doc.Values[key]; ok {
			current = []byte(v)
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			delete(doc.Values, key)
			return nil
		}
		doc.Values[key] = string(next)
		return nil
	})
}

func (s *Store) mutate(fn func(*document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// load reads the file. A missing file is an empty store; an unreadable
// document is logged and treated as empty so the next write replaces it.
func (s *Store) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &document{Version: fileVersion, Values: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	empty := document{Version: fileVersion}
	doc, err := data.DecodeOr(raw, data.JSON[document], empty)
	if err != nil {
		s.logger.Warn("kv file unreadable, starting empty", "path", s.path, "error", err)
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	return &doc, nil
}

func (s *Store) save(doc *document) error {
	doc.Version = fileVersion
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		return errors.Join(fmt.Errorf("write temp file: %w", err), tmp.Close(), os.Remove(tmpPath))
	}
	if err := tmp.Chmod(0o600); err != nil {
		return errors.Join(fmt.Errorf("chmod temp file: %w", err), tmp.Close(), os.Remove(tmpPath))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(fmt.Errorf("close temp file: %w", err), os.Remove(tmpPath))
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return errors.Join(fmt.Errorf("replace store file: %w", err), os.Remove(tmpPath))
	}
	return nil
}
