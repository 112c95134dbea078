package data

import (
	"context"

	"github.com/target/carematch-ui/internal/ports"
)

// Namespaced prefixes every key of an underlying store. It is how one shared
// backend holds the state of many browser contexts.
type Namespaced struct {
	store  ports.KVStore
	prefix string
}

var _ ports.KVStore = (*Namespaced)(nil)

// NewNamespaced scopes store to the browser context clientID.
func NewNamespaced(store ports.KVStore, clientID string) (*Namespaced, error) {
	prefix, err := ClientNamespace(clientID)
	if err != nil {
		return nil, err
	}
	return &Namespaced{store: store, prefix: prefix}, nil
}

func (n *Namespaced) key(k string) string { return n.prefix + k }

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.store.Get(ctx, n.key(key))
}

func (n *Namespaced) GetMany(ctx context.Context, keys ...string) (map[string][]byte, error) {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = n.key(k)
	}
	got, err := n.store.GetMany(ctx, full...)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(got))
	for _, k := range keys {
		if v, ok := got[n.key(k)]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (n *Namespaced) SetMany(ctx context.Context, entries map[string][]byte) error {
	full := make(map[string][]byte, len(entries))
	for k, v := range entries {
		full[n.key(k)] = v
	}
	return n.store.SetMany(ctx, full)
}

func (n *Namespaced) DeleteMany(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = n.key(k)
	}
	return n.store.DeleteMany(ctx, full...)
}

func (n *Namespaced) Update(ctx context.Context, key string, fn ports.Mutation) error {
	return n.store.Update(ctx, n.key(key), fn)
}

// NamespacedFactory hands out Namespaced views of one shared store.
type NamespacedFactory struct {
	Store ports.KVStore
}

var _ ports.KVStoreFactory = NamespacedFactory{}

// ForClient implements ports.KVStoreFactory.
func (f NamespacedFactory) ForClient(clientID string) (ports.KVStore, error) {
	return NewNamespaced(f.Store, clientID)
}
