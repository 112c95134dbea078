package ports

import "context"

// Mutation receives the current value of a key (nil when absent) and returns the
// value to write back. Returning a nil slice deletes the key. Returning an error
// aborts the update without writing.
type Mutation func(current []byte) ([]byte, error)

// KVStore is the persisted key-value store a browser context keeps its state in.
//
// Every method is atomic with respect to concurrent writers of the same store,
// including writers in other processes when the backend is shared.
type KVStore interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// GetMany reads keys in one atomic step. Absent keys are omitted from the result.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	// SetMany writes all entries in one atomic step.
	SetMany(ctx context.Context, entries map[string][]byte) error
	// DeleteMany removes keys in one atomic step. Missing keys are ignored.
	DeleteMany(ctx context.Context, keys ...string) error
	// Update runs a read-modify-write of key as a critical section.
	Update(ctx context.Context, key string, fn Mutation) error
}

// KVStoreFactory hands out the store of one browser context.
type KVStoreFactory interface {
	ForClient(clientID string) (KVStore, error)
}
