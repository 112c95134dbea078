// Package kvtest holds the behavior every ports.KVStore backend must share.
package kvtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/carematch-ui/internal/ports"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) ports.KVStore

// RunContract exercises store semantics against newStore.
func RunContract(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("set many then get many", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.SetMany(ctx, map[string][]byte{
			"token":    []byte("tok"),
			"userRole": []byte("employer"),
		}))

		got, err := s.GetMany(ctx, "token", "userRole", "absent")
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{
			"token":    []byte("tok"),
			"userRole": []byte("employer"),
		}, got)

		v, ok, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("tok"), v)
	})

	t.Run("delete many ignores missing keys", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
		require.NoError(t, s.DeleteMany(ctx, "a", "b", "c"))

		got, err := s.GetMany(ctx, "a", "b")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("update creates replaces and deletes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Update(ctx, "k", func(cur []byte) ([]byte, error) {
			assert.Nil(t, cur)
			return []byte("v1"), nil
		}))
		require.NoError(t, s.Update(ctx, "k", func(cur []byte) ([]byte, error) {
			assert.Equal(t, []byte("v1"), cur)
			return []byte("v2"), nil
		}))
		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), v)

		require.NoError(t, s.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, nil }))
		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update error leaves value untouched", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.SetMany(ctx, map[string][]byte{"k": []byte("keep")}))

		boom := errors.New("boom")
		err := s.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("lost"), boom })
		require.ErrorIs(t, err, boom)

		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("keep"), v)
	})

	t.Run("concurrent updates do not lose writes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const writers = 20

		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := range writers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- s.Update(ctx, "list", func(cur []byte) ([]byte, error) {
					return append(cur, []byte(fmt.Sprintf("%02d;", i))...), nil
				})
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		v, _, err := s.Get(ctx, "list")
		require.NoError(t, err)
		assert.Len(t, v, writers*3)
		for i := range writers {
			assert.Contains(t, string(v), fmt.Sprintf("%02d;", i))
		}
	})

	t.Run("returned values are not aliased", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		in := []byte("abc")
		require.NoError(t, s.SetMany(ctx, map[string][]byte{"k": in}))
		in[0] = 'x'

		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), v)
	})
}
