package filekv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/carematch-ui/internal/adapters/kvtest"
	"github.com/target/carematch-ui/internal/ports"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "kv.json"))
	require.NoError(t, err)
	return s
}

func TestStore_Contract(t *testing.T) {
	kvtest.RunContract(t, func(t *testing.T) ports.KVStore { return openTemp(t) })
}

func TestStore_SurvivesReopen(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	require.NoError(t, s.SetMany(ctx, map[string][]byte{"token": []byte("tok")}))

	reopened, err := Open(s.Path())
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("tok"), v)

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var doc document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, fileVersion, doc.Version)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	_, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetMany(ctx, map[string][]byte{"token": []byte("fresh")}))
	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("fresh"), v)
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for range 5 {
		require.NoError(t, s.Update(ctx, "n", func(cur []byte) ([]byte, error) {
			return append(cur, 'x'), nil
		}))
	}
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kv.json", entries[0].Name())
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
