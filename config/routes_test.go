package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/carematch-ui/internal/domain/navigation"
)

func TestParseRoutes(t *testing.T) {
	specs, err := ParseRoutes(strings.NewReader(`
routes:
  - path: /browse-carers
    publicPreviewForEmployers: true
  - path: /post-job
    requiresAuth: true
    employerOnly: true
`))
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.True(t, specs[0].PublicPreviewForEmployers)
	assert.True(t, specs[1].EmployerOnly)
}

func TestParseRoutes_RejectsUnknownFlag(t *testing.T) {
	_, err := ParseRoutes(strings.NewReader(`
routes:
  - path: /post-job
    employersOnly: true
`))
	assert.Error(t, err)
}

func TestParseRoutes_Empty(t *testing.T) {
	_, err := ParseRoutes(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyRouteFile)

	_, err = ParseRoutes(strings.NewReader("routes: []\n"))
	require.ErrorIs(t, err, ErrEmptyRouteFile)
}

func TestLoadRouteTable_Default(t *testing.T) {
	table, err := LoadRouteTable("")
	require.NoError(t, err)
	assert.Equal(t, navigation.DefaultRouteTable().Descriptors(), table.Descriptors())
}

func TestLoadRouteTable_ExampleFileMatchesBuiltIn(t *testing.T) {
	table, err := LoadRouteTable("routes.example.yaml")
	require.NoError(t, err)
	assert.Equal(t, navigation.DefaultRouteTable().Descriptors(), table.Descriptors())
}

func TestLoadRouteTable_AmbiguousPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
routes:
  - path: /browse-carers
    publicPreviewForEmployers: true
    requiresAuth: true
`), 0o600))

	_, err := LoadRouteTable(path)
	require.ErrorIs(t, err, navigation.ErrAmbiguousPolicy)
}

func TestLoadRouteTable_MissingFile(t *testing.T) {
	_, err := LoadRouteTable(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
