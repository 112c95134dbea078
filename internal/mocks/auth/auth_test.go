package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/carematch-ui/internal/domain/auth"
)

func TestMemorySessionStore_SetAndClear(t *testing.T) {
	store := NewMemorySessionStore(domainauth.Session{})
	ctx := context.Background()

	_, ok := store.Token(ctx)
	assert.False(t, ok)

	require.NoError(t, store.SetSession(ctx, "tok", domainauth.RoleEmployer))
	tok, ok := store.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
	role, ok := store.Role(ctx)
	assert.True(t, ok)
	assert.Equal(t, domainauth.RoleEmployer, role)

	require.NoError(t, store.ClearSession(ctx))
	assert.True(t, store.Snapshot(ctx).IsAnonymous())
	assert.Equal(t, 1, store.SetCalls)
	assert.Equal(t, 1, store.ClearCalls)
}

func TestMemorySessionStore_Errors(t *testing.T) {
	boom := errors.New("boom")
	store := NewMemorySessionStore(domainauth.Session{Token: "keep", Role: domainauth.RoleJobseeker})
	store.SetErr = boom
	store.ClearErr = boom
	ctx := context.Background()

	assert.ErrorIs(t, store.SetSession(ctx, "new", domainauth.RoleEmployer), boom)
	assert.ErrorIs(t, store.ClearSession(ctx), boom)
	assert.Equal(t, "keep", store.Snapshot(ctx).Token)
}

func TestStaticTokenSource(t *testing.T) {
	tok, err := StaticTokenSource("abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
}
