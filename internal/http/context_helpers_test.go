package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	mockauth "github.com/target/carematch-ui/internal/mocks/auth"
	"github.com/target/carematch-ui/internal/ports"
)

func TestClientContext_RoundTrip(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore(domainauth.Session{Token: "t", Role: domainauth.RoleEmployer})
	ctx := SetClientInContext(context.Background(), "c-1", ports.ClientState{Sessions: sessions})

	state, ok := GetClientStateFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, sessions, state.Sessions)
	assert.Equal(t, "c-1", GetClientIDFromContext(ctx))
}

func TestClientContext_Absent(t *testing.T) {
	_, ok := GetClientStateFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, GetClientIDFromContext(context.Background()))
}
