package httpx

import (
	"context"

	"github.com/target/carematch-ui/internal/ports"
)

// clientKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type clientKey struct{}

// clientContext is the browser context bound to a request.
type clientContext struct {
	id    string
	state ports.ClientState
}

// SetClientInContext returns a child context that carries the browser context
// identified by clientID and its opened state.
func SetClientInContext(ctx context.Context, clientID string, state ports.ClientState) context.Context {
	return context.WithValue(ctx, clientKey{}, &clientContext{id: clientID, state: state})
}

// GetClientStateFromContext returns the browser context state and a boolean indicating presence.
func GetClientStateFromContext(ctx context.Context) (ports.ClientState, bool) {
	if c, ok := ctx.Value(clientKey{}).(*clientContext); ok && c != nil {
		return c.state, true
	}
	return ports.ClientState{}, false
}

// GetClientIDFromContext returns the client id bound to the request, or "".
func GetClientIDFromContext(ctx context.Context) string {
	if c, ok := ctx.Value(clientKey{}).(*clientContext); ok && c != nil {
		return c.id
	}
	return ""
}
