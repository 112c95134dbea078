package ports

import (
	"context"

	"github.com/target/carematch-ui/internal/domain/application"
)

// StatusCache is the local overlay of application statuses recorded ahead of
// server confirmation. It never talks to the network and never expires entries.
type StatusCache interface {
	StoreUpdate(ctx context.Context, entityID, status string) (application.StatusOverride, error)
	Get(ctx context.Context, entityID string) (application.StatusOverride, bool)
	All(ctx context.Context) map[string]application.StatusOverride
	ClearAll(ctx context.Context) error
	// DisplayStatus maps a status to its presentation name.
	DisplayStatus(status string) string
}

// Requester is the HTTP transport used by the service layer to reach the backend API.
type Requester interface {
	// Do sends body (JSON encoded when non-nil) and decodes the response into out when non-nil.
	Do(ctx context.Context, method, path string, body, out any) error
}

// RequesterFactory builds a Requester that authenticates as the given session.
type RequesterFactory interface {
	ForSession(sessions SessionStore) Requester
}

// ClientState is the persisted state of one browser context.
type ClientState struct {
	Sessions SessionStore
	Statuses StatusCache
}

// ClientStateOpener opens the state of a browser context by its client id.
type ClientStateOpener interface {
	Open(clientID string) (ClientState, error)
}
