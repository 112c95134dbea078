package data

import (
	"log/slog"

	"github.com/target/carematch-ui/internal/ports"
)

// ClientStates opens the session store and status cache of a browser context
// on top of a shared KVStoreFactory.
type ClientStates struct {
	Stores ports.KVStoreFactory
	Clock  TimeProvider
	Logger *slog.Logger
}

var _ ports.ClientStateOpener = ClientStates{}

// Open implements ports.ClientStateOpener.
func (c ClientStates) Open(clientID string) (ports.ClientState, error) {
	kv, err := c.Stores.ForClient(clientID)
	if err != nil {
		return ports.ClientState{}, err
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("client_id", clientID)
	return ports.ClientState{
		Sessions: NewSessionStore(kv, logger),
		Statuses: NewStatusCache(kv, WithClock(c.Clock), WithStatusLogger(logger)),
	}, nil
}
