package service

import (
	"testing"

	"github.com/target/carematch-ui/internal/adapters/memory"
	"github.com/target/carematch-ui/internal/data"
	"github.com/target/carematch-ui/internal/ports"
	"github.com/target/carematch-ui/internal/testutil"
)

// fixedRequesters hands the same Requester to every session.
type fixedRequesters struct {
	r ports.Requester
}

func (f fixedRequesters) ForSession(ports.SessionStore) ports.Requester { return f.r }

// newClientState opens a fresh browser context over an in-memory store.
func newClientState(t *testing.T) (ports.ClientState, *memory.KVStore) {
	t.Helper()
	kv := memory.NewKVStore()
	states := data.ClientStates{
		Stores: data.NamespacedFactory{Store: kv},
		Clock:  testutil.NewTestClock(testutil.TestTime()),
	}
	state, err := states.Open("test-client")
	if err != nil {
		t.Fatalf("open client state: %v", err)
	}
	return state, kv
}
