package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	"github.com/target/carematch-ui/internal/ports"
	"golang.org/x/oauth2"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ oauth2.TokenSource = StaticTokenSource("")
)

// MemorySessionStore holds one session in memory and records writes.
type MemorySessionStore struct {
	mu      sync.Mutex
	session domainauth.Session

	// SetErr and ClearErr, when set, are returned instead of mutating state.
	SetErr   error
	ClearErr error

	SetCalls   int
	ClearCalls int
}

// NewMemorySessionStore creates a store already holding sess.
func NewMemorySessionStore(sess domainauth.Session) *MemorySessionStore {
	return &MemorySessionStore{session: sess}
}

func (m *MemorySessionStore) Token(_ context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Token, m.session.HasToken()
}

func (m *MemorySessionStore) Role(_ context.Context) (domainauth.Role, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Role, m.session.Role.IsValid()
}

func (m *MemorySessionStore) Snapshot(_ context.Context) domainauth.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *MemorySessionStore) SetSession(_ context.Context, token string, role domainauth.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.session = domainauth.Session{Token: token, Role: role}
	return nil
}

func (m *MemorySessionStore) ClearSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.session = domainauth.Session{}
	return nil
}

// StaticTokenSource always yields the same bearer token.
type StaticTokenSource string

func (s StaticTokenSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: string(s), TokenType: "Bearer"}, nil
}
