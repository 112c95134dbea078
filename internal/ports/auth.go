package ports

// Package ports defines interfaces (hexagonal ports) for session, storage and transport behavior.
// Implementations live in internal/adapters and internal/service; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
)

// SessionStore reads and writes the identity of one browser context.
// Reads never fail: malformed or missing data is reported as absent.
type SessionStore interface {
	Token(ctx context.Context) (string, bool)
	Role(ctx context.Context) (domainauth.Role, bool)
	// Snapshot returns token and role read together; a token is never returned without its role.
	Snapshot(ctx context.Context) domainauth.Session
	SetSession(ctx context.Context, token string, role domainauth.Role) error
	ClearSession(ctx context.Context) error
}
