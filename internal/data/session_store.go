package data

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/ports"
)

// SessionStore keeps the token and role of one browser context in a KVStore.
// Both keys are always read and written together.
type SessionStore struct {
	kv     ports.KVStore
	logger *slog.Logger
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore over kv. A nil logger falls back to slog.Default.
func NewSessionStore(kv ports.KVStore, logger *slog.Logger) *SessionStore {
	if kv == nil {
		panic("KVStore is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{kv: kv, logger: logger.With("component", "session_store")}
}

// Token returns the stored token when a complete session is present.
func (s *SessionStore) Token(ctx context.Context) (string, bool) {
	sess := s.Snapshot(ctx)
	return sess.Token, sess.HasToken()
}

// Role returns the stored role when a complete session is present.
func (s *SessionStore) Role(ctx context.Context) (domainauth.Role, bool) {
	sess := s.Snapshot(ctx)
	return sess.Role, sess.HasToken()
}

// Snapshot reads both keys in one step. Anything short of a non-empty token
// paired with a known role reads as the anonymous session.
func (s *SessionStore) Snapshot(ctx context.Context) domainauth.Session {
	values, err := s.kv.GetMany(ctx, SessionKeys...)
	if err != nil {
		s.logger.WarnContext(ctx, "session read failed, treating as anonymous", "error", err)
		return domainauth.Session{}
	}

	rawToken, hasToken := values[KeyToken]
	rawRole, hasRole := values[KeyUserRole]
	if !hasToken && !hasRole {
		return domainauth.Session{}
	}

	token := strings.TrimSpace(string(rawToken))
	role, ok := domainauth.ParseRole(string(rawRole))
	if token == "" || !ok {
		s.logger.WarnContext(ctx, "incomplete session in store, treating as anonymous",
			"has_token", token != "",
			"role", string(rawRole),
		)
		return domainauth.Session{Incomplete: true}
	}

	return domainauth.Session{Token: token, Role: role}
}

// SetSession persists token and role in one atomic write.
func (s *SessionStore) SetSession(ctx context.Context, token string, role domainauth.Role) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.ValidationField("token", "token is required")
	}
	if !role.IsValid() {
		return apperrors.ValidationField("role", fmt.Sprintf("unknown role %q", role))
	}

	if err := s.kv.SetMany(ctx, map[string][]byte{
		KeyToken:    []byte(token),
		KeyUserRole: []byte(role),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ClearSession removes both keys in one atomic delete.
func (s *SessionStore) ClearSession(ctx context.Context) error {
	if err := s.kv.DeleteMany(ctx, SessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
