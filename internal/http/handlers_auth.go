package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	"github.com/target/carematch-ui/internal/ports"
	"github.com/target/carematch-ui/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, sessions ports.SessionStore, in service.LoginInput) (domainauth.Session, error)
	Register(ctx context.Context, sessions ports.SessionStore, in service.RegisterInput) (domainauth.Session, bool, error)
	Logout(ctx context.Context, state ports.ClientState) error
	Status(ctx context.Context, sessions ports.SessionStore) domainauth.Session
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc    AuthServiceInterface
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// sessionView is what the browser learns about its session. The token never
// leaves the server.
type sessionView struct {
	Authenticated bool            `json:"authenticated"`
	Role          domainauth.Role `json:"role,omitempty"`
}

func viewOf(s domainauth.Session) sessionView {
	return sessionView{Authenticated: s.HasToken(), Role: s.Role}
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	var in service.LoginInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	sess, err := h.Svc.Login(r.Context(), state.Sessions, in)
	if err != nil {
		h.logger().InfoContext(r.Context(), "login failed", "client_id", GetClientIDFromContext(r.Context()), "error", err)
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, viewOf(sess))
}

// Register handles POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	var in service.RegisterInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	sess, _, err := h.Svc.Register(r.Context(), state.Sessions, in)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, viewOf(sess))
}

// Logout handles POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Logout(r.Context(), state); err != nil {
		h.logger().ErrorContext(r.Context(), "logout failed", "error", err)
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status handles GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, viewOf(h.Svc.Status(r.Context(), state.Sessions)))
}

// requireClientState writes a 500 when ClientContext did not run.
func requireClientState(w http.ResponseWriter, r *http.Request) (ports.ClientState, bool) {
	state, ok := GetClientStateFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "client_state_unavailable",
			Err:     errors.New("browser state is unavailable"),
		})
		return ports.ClientState{}, false
	}
	return state, true
}
