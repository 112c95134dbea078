package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Requesters ports.RequesterFactory // Required: backend transport
	Logger     *slog.Logger           // Optional: structured logger
}

// AuthService signs browser contexts in and out against the backend and keeps
// the resulting identity in the context's SessionStore.
type AuthService struct {
	requesters ports.RequesterFactory
	logger     *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Requesters == nil {
		panic("RequesterFactory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{requesters: opts.Requesters, logger: logger.With("component", "auth")}
}

// LoginInput carries the credentials posted by the login form.
type LoginInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     domainauth.Role `json:"role"`
}

// RegisterInput carries the fields posted by the registration form.
type RegisterInput struct {
	FullName string          `json:"fullName"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     domainauth.Role `json:"role"`
}

// authResponse is the backend's reply to login and register.
type authResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  struct {
		Role string `json:"role"`
	} `json:"user"`
}

func (r authResponse) role(fallback domainauth.Role) domainauth.Role {
	for _, raw := range []string{r.Role, r.User.Role} {
		if role, ok := domainauth.ParseRole(raw); ok {
			return role
		}
	}
	return fallback
}

// Login authenticates with the backend and stores the returned token and role.
func (s *AuthService) Login(ctx context.Context, sessions ports.SessionStore, in LoginInput) (domainauth.Session, error) {
	if err := validateCredentials(in.Email, in.Password, in.Role); err != nil {
		return domainauth.Session{}, err
	}
	body := map[string]any{"email": strings.TrimSpace(in.Email), "password": in.Password, "role": in.Role}

	var resp authResponse
	if err := s.requesters.ForSession(sessions).Do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return domainauth.Session{}, fmt.Errorf("login: %w", err)
	}
	return s.storeSession(ctx, sessions, resp, in.Role)
}

// Register creates an account. When the backend answers with a token the
// browser context is signed in straight away; ok reports whether that happened.
func (s *AuthService) Register(ctx context.Context, sessions ports.SessionStore, in RegisterInput) (domainauth.Session, bool, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return domainauth.Session{}, false, apperrors.ValidationField("fullName", "full name is required")
	}
	if err := validateCredentials(in.Email, in.Password, in.Role); err != nil {
		return domainauth.Session{}, false, err
	}
	body := map[string]any{
		"fullName": strings.TrimSpace(in.FullName),
		"email":    strings.TrimSpace(in.Email),
		"password": in.Password,
		"role":     in.Role,
	}

	var resp authResponse
	if err := s.requesters.ForSession(sessions).Do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return domainauth.Session{}, false, fmt.Errorf("register: %w", err)
	}
	if resp.Token == "" {
		return domainauth.Session{}, false, nil
	}
	sess, err := s.storeSession(ctx, sessions, resp, in.Role)
	return sess, err == nil, err
}

// Logout forgets the session and every local status override of the context.
func (s *AuthService) Logout(ctx context.Context, state ports.ClientState) error {
	if err := state.Sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if state.Statuses != nil {
		if err := state.Statuses.ClearAll(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	return nil
}

// Status returns the current session snapshot.
func (s *AuthService) Status(ctx context.Context, sessions ports.SessionStore) domainauth.Session {
	return sessions.Snapshot(ctx)
}

func (s *AuthService) storeSession(ctx context.Context, sessions ports.SessionStore, resp authResponse, requested domainauth.Role) (domainauth.Session, error) {
	if strings.TrimSpace(resp.Token) == "" {
		return domainauth.Session{}, apperrors.Internal("backend returned no token")
	}
	role := resp.role(requested)
	if role != requested {
		s.logger.InfoContext(ctx, "backend role differs from requested role",
			"requested", string(requested), "granted", string(role))
	}
	if err := sessions.SetSession(ctx, resp.Token, role); err != nil {
		return domainauth.Session{}, fmt.Errorf("store session: %w", err)
	}
	return domainauth.Session{Token: strings.TrimSpace(resp.Token), Role: role}, nil
}

func validateCredentials(email, password string, role domainauth.Role) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return apperrors.ValidationField("email", "a valid email is required")
	}
	if password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	if !role.IsValid() {
		return apperrors.ValidationField("role", "role must be jobseeker or employer")
	}
	return nil
}
