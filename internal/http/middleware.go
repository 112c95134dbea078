package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/target/carematch-ui/internal/domain/navigation"
	"github.com/target/carematch-ui/internal/ports"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("client_id", GetClientIDFromContext(r.Context())),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ClientCookieConfig controls the client_id cookie.
type ClientCookieConfig struct {
	Domain string
	Secure bool
}

// ClientContext binds every request to a browser context. The context id is read
// from the client_id cookie; a missing or malformed id is replaced by a fresh
// UUID and sent back to the browser. The opened state is stored in the request
// context for handlers and the guard.
func ClientContext(opener ports.ClientStateOpener, cookies ClientCookieConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, ok := clientIDFromRequest(r)
			if !ok {
				clientID = uuid.NewString()
				setClientCookie(w, clientID, cookies)
			}

			state, err := opener.Open(clientID)
			if err != nil {
				logger.ErrorContext(r.Context(), "open client state failed", "client_id", clientID, "error", err)
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "client_state_unavailable",
					Err:     errors.New("browser state is unavailable"),
				})
				return
			}

			ctx := SetClientInContext(r.Context(), clientID, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIDFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(ClientIDCookie)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func setClientCookie(w http.ResponseWriter, clientID string, cfg ClientCookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     ClientIDCookie,
		Value:    clientID,
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(clientIDMaxAge / time.Second),
	})
}

// NavigationAuthorizer evaluates a resolved navigation for the session of a browser context.
type NavigationAuthorizer interface {
	AuthorizeRequest(ctx context.Context, sessions ports.SessionStore, req navigation.NavigationRequest) navigation.Decision
}

// decisionKey carries the guard decision to the page handler.
type decisionKey struct{}

// Guard runs the navigation guard for the route d before its page is served.
// The route is the one the mux matched; the request path is never resolved
// again, so escaped separators cannot land the request on a different policy.
// A redirect decision ends the request; a proceed decision is attached to the
// request context. Requests without a browser context are treated as anonymous.
func Guard(nav NavigationAuthorizer, d navigation.RouteDescriptor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, ok := GetClientStateFromContext(r.Context())
			var sessions ports.SessionStore = anonymousSessions{}
			if ok && state.Sessions != nil {
				sessions = state.Sessions
			}

			req := navigation.NavigationRequest{TargetPath: r.URL.Path, Descriptor: d}
			decision := nav.AuthorizeRequest(r.Context(), sessions, req)
			if !decision.IsProceed() {
				redirect(w, r, decision.Location)
				return
			}

			ctx := context.WithValue(r.Context(), decisionKey{}, decision)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// decisionFromContext returns the decision recorded by Guard.
func decisionFromContext(ctx context.Context) (navigation.Decision, bool) {
	d, ok := ctx.Value(decisionKey{}).(navigation.Decision)
	return d, ok
}
