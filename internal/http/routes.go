package httpx

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/target/carematch-ui/internal/domain/navigation"
	"github.com/target/carematch-ui/internal/ports"
)

// NavigationService is the guard plus the route table it evaluates.
type NavigationService interface {
	NavigationAuthorizer
	Routes() []navigation.RouteDescriptor
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Navigation   NavigationService
	Auth         AuthServiceInterface
	Applications ApplicationServiceInterface
	Reviews      ReviewServiceInterface
	ClientStates ports.ClientStateOpener
	// Ready is an optional readiness check for the state backend.
	Ready   ReadinessCheck
	Cookies ClientCookieConfig
	Logger  *slog.Logger // Optional
}

// NewRouter creates and configures the HTTP router. Every route of the
// navigation table is served as a guarded page; API routes answer JSON.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Ready, logger))

	app := http.NewServeMux()
	registerPageRoutes(app, services.Navigation, logger)
	if services.Auth != nil {
		registerAuthRoutes(app, &AuthHandlers{Svc: services.Auth, Logger: logger})
	}
	if services.Applications != nil {
		registerApplicationRoutes(app, &ApplicationHandlers{Svc: services.Applications, Logger: logger})
	}
	if services.Reviews != nil {
		registerReviewRoutes(app, &ReviewHandlers{Svc: services.Reviews})
	}

	// Health checks stay outside ClientContext so health checks never mint browser contexts.
	mux.Handle("/", ClientContext(services.ClientStates, services.Cookies, logger)(app))
	return mux
}

func registerPageRoutes(mux *http.ServeMux, nav NavigationService, logger *slog.Logger) {
	for _, d := range nav.Routes() {
		page := Guard(nav, d)(&PageHandler{Descriptor: d, Logger: logger})
		pattern := muxPath(d.Path)
		mux.Handle("GET "+pattern, page)
	}
}

// muxPath converts a route path into a ServeMux pattern. The root must match
// exactly; ServeMux would otherwise treat "/" as a catch-all. Parameter names
// are renamed positionally since route files may use names ServeMux rejects.
func muxPath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "/{$}"
	}
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = "{p" + strconv.Itoa(i) + "}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerApplicationRoutes(mux *http.ServeMux, h *ApplicationHandlers) {
	mux.HandleFunc("GET /api/applications", h.List)
	mux.HandleFunc("POST /api/applications/{id}/status", h.UpdateStatus)
	mux.HandleFunc("GET /api/applications/status", h.Overrides)
	mux.HandleFunc("GET /api/applications/status/{id}", h.Override)
	mux.HandleFunc("DELETE /api/applications/status", h.ClearOverrides)
}

func registerReviewRoutes(mux *http.ServeMux, h *ReviewHandlers) {
	mux.HandleFunc("POST /api/reviews", h.Submit)
	mux.HandleFunc("GET /api/reviews/check/{jobseekerId}", h.Check)
	mux.HandleFunc("GET /api/reviews/jobseeker/{jobseekerId}", h.ForJobseeker)
	mux.HandleFunc("GET /api/reviews/employer", h.ForEmployer)
}
