package bootstrap

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/target/carematch-ui/config"
	httpx "github.com/target/carematch-ui/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Storage  *Storage
	Logger   *slog.Logger
}

// BuildHTTPHandler wires the router and the outer middleware.
// Order: Recover -> Logging -> Router.
func BuildHTTPHandler(cfg HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	if cfg.Storage == nil {
		panic("Storage is required")
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Navigation:   cfg.Services.Navigation,
		Auth:         cfg.Services.Auth,
		Applications: cfg.Services.Applications,
		Reviews:      cfg.Services.Reviews,
		ClientStates: cfg.Storage.ClientStates,
		Ready:        cfg.Storage.Ready,
		Cookies: httpx.ClientCookieConfig{
			Domain: appCfg.HTTP.CookieDomain,
			// Dev servers run on plain http where Secure cookies are dropped.
			Secure: appCfg.HTTP.CookieSecure && !appCfg.IsDev,
		},
		Logger: logger,
	})

	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)
	return h
}

// NewHTTPServer returns an unstarted server for handler.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	addr := cfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
