package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/target/carematch-ui/config"
	"github.com/target/carematch-ui/internal/apiclient"
	"github.com/target/carematch-ui/internal/domain/navigation"
	"github.com/target/carematch-ui/internal/observability/statsd"
	"github.com/target/carematch-ui/internal/ports"
	"github.com/target/carematch-ui/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Navigation   *service.NavigationService
	Auth         *service.AuthService
	Applications *service.ApplicationService
	Reviews      *service.ReviewService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	// Requesters overrides the backend API client; tests point it at fakes.
	Requesters ports.RequesterFactory
	// Metrics defaults to statsd.Discard.
	Metrics statsd.Sink
	Logger  *slog.Logger
}

// NewServices builds every service. A route file that fails to compile stops startup.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, fmt.Errorf("config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	sink := deps.Metrics
	if sink == nil {
		sink = statsd.Discard
	}

	routes, err := config.LoadRouteTable(cfg.Navigation.RoutesFile)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("load route table: %w", err)
	}

	requesters := deps.Requesters
	if requesters == nil {
		factory, ferr := apiclient.NewFactory(apiclient.Config{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
			Logger:  logger,
			Metrics: sink,
		})
		if ferr != nil {
			return ServiceContainer{}, fmt.Errorf("api client: %w", ferr)
		}
		requesters = factory
	}

	return ServiceContainer{
		Navigation: service.NewNavigationService(service.NavigationServiceOptions{
			Routes: routes,
			Paths: navigation.GuardPaths{
				UnauthenticatedRedirect: cfg.Navigation.UnauthenticatedRedirect,
				JobseekerLanding:        cfg.Navigation.JobseekerLanding,
			},
			Logger:  logger,
			Metrics: sink,
		}),
		Auth: service.NewAuthService(service.AuthServiceOptions{Requesters: requesters, Logger: logger}),
		Applications: service.NewApplicationService(service.ApplicationServiceOptions{
			Requesters: requesters,
			Logger:     logger,
			Metrics:    sink,
		}),
		Reviews: service.NewReviewService(requesters),
	}, nil
}

// NewMetricsSink returns the StatsD client when metrics are enabled. A client
// that fails to initialise is logged and replaced by statsd.Discard.
func NewMetricsSink(cfg config.MetricsConfig, logger *slog.Logger) (statsd.Sink, func() error) {
	noop := func() error { return nil }
	if !cfg.IsEnabled() {
		return statsd.Discard, noop
	}
	client, err := statsd.NewClient(statsd.Config{
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Tags:    map[string]string{"service": "carematch-ui"},
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return statsd.Discard, noop
	}
	logger.Info("statsd metrics enabled", "address", cfg.StatsdAddress, "prefix", cfg.Prefix)
	return client, client.Close
}
