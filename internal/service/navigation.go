package service

import (
	"context"
	"log/slog"

	"github.com/target/carematch-ui/internal/domain/navigation"
	"github.com/target/carematch-ui/internal/observability/metrics"
	"github.com/target/carematch-ui/internal/observability/statsd"
	"github.com/target/carematch-ui/internal/ports"
)

// NavigationServiceOptions groups dependencies for NavigationService.
type NavigationServiceOptions struct {
	Routes  *navigation.RouteTable // Required: compiled route table
	Paths   navigation.GuardPaths  // Optional: zero values fall back to defaults
	Logger  *slog.Logger           // Optional: structured logger
	Metrics statsd.Sink            // Optional: decision counters
}

// NavigationService resolves navigation targets against the route table and
// runs the guard with the caller's session snapshot.
type NavigationService struct {
	routes  *navigation.RouteTable
	paths   navigation.GuardPaths
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewNavigationService constructs a new NavigationService.
func NewNavigationService(opts NavigationServiceOptions) *NavigationService {
	if opts.Routes == nil {
		panic("RouteTable is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	paths := opts.Paths
	if paths.UnauthenticatedRedirect == "" {
		paths.UnauthenticatedRedirect = navigation.DefaultUnauthenticatedRedirect
	}
	if paths.JobseekerLanding == "" {
		paths.JobseekerLanding = navigation.DefaultJobseekerLanding
	}
	sink := opts.Metrics
	if sink == nil {
		sink = statsd.Discard
	}
	return &NavigationService{
		routes:  opts.Routes,
		paths:   paths,
		logger:  logger.With("component", "navigation"),
		metrics: sink,
	}
}

// Authorize resolves target against the route table and decides whether the
// session behind sessions may reach it.
func (s *NavigationService) Authorize(ctx context.Context, sessions ports.SessionStore, target string) navigation.Decision {
	return s.AuthorizeRequest(ctx, sessions, s.routes.Request(target))
}

// AuthorizeRequest evaluates an already resolved request. Callers that matched
// the route themselves pass its descriptor here so the path is not resolved twice.
// Only the session snapshot is read; the decision itself is pure.
func (s *NavigationService) AuthorizeRequest(ctx context.Context, sessions ports.SessionStore, req navigation.NavigationRequest) navigation.Decision {
	session := sessions.Snapshot(ctx)
	decision := navigation.Authorize(req, session, s.paths)
	metrics.EmitNavigation(s.metrics, req, decision)

	if decision.IsProceed() {
		return decision
	}
	if session.Incomplete {
		s.logger.WarnContext(ctx, "incomplete stored session treated as anonymous",
			"target", req.TargetPath,
			"route", req.Descriptor.Path,
			"policy", string(req.Descriptor.Policy),
			"location", decision.Location,
		)
	}
	s.logger.InfoContext(ctx, "navigation redirected",
		"target", req.TargetPath,
		"route", req.Descriptor.Path,
		"policy", string(req.Descriptor.Policy),
		"role", string(session.Role),
		"location", decision.Location,
		"reason", decision.Reason,
	)
	return decision
}

// Resolve returns the navigation request for target without evaluating it.
func (s *NavigationService) Resolve(target string) navigation.NavigationRequest {
	return s.routes.Request(target)
}

// Routes returns the compiled route descriptors.
func (s *NavigationService) Routes() []navigation.RouteDescriptor {
	return s.routes.Descriptors()
}

// Paths returns the effective redirect targets.
func (s *NavigationService) Paths() navigation.GuardPaths {
	return s.paths
}
