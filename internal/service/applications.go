package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/target/carematch-ui/internal/domain/application"
	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/observability/metrics"
	"github.com/target/carematch-ui/internal/observability/statsd"
	"github.com/target/carematch-ui/internal/ports"
)

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Requesters ports.RequesterFactory // Required: backend transport
	Logger     *slog.Logger           // Optional: structured logger
	Metrics    statsd.Sink            // Optional: override counters
}

// ApplicationService changes application statuses on the backend and keeps the
// local override cache in step so displays never fall back to stale server rows.
type ApplicationService struct {
	requesters ports.RequesterFactory
	logger     *slog.Logger
	metrics    statsd.Sink
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	if opts.Requesters == nil {
		panic("RequesterFactory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := opts.Metrics
	if sink == nil {
		sink = statsd.Discard
	}
	return &ApplicationService{
		requesters: opts.Requesters,
		logger:     logger.With("component", "applications"),
		metrics:    sink,
	}
}

// UpdateStatus sends the new status to the backend and, once accepted, records
// it as a local override.
func (s *ApplicationService) UpdateStatus(ctx context.Context, state ports.ClientState, applicationID, status string) (application.StatusOverride, error) {
	path, err := idPath("/applications/", applicationID)
	if err != nil {
		return application.StatusOverride{}, err
	}
	if !application.IsKnownStatus(status) {
		return application.StatusOverride{}, apperrors.ValidationField("status", fmt.Sprintf("unknown status %q", status))
	}

	body := map[string]string{"status": status}
	if err := s.requesters.ForSession(state.Sessions).Do(ctx, http.MethodPut, path+"/status", body, nil); err != nil {
		return application.StatusOverride{}, fmt.Errorf("update application status: %w", err)
	}

	override, err := state.Statuses.StoreUpdate(ctx, strings.TrimSpace(applicationID), status)
	metrics.EmitStatusOverride(s.metrics, metrics.OverrideStored, 1, err)
	if err != nil {
		return application.StatusOverride{}, fmt.Errorf("record status override: %w", err)
	}
	return override, nil
}

// List fetches the caller's applications and overlays local overrides.
// Overrides the server has caught up with are dropped first.
func (s *ApplicationService) List(ctx context.Context, state ports.ClientState) ([]application.Application, error) {
	var rows []application.Application
	if err := s.requesters.ForSession(state.Sessions).Do(ctx, http.MethodGet, "/applications", nil, &rows); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if _, err := s.Reconcile(ctx, state.Statuses, rows); err != nil {
		s.logger.WarnContext(ctx, "reconcile status overrides failed", "error", err)
	}
	return s.Merge(ctx, state.Statuses, rows), nil
}

// Merge overlays recorded overrides on server rows. Rows without an override
// keep the server status. The input slice is not modified.
func (s *ApplicationService) Merge(ctx context.Context, statuses ports.StatusCache, rows []application.Application) []application.Application {
	overrides := statuses.All(ctx)
	out := make([]application.Application, len(rows))
	for i, row := range rows {
		if o, ok := overrides[row.ID]; ok {
			row.Status = o.Status
			row.DisplayStatus = o.DisplayStatus
			row.Overridden = true
		} else {
			row.DisplayStatus = statuses.DisplayStatus(row.Status)
			row.Overridden = false
		}
		out[i] = row
	}
	return out
}

// Reconcile clears every override once the server rows agree with all of them.
// It reports whether the cache was cleared.
func (s *ApplicationService) Reconcile(ctx context.Context, statuses ports.StatusCache, rows []application.Application) (bool, error) {
	overrides := statuses.All(ctx)
	if len(overrides) == 0 {
		return false, nil
	}

	server := make(map[string]string, len(rows))
	for _, row := range rows {
		server[row.ID] = row.Status
	}
	for id, o := range overrides {
		if got, ok := server[id]; !ok || got != o.Status {
			return false, nil
		}
	}

	if err := statuses.ClearAll(ctx); err != nil {
		metrics.EmitStatusOverride(s.metrics, metrics.OverrideReconciled, 0, err)
		return false, fmt.Errorf("clear reconciled overrides: %w", err)
	}
	metrics.EmitStatusOverride(s.metrics, metrics.OverrideReconciled, len(overrides), nil)
	s.logger.InfoContext(ctx, "status overrides reconciled", "count", len(overrides))
	return true, nil
}
