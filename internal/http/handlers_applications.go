package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/carematch-ui/internal/domain/application"
	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/ports"
)

// ApplicationServiceInterface defines the application operations used by the handlers.
type ApplicationServiceInterface interface {
	UpdateStatus(ctx context.Context, state ports.ClientState, applicationID, status string) (application.StatusOverride, error)
	List(ctx context.Context, state ports.ClientState) ([]application.Application, error)
}

// ApplicationHandlers serves the application list and the local status overrides.
type ApplicationHandlers struct {
	Svc    ApplicationServiceInterface
	Logger *slog.Logger
}

func (h *ApplicationHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type overrideView struct {
	EntityID      string `json:"entityId"`
	Status        string `json:"status"`
	DisplayStatus string `json:"displayStatus"`
	Timestamp     string `json:"timestamp"`
}

func overrideViewOf(o application.StatusOverride) overrideView {
	return overrideView{
		EntityID:      o.EntityID,
		Status:        o.Status,
		DisplayStatus: o.DisplayStatus,
		Timestamp:     o.RecordedAt.UTC().Format(time.RFC3339Nano),
	}
}

// List handles GET /api/applications.
func (h *ApplicationHandlers) List(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	rows, err := h.Svc.List(r.Context(), state)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": rows})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /api/applications/{id}/status.
func (h *ApplicationHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	var req updateStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	override, err := h.Svc.UpdateStatus(r.Context(), state, r.PathValue("id"), req.Status)
	if err != nil {
		h.logger().InfoContext(r.Context(), "status update failed", "application_id", r.PathValue("id"), "error", err)
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, overrideViewOf(override))
}

// Overrides handles GET /api/applications/status.
func (h *ApplicationHandlers) Overrides(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	all := state.Statuses.All(r.Context())
	out := make(map[string]overrideView, len(all))
	for id, o := range all {
		out[id] = overrideViewOf(o)
	}
	WriteJSON(w, http.StatusOK, map[string]any{"updates": out})
}

// Override handles GET /api/applications/status/{id}.
func (h *ApplicationHandlers) Override(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	o, found := state.Statuses.Get(r.Context(), id)
	if !found {
		WriteAppError(w, apperrors.NotFoundf("no status update recorded for %s", id))
		return
	}
	WriteJSON(w, http.StatusOK, overrideViewOf(o))
}

// ClearOverrides handles DELETE /api/applications/status.
func (h *ApplicationHandlers) ClearOverrides(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	if err := state.Statuses.ClearAll(r.Context()); err != nil {
		h.logger().ErrorContext(r.Context(), "clear status updates failed", "error", err)
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
