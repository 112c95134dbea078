package httpx

import (
	"context"
	"net/http"

	"github.com/target/carematch-ui/internal/domain/review"
	"github.com/target/carematch-ui/internal/ports"
	"github.com/target/carematch-ui/internal/service"
)

// ReviewServiceInterface defines the review operations used by the handlers.
type ReviewServiceInterface interface {
	Submit(ctx context.Context, sessions ports.SessionStore, in service.SubmitReviewInput) (review.Review, error)
	CheckIfReviewed(ctx context.Context, sessions ports.SessionStore, jobseekerID string) (service.ReviewCheck, error)
	ForJobseeker(ctx context.Context, sessions ports.SessionStore, jobseekerID string) ([]review.Review, error)
	ForEmployer(ctx context.Context, sessions ports.SessionStore) ([]review.Review, error)
}

// ReviewHandlers proxies review operations to the backend with the caller's session.
type ReviewHandlers struct {
	Svc ReviewServiceInterface
}

// Submit handles POST /api/reviews.
func (h *ReviewHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	var in service.SubmitReviewInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	rv, err := h.Svc.Submit(r.Context(), state.Sessions, in)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, rv)
}

// Check handles GET /api/reviews/check/{jobseekerId}.
func (h *ReviewHandlers) Check(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	res, err := h.Svc.CheckIfReviewed(r.Context(), state.Sessions, r.PathValue("jobseekerId"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// ForJobseeker handles GET /api/reviews/jobseeker/{jobseekerId}.
func (h *ReviewHandlers) ForJobseeker(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	rows, err := h.Svc.ForJobseeker(r.Context(), state.Sessions, r.PathValue("jobseekerId"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"reviews": rows})
}

// ForEmployer handles GET /api/reviews/employer.
func (h *ReviewHandlers) ForEmployer(w http.ResponseWriter, r *http.Request) {
	state, ok := requireClientState(w, r)
	if !ok {
		return
	}
	rows, err := h.Svc.ForEmployer(r.Context(), state.Sessions)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"reviews": rows})
}
