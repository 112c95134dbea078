package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/target/carematch-ui/internal/domain/review"
	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/ports"
)

// ReviewService submits and lists employer reviews of jobseekers.
type ReviewService struct {
	requesters ports.RequesterFactory
}

// NewReviewService constructs a new ReviewService.
func NewReviewService(requesters ports.RequesterFactory) *ReviewService {
	if requesters == nil {
		panic("RequesterFactory is required")
	}
	return &ReviewService{requesters: requesters}
}

// SubmitReviewInput is a new review. JobID is optional.
type SubmitReviewInput struct {
	JobseekerID string `json:"jobseekerId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	JobID       string `json:"jobId,omitempty"`
}

// ReviewCheck is the backend's answer to whether the caller already reviewed a jobseeker.
type ReviewCheck struct {
	HasReviewed bool           `json:"hasReviewed"`
	Review      *review.Review `json:"review,omitempty"`
}

// Submit posts a review.
func (s *ReviewService) Submit(ctx context.Context, sessions ports.SessionStore, in SubmitReviewInput) (review.Review, error) {
	id := strings.TrimSpace(in.JobseekerID)
	if id == "" {
		return review.Review{}, apperrors.ValidationField("jobseekerId", "jobseeker id is required")
	}
	if !review.ValidRating(in.Rating) {
		return review.Review{}, apperrors.ValidationField("rating",
			fmt.Sprintf("rating must be between %d and %d", review.MinRating, review.MaxRating))
	}

	body := map[string]any{
		"jobseekerId": id,
		"rating":      in.Rating,
		"comment":     strings.TrimSpace(in.Comment),
		"jobId":       nil,
	}
	if jobID := strings.TrimSpace(in.JobID); jobID != "" {
		body["jobId"] = jobID
	}

	var out review.Review
	if err := s.requesters.ForSession(sessions).Do(ctx, http.MethodPost, "/reviews", body, &out); err != nil {
		return review.Review{}, fmt.Errorf("submit review: %w", err)
	}
	return out, nil
}

// CheckIfReviewed asks whether the signed-in employer already reviewed jobseekerID.
func (s *ReviewService) CheckIfReviewed(ctx context.Context, sessions ports.SessionStore, jobseekerID string) (ReviewCheck, error) {
	path, err := idPath("/reviews/check/", jobseekerID)
	if err != nil {
		return ReviewCheck{}, err
	}
	var out ReviewCheck
	if err := s.requesters.ForSession(sessions).Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return ReviewCheck{}, fmt.Errorf("check review: %w", err)
	}
	return out, nil
}

// ForJobseeker lists every review of jobseekerID.
func (s *ReviewService) ForJobseeker(ctx context.Context, sessions ports.SessionStore, jobseekerID string) ([]review.Review, error) {
	path, err := idPath("/reviews/jobseeker/", jobseekerID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, sessions, path)
}

// ForEmployer lists the reviews written by the signed-in employer.
func (s *ReviewService) ForEmployer(ctx context.Context, sessions ports.SessionStore) ([]review.Review, error) {
	return s.list(ctx, sessions, "/reviews/employer")
}

func (s *ReviewService) list(ctx context.Context, sessions ports.SessionStore, path string) ([]review.Review, error) {
	var out []review.Review
	if err := s.requesters.ForSession(sessions).Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if out == nil {
		out = []review.Review{}
	}
	return out, nil
}

func idPath(prefix, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.ValidationField("id", "id is required")
	}
	return prefix + url.PathEscape(id), nil
}
