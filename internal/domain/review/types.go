package review

// Package review holds the employer review types exchanged with the backend.

import "time"

// Rating bounds accepted by the backend.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is an employer's rating of a jobseeker.
type Review struct {
	ID          string    `json:"id"`
	JobseekerID string    `json:"jobseekerId"`
	EmployerID  string    `json:"employerId,omitempty"`
	JobID       string    `json:"jobId,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// ValidRating reports whether r is within [MinRating, MaxRating].
func ValidRating(r int) bool { return r >= MinRating && r <= MaxRating }
