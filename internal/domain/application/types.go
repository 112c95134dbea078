// Package application contains the job application types shared by the
// status override cache and the application service.
package application

import "time"

// Known application status values as reported by the backend.
const (
	StatusPending  = "Pending"
	StatusReviewed = "Reviewed"
	StatusHired    = "Hired"
	StatusRejected = "Rejected"
)

// IsKnownStatus reports whether status is one the backend accepts.
func IsKnownStatus(status string) bool {
	switch status {
	case StatusPending, StatusReviewed, StatusHired, StatusRejected:
		return true
	default:
		return false
	}
}

// StatusOverride is a locally recorded status that takes precedence over the
// server-reported one until the backend catches up.
type StatusOverride struct {
	EntityID      string    `json:"-"`
	Status        string    `json:"status"`
	DisplayStatus string    `json:"displayStatus"`
	RecordedAt    time.Time `json:"timestamp"`
}

// Application is a job application row as returned by the backend.
type Application struct {
	ID            string    `json:"id"`
	JobID         string    `json:"jobId,omitempty"`
	JobTitle      string    `json:"jobTitle,omitempty"`
	JobseekerID   string    `json:"jobseekerId,omitempty"`
	Status        string    `json:"status"`
	DisplayStatus string    `json:"displayStatus,omitempty"`
	AppliedAt     time.Time `json:"appliedAt,omitzero"`
	// Overridden is set when Status comes from a local override.
	Overridden bool `json:"overridden,omitempty"`
}
