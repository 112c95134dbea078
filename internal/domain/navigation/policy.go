// Package navigation holds the route access policies and the navigation guard.
//
// The guard is a pure classification: given the requested route and a snapshot of
// the browser session it returns either Proceed or a redirect target. Routers call
// it synchronously before every transition and never consult hidden state.
package navigation

import (
	"fmt"
	"strings"
)

// AccessPolicy is the authorization requirement declared by a route.
type AccessPolicy string

const (
	// PolicyPublic places no restriction on the route.
	PolicyPublic AccessPolicy = "public"
	// PolicyRequiresAuth admits any authenticated session.
	PolicyRequiresAuth AccessPolicy = "requires_auth"
	// PolicyEmployerOnly admits authenticated employer sessions.
	PolicyEmployerOnly AccessPolicy = "employer_only"
	// PolicyPublicPreviewForEmployers shows anonymous visitors a preview, gives
	// employers full access and turns job seekers away. It is not a combination of
	// the other policies and must be evaluated before the generic auth rule.
	PolicyPublicPreviewForEmployers AccessPolicy = "public_preview_for_employers"
)

// IsValid reports whether p is a known policy.
func (p AccessPolicy) IsValid() bool {
	switch p {
	case PolicyPublic, PolicyRequiresAuth, PolicyEmployerOnly, PolicyPublicPreviewForEmployers:
		return true
	default:
		return false
	}
}

// RequiresAuth reports whether the policy rejects anonymous sessions.
func (p AccessPolicy) RequiresAuth() bool {
	return p == PolicyRequiresAuth || p == PolicyEmployerOnly
}

// EmployerOnly reports whether the policy is restricted to employers.
func (p AccessPolicy) EmployerOnly() bool {
	return p == PolicyEmployerOnly
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *AccessPolicy) UnmarshalText(text []byte) error {
	v := AccessPolicy(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.IsValid() {
		return fmt.Errorf("invalid access policy: %q", string(text))
	}
	*p = v
	return nil
}

// RouteDescriptor binds a path pattern to its access policy.
// Descriptors are built once at startup and never mutated.
type RouteDescriptor struct {
	Path   string       `json:"path"`
	Name   string       `json:"name,omitempty"`
	Policy AccessPolicy `json:"policy"`
}

// NavigationRequest is one attempted transition.
type NavigationRequest struct {
	TargetPath string
	Descriptor RouteDescriptor
}
