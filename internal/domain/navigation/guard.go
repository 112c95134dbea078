package navigation

import (
	domainauth "github.com/target/carematch-ui/internal/domain/auth"
)

const (
	// DefaultUnauthenticatedRedirect is where anonymous visitors of guarded routes land.
	DefaultUnauthenticatedRedirect = "/"
	// DefaultJobseekerLanding is the landing page for sessions that fail an employer check.
	DefaultJobseekerLanding = "/jobseeker-dashboard"
)

// Outcome classifies a guard decision.
type Outcome string

const (
	OutcomeProceed  Outcome = "proceed"
	OutcomeRedirect Outcome = "redirect"
)

// Decision is the result of Authorize: either Proceed or RedirectTo(path).
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Location string  `json:"location,omitempty"`
	// Reason names the rule that produced the decision, for logs and tooling.
	Reason string `json:"reason"`
}

// Proceed lets the transition through.
func Proceed(reason string) Decision {
	return Decision{Outcome: OutcomeProceed, Reason: reason}
}

// RedirectTo sends the transition to path instead.
func RedirectTo(path, reason string) Decision {
	return Decision{Outcome: OutcomeRedirect, Location: path, Reason: reason}
}

// IsProceed reports whether the transition may continue.
func (d Decision) IsProceed() bool { return d.Outcome == OutcomeProceed }

// Reasons attached to decisions.
const (
	ReasonPublic           = "public"
	ReasonAnonymousPreview = "anonymous_preview"
	ReasonEmployerAccess   = "employer_access"
	ReasonPreviewRoleGate  = "preview_role_gate"
	ReasonMissingToken     = "missing_token"
	ReasonRoleMismatch     = "role_mismatch"
	ReasonAuthorized       = "authorized"
)

// GuardPaths configures the redirect targets used by the guard.
//
// UnauthenticatedRedirect is a single deployment-wide setting: deployments disagree on
// whether anonymous visitors of guarded routes belong on "/" or on "/login".
type GuardPaths struct {
	UnauthenticatedRedirect string
	JobseekerLanding        string
}

// DefaultGuardPaths returns the built-in redirect targets.
func DefaultGuardPaths() GuardPaths {
	return GuardPaths{
		UnauthenticatedRedirect: DefaultUnauthenticatedRedirect,
		JobseekerLanding:        DefaultJobseekerLanding,
	}
}

func (p GuardPaths) withDefaults() GuardPaths {
	if p.UnauthenticatedRedirect == "" {
		p.UnauthenticatedRedirect = DefaultUnauthenticatedRedirect
	}
	if p.JobseekerLanding == "" {
		p.JobseekerLanding = DefaultJobseekerLanding
	}
	return p
}

// Authorize decides whether session may reach the requested route.
// Rules are evaluated in priority order and the first match wins:
//  1. public preview: anonymous and employer sessions proceed, everyone else lands on the job seeker page;
//  2. auth required without a token: redirect to the unauthenticated target;
//  3. employer only with a non-employer role: redirect to the job seeker page;
//  4. proceed.
func Authorize(req NavigationRequest, session domainauth.Session, paths GuardPaths) Decision {
	paths = paths.withDefaults()
	policy := req.Descriptor.Policy

	if policy == PolicyPublicPreviewForEmployers {
		switch {
		case !session.HasToken():
			return Proceed(ReasonAnonymousPreview)
		case session.Role == domainauth.RoleEmployer:
			return Proceed(ReasonEmployerAccess)
		default:
			return RedirectTo(paths.JobseekerLanding, ReasonPreviewRoleGate)
		}
	}

	if policy.RequiresAuth() && !session.HasToken() {
		return RedirectTo(paths.UnauthenticatedRedirect, ReasonMissingToken)
	}

	if policy.EmployerOnly() && session.Role != domainauth.RoleEmployer {
		return RedirectTo(paths.JobseekerLanding, ReasonRoleMismatch)
	}

	if policy.RequiresAuth() {
		return Proceed(ReasonAuthorized)
	}
	return Proceed(ReasonPublic)
}
