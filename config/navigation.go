package config

import (
	"strings"
	"unicode"
)

// NavigationConfig controls the route table and where the guard sends people.
type NavigationConfig struct {
	// RoutesFile is an optional YAML route table. Empty uses the built-in table.
	RoutesFile string `env:"NAV_ROUTES_FILE" envDefault:""`

	// UnauthenticatedRedirect is where anonymous visitors of guarded routes go.
	// Deployments pick "/" or "/login"; it applies to every route.
	UnauthenticatedRedirect string `env:"NAV_UNAUTHENTICATED_REDIRECT" envDefault:"/"`

	// JobseekerLanding is where non-employers are sent from employer routes.
	JobseekerLanding string `env:"NAV_JOBSEEKER_LANDING" envDefault:"/jobseeker-dashboard"`
}

// Sanitize applies guardrails to navigation configuration values.
func (n *NavigationConfig) Sanitize() {
	n.RoutesFile = strings.TrimSpace(n.RoutesFile)
	n.UnauthenticatedRedirect = absolutePath(n.UnauthenticatedRedirect, "/")
	n.JobseekerLanding = absolutePath(n.JobseekerLanding, "/jobseeker-dashboard")
}

// absolutePath keeps redirects on-site. Anything not starting with a single "/"
// falls back to def, as does any value carrying a backslash or control
// character: browsers read "/\" as "//" and drop tabs and newlines.
func absolutePath(p, def string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return def
	}
	if strings.ContainsFunc(p, func(r rune) bool { return r == '\\' || unicode.IsControl(r) }) {
		return def
	}
	return p
}
