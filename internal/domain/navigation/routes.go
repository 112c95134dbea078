package navigation

import (
	"errors"
	"fmt"
	"strings"
)

// RouteSpec is the declarative form of a route as written in route files.
// The flags compile to a single AccessPolicy through Policy.
type RouteSpec struct {
	Path                      string `yaml:"path"                      json:"path"`
	Name                      string `yaml:"name,omitempty"            json:"name,omitempty"`
	RequiresAuth              bool   `yaml:"requiresAuth,omitempty"    json:"requiresAuth,omitempty"`
	EmployerOnly              bool   `yaml:"employerOnly,omitempty"    json:"employerOnly,omitempty"`
	PublicPreviewForEmployers bool   `yaml:"publicPreviewForEmployers,omitempty" json:"publicPreviewForEmployers,omitempty"`
}

// ErrAmbiguousPolicy is returned when a route combines the public preview policy
// with any auth flag. The guard assumes these are mutually exclusive.
var ErrAmbiguousPolicy = errors.New("ambiguous access policy")

// ErrInvalidRoute is returned for malformed or duplicate route declarations.
var ErrInvalidRoute = errors.New("invalid route")

// Policy compiles the route flags into a single AccessPolicy.
func (s RouteSpec) Policy() (AccessPolicy, error) {
	if s.PublicPreviewForEmployers {
		if s.EmployerOnly || s.RequiresAuth {
			return "", fmt.Errorf("%w: %s declares publicPreviewForEmployers with auth flags", ErrAmbiguousPolicy, s.Path)
		}
		return PolicyPublicPreviewForEmployers, nil
	}
	if s.EmployerOnly {
		return PolicyEmployerOnly, nil
	}
	if s.RequiresAuth {
		return PolicyRequiresAuth, nil
	}
	return PolicyPublic, nil
}

// RouteTable resolves request paths to descriptors. It is immutable once built.
type RouteTable struct {
	routes []compiledRoute
	index  map[string]int
}

type compiledRoute struct {
	descriptor RouteDescriptor
	segments   []string
	literal    bool
}

// NewRouteTable validates specs and builds a table. Any ambiguous or malformed
// route fails the whole table so misconfiguration is caught at startup.
func NewRouteTable(specs []RouteSpec) (*RouteTable, error) {
	table := &RouteTable{
		routes: make([]compiledRoute, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
	}

	var errs []error
	for _, spec := range specs {
		route, err := compileRoute(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		key := patternKey(route.segments)
		if _, dup := table.index[key]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate path %s", ErrInvalidRoute, spec.Path))
			continue
		}
		table.index[key] = len(table.routes)
		table.routes = append(table.routes, route)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return table, nil
}

// MustRouteTable is NewRouteTable for static tables known to be valid.
func MustRouteTable(specs []RouteSpec) *RouteTable {
	t, err := NewRouteTable(specs)
	if err != nil {
		panic(err)
	}
	return t
}

func compileRoute(spec RouteSpec) (compiledRoute, error) {
	path := strings.TrimSpace(spec.Path)
	if !strings.HasPrefix(path, "/") {
		return compiledRoute{}, fmt.Errorf("%w: path %q must start with /", ErrInvalidRoute, spec.Path)
	}

	policy, err := spec.Policy()
	if err != nil {
		return compiledRoute{}, err
	}

	segments := splitPath(path)
	literal := true
	for _, seg := range segments {
		if isParam(seg) {
			literal = false
			if len(seg) == 2 {
				return compiledRoute{}, fmt.Errorf("%w: empty parameter in %s", ErrInvalidRoute, spec.Path)
			}
		}
	}

	return compiledRoute{
		descriptor: RouteDescriptor{Path: path, Name: spec.Name, Policy: policy},
		segments:   segments,
		literal:    literal,
	}, nil
}

// Resolve returns the descriptor for target. Literal routes win over parameterised
// ones. Unknown paths resolve to a public descriptor and report false.
func (t *RouteTable) Resolve(target string) (RouteDescriptor, bool) {
	segments := splitPath(stripQuery(target))

	if t != nil {
		if i, ok := t.index[patternKey(segments)]; ok && t.routes[i].literal {
			return t.routes[i].descriptor, true
		}
		for _, r := range t.routes {
			if !r.literal && matchSegments(r.segments, segments) {
				return r.descriptor, true
			}
		}
	}

	return RouteDescriptor{Path: "/" + strings.Join(segments, "/"), Policy: PolicyPublic}, false
}

// Request resolves target into a NavigationRequest.
func (t *RouteTable) Request(target string) NavigationRequest {
	d, _ := t.Resolve(target)
	return NavigationRequest{TargetPath: target, Descriptor: d}
}

// Descriptors returns the compiled routes in declaration order.
func (t *RouteTable) Descriptors() []RouteDescriptor {
	if t == nil {
		return nil
	}
	out := make([]RouteDescriptor, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.descriptor
	}
	return out
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, seg := range pattern {
		if isParam(seg) {
			if path[i] == "" {
				return false
			}
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func stripQuery(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		return p[:i]
	}
	return p
}

func isParam(seg string) bool {
	return strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

// patternKey normalises parameter names so /a/{x} and /a/{y} collide.
func patternKey(segments []string) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		if isParam(seg) {
			parts[i] = "{}"
			continue
		}
		parts[i] = seg
	}
	return "/" + strings.Join(parts, "/")
}
