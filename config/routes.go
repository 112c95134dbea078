package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/target/carematch-ui/internal/domain/navigation"
)

// RouteFile is the on-disk form of the route table.
//
//	routes:
//	  - path: /post-job
//	    name: post-job
//	    requiresAuth: true
//	    employerOnly: true
type RouteFile struct {
	Routes []navigation.RouteSpec `yaml:"routes"`
}

// ErrEmptyRouteFile is returned when a route file declares no routes.
var ErrEmptyRouteFile = errors.New("route file declares no routes")

// ParseRoutes decodes a YAML route file. Unknown keys are rejected so a typo in
// a policy flag cannot silently make a route public.
func ParseRoutes(r io.Reader) ([]navigation.RouteSpec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f RouteFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRouteFile
		}
		return nil, fmt.Errorf("decode route file: %w", err)
	}
	if len(f.Routes) == 0 {
		return nil, ErrEmptyRouteFile
	}
	return f.Routes, nil
}

// LoadRouteTable builds the route table. An empty path yields the built-in table.
func LoadRouteTable(path string) (*navigation.RouteTable, error) {
	if path == "" {
		return navigation.DefaultRouteTable(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route file: %w", err)
	}
	specs, err := ParseRoutes(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table, err := navigation.NewRouteTable(specs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
