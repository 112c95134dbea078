// Package metrics names the metrics the web front emits and builds their tags.
package metrics

import (
	"strings"
	"time"

	"github.com/target/carematch-ui/internal/domain/navigation"
	obserrors "github.com/target/carematch-ui/internal/observability/errors"
	"github.com/target/carematch-ui/internal/observability/statsd"
)

// Metric names.
const (
	NavigationDecision = "navigation.decision"
	APIRequest         = "api.request"
	APIRequestDuration = "api.request.duration"
	StatusOverride     = "status.override"
)

// Result tag values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Status override operations.
const (
	OverrideStored     = "store"
	OverrideReconciled = "reconcile"
	OverrideCleared    = "clear"
)

// EmitNavigation counts one guard decision.
func EmitNavigation(sink statsd.Sink, req navigation.NavigationRequest, d navigation.Decision) {
	if sink == nil {
		return
	}
	sink.Count(NavigationDecision, 1, map[string]string{
		"outcome": string(d.Outcome),
		"policy":  string(req.Descriptor.Policy),
		"reason":  d.Reason,
	})
}

// APICall describes one backend request.
type APICall struct {
	Method   string
	Path     string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitAPIRequest counts and times one backend request.
func EmitAPIRequest(sink statsd.Sink, call APICall) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"method":   call.Method,
		"resource": Resource(call.Path),
		"result":   ResultSuccess,
	}
	if call.Status > 0 {
		tags["status_class"] = string(rune('0'+call.Status/100)) + "xx"
	}
	if call.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(call.Err)
	}
	sink.Count(APIRequest, 1, tags)
	if call.Duration > 0 {
		sink.Timing(APIRequestDuration, call.Duration, CloneTags(tags))
	}
}

// EmitStatusOverride counts n override changes of kind op.
func EmitStatusOverride(sink statsd.Sink, op string, n int, err error) {
	if sink == nil || (n == 0 && err == nil) {
		return
	}
	tags := map[string]string{"op": op, "result": ResultSuccess}
	if err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(err)
		n = 1
	}
	sink.Count(StatusOverride, int64(n), tags)
}

// Resource reduces an API path to its first segment so ids never become tag values.
func Resource(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
