package metrics

import (
	"sync"
	"time"

	"github.com/target/carematch-ui/internal/observability/statsd"
)

// Sample is one recorded metric.
type Sample struct {
	Name  string
	Value int64
	Tags  map[string]string
}

// Recorder is an in-memory statsd.Sink for tests.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
}

var _ statsd.Sink = (*Recorder)(nil)

func (r *Recorder) Count(name string, value int64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, Sample{Name: name, Value: value, Tags: CloneTags(tags)})
}

// Timing records the duration in milliseconds.
func (r *Recorder) Timing(name string, value time.Duration, tags map[string]string) {
	r.Count(name, value.Milliseconds(), tags)
}

// Samples returns a copy of everything recorded.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

// Total sums the values of name whose tags contain every pair in match.
func (r *Recorder) Total(name string, match map[string]string) int64 {
	var total int64
	for _, s := range r.Samples() {
		if s.Name != name || !hasTags(s.Tags, match) {
			continue
		}
		total += s.Value
	}
	return total
}

func hasTags(tags, match map[string]string) bool {
	for k, v := range match {
		if tags[k] != v {
			return false
		}
	}
	return true
}
