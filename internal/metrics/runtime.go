package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var latencyBucketUpperBoundsMs = []int64{
	1, 5, 10, 25, 50, 100, 250, 500, 1000, 2000, 5000,
}

// OpStats tracks latency for one simulated operation.
type OpStats struct {
	Total             int64         `json:"total"`
	Violations        int64         `json:"violations"`
	TotalLatency      time.Duration `json:"total_latency"`
	MaxLatency        time.Duration `json:"max_latency"`
	LastLatency       time.Duration `json:"last_latency"`
	P95ProxyLatencyMs int64         `json:"p95_proxy_latency_ms"`
}

// AvgLatency returns the mean latency.
func (o OpStats) AvgLatency() time.Duration {
	if o.Total <= 0 {
		return 0
	}
	return o.TotalLatency / time.Duration(o.Total)
}

// ViolationRatio returns violations/total in [0,1].
func (o OpStats) ViolationRatio() float64 {
	if o.Total <= 0 {
		return 0
	}
	return float64(o.Violations) / float64(o.Total)
}

// Snapshot is a point-in-time copy of all operation stats.
type Snapshot struct {
	Simulator string             `json:"simulator"`
	UpdatedAt time.Time          `json:"updated_at"`
	Ops       map[string]OpStats `json:"ops"`
}

// HasData reports whether any operation was recorded.
func (s Snapshot) HasData() bool {
	return len(s.Ops) > 0
}

// OpNames returns operation names in sorted order.
func (s Snapshot) OpNames() []string {
	names := make([]string, 0, len(s.Ops))
	for name := range s.Ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recorder aggregates latencies in memory and mirrors them into a prometheus registry.
type Recorder struct {
	simulator string

	mu      sync.Mutex
	ops     map[string]OpStats
	buckets map[string][]int64
	updated time.Time

	registry   *prometheus.Registry
	latency    *prometheus.HistogramVec
	violations *prometheus.CounterVec
}

// NewRecorder creates a recorder for one simulator session.
func NewRecorder(simulator string) *Recorder {
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workloadsim_operation_latency_seconds",
			Help:    "Latency of simulated operations",
			Buckets: bucketSeconds(),
		},
		[]string{"simulator", "operation"},
	)
	violations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workloadsim_budget_violations_total",
			Help: "Operations that exceeded their latency budget",
		},
		[]string{"simulator", "operation"},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(latency, violations)

	return &Recorder{
		simulator:  simulator,
		ops:        make(map[string]OpStats),
		buckets:    make(map[string][]int64),
		registry:   registry,
		latency:    latency,
		violations: violations,
	}
}

// Record adds one observation. overBudget marks a latency budget violation.
func (r *Recorder) Record(op string, d time.Duration, overBudget bool) OpStats {
	if r == nil {
		return OpStats{}
	}
	if d < 0 {
		d = 0
	}

	r.mu.Lock()
	stats := r.ops[op]
	stats.Total++
	stats.TotalLatency += d
	stats.LastLatency = d
	if d > stats.MaxLatency {
		stats.MaxLatency = d
	}
	if overBudget {
		stats.Violations++
	}

	buckets, ok := r.buckets[op]
	if !ok {
		buckets = make([]int64, len(latencyBucketUpperBoundsMs)+1)
		r.buckets[op] = buckets
	}
	buckets[latencyBucketIndex(d.Milliseconds())]++
	stats.P95ProxyLatencyMs = p95ProxyFromBuckets(buckets, stats.Total)

	r.ops[op] = stats
	r.updated = time.Now().UTC()
	r.mu.Unlock()

	r.latency.WithLabelValues(r.simulator, op).Observe(d.Seconds())
	if overBudget {
		r.violations.WithLabelValues(r.simulator, op).Inc()
	}
	return stats
}

// Snapshot returns a copy of the current stats.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make(map[string]OpStats, len(r.ops))
	for k, v := range r.ops {
		ops[k] = v
	}
	return Snapshot{Simulator: r.simulator, UpdatedAt: r.updated, Ops: ops}
}

// Registry exposes the prometheus registry backing this recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func bucketSeconds() []float64 {
	out := make([]float64, len(latencyBucketUpperBoundsMs))
	for i, ms := range latencyBucketUpperBoundsMs {
		out[i] = float64(ms) / 1000
	}
	return out
}

func latencyBucketIndex(latencyMs int64) int {
	for i, upper := range latencyBucketUpperBoundsMs {
		if latencyMs <= upper {
			return i
		}
	}
	return len(latencyBucketUpperBoundsMs)
}

func p95ProxyFromBuckets(buckets []int64, total int64) int64 {
	if total <= 0 {
		return 0
	}
	target := int64(float64(total) * 0.95)
	if target <= 0 {
		target = 1
	}

	var cumulative int64
	for i, count := range buckets {
		cumulative += count
		if cumulative < target {
			continue
		}
		if i >= len(latencyBucketUpperBoundsMs) {
			return latencyBucketUpperBoundsMs[len(latencyBucketUpperBoundsMs)-1]
		}
		return latencyBucketUpperBoundsMs[i]
	}
	return latencyBucketUpperBoundsMs[len(latencyBucketUpperBoundsMs)-1]
}
