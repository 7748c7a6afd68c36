package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_AggregatesOperationStats(t *testing.T) {
	recorder := NewRecorder("voice")

	recorder.Record("frame", 40*time.Millisecond, false)
	recorder.Record("frame", 120*time.Millisecond, true)
	stats := recorder.Record("frame", 20*time.Millisecond, false)

	if stats.Total != 3 || stats.Violations != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MaxLatency != 120*time.Millisecond {
		t.Fatalf("expected max 120ms, got %s", stats.MaxLatency)
	}
	if stats.LastLatency != 20*time.Millisecond {
		t.Fatalf("expected last 20ms, got %s", stats.LastLatency)
	}
	if stats.AvgLatency() != 60*time.Millisecond {
		t.Fatalf("expected avg 60ms, got %s", stats.AvgLatency())
	}
	if got := stats.ViolationRatio(); got < 0.33 || got > 0.34 {
		t.Fatalf("expected violation ratio about 0.3333, got %.4f", got)
	}
	if stats.P95ProxyLatencyMs != 50 {
		t.Fatalf("expected p95 proxy 50ms, got %d", stats.P95ProxyLatencyMs)
	}
}

func TestRecorder_SnapshotIsACopy(t *testing.T) {
	recorder := NewRecorder("biometric")
	if recorder.Snapshot().HasData() {
		t.Fatal("new recorder should have no data")
	}

	recorder.Record("auth", time.Millisecond, false)
	recorder.Record("quick_auth", time.Millisecond, false)
	snap := recorder.Snapshot()
	recorder.Record("auth", time.Millisecond, false)

	if snap.Ops["auth"].Total != 1 {
		t.Fatalf("snapshot should not change after further records, got %+v", snap.Ops["auth"])
	}
	names := snap.OpNames()
	if len(names) != 2 || names[0] != "auth" || names[1] != "quick_auth" {
		t.Fatalf("unexpected op names: %v", names)
	}
	if snap.Simulator != "biometric" {
		t.Fatalf("unexpected simulator: %q", snap.Simulator)
	}
}

func TestRecorder_MirrorsIntoPrometheus(t *testing.T) {
	recorder := NewRecorder("connectivity")
	recorder.Record("decision", 2*time.Millisecond, false)
	recorder.Record("decision", 9*time.Millisecond, true)

	violations := testutil.ToFloat64(recorder.violations.WithLabelValues("connectivity", "decision"))
	if violations != 1 {
		t.Fatalf("expected 1 violation, got %f", violations)
	}

	count, err := recorder.ObservationCount("decision")
	if err != nil {
		t.Fatalf("ObservationCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 observations, got %d", count)
	}

	var buf bytes.Buffer
	if err := recorder.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "workloadsim_operation_latency_seconds_count") {
		t.Fatalf("expected histogram in exposition, got:\n%s", buf.String())
	}
}

func TestRecorder_NilIsSafe(t *testing.T) {
	var recorder *Recorder
	recorder.Record("x", time.Second, true)
	if recorder.Snapshot().HasData() {
		t.Fatal("nil recorder should report no data")
	}
}

func TestP95ProxyFromBuckets(t *testing.T) {
	buckets := make([]int64, len(latencyBucketUpperBoundsMs)+1)
	buckets[latencyBucketIndex(3)] = 19
	buckets[latencyBucketIndex(9000)] = 1

	if got := p95ProxyFromBuckets(buckets, 20); got != 5 {
		t.Fatalf("expected 5ms, got %d", got)
	}
	if got := p95ProxyFromBuckets(buckets, 0); got != 0 {
		t.Fatalf("expected 0 for empty, got %d", got)
	}
}
