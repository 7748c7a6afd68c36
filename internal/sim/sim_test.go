package sim

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/MEKXH/workloadsim/internal/metrics"
	"github.com/MEKXH/workloadsim/internal/sensor"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(buf *bytes.Buffer) string {
	return ansiRe.ReplaceAllString(buf.String(), "")
}

// stepClock advances by step on every reading.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

type sleepLog struct {
	calls []time.Duration
	err   error
}

func (s *sleepLog) Sleep(ctx context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	if s.err != nil {
		return s.err
	}
	return ctx.Err()
}

func testOptions(src sensor.Source, step time.Duration, sleeps *sleepLog, rec *metrics.Recorder) Options {
	return Options{
		Source:  src,
		Now:     newStepClock(step).Now,
		Sleep:   sleeps.Sleep,
		Metrics: rec,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestPacedSleep_ZeroPaceSkipsPause(t *testing.T) {
	sleep := PacedSleep(0)
	start := time.Now()
	if err := sleep(context.Background(), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("expected zero pace to return immediately")
	}
}

func TestPacedSleep_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := PacedSleep(1)(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := PacedSleep(0)(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled with zero pace, got %v", err)
	}
}

func TestPacedSleep_ScalesDuration(t *testing.T) {
	start := time.Now()
	if err := PacedSleep(0.001)(context.Background(), 10*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond || elapsed > 5*time.Second {
		t.Fatalf("expected roughly 10ms pause, got %s", elapsed)
	}
}

func TestJoinDevices(t *testing.T) {
	if got := joinDevices(nil); got != "(none)" {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := joinDevices([]string{"a", "b"}); got != "a b" {
		t.Fatalf("unexpected join: %q", got)
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Source == nil || o.Now == nil || o.Sleep == nil || o.Logger == nil {
		t.Fatalf("expected defaults to be filled: %+v", o)
	}
	if o.Metrics != nil {
		t.Fatal("metrics stay optional")
	}
}
