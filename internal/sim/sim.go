// Package sim holds the menu routines of the three workload simulators.
package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/MEKXH/workloadsim/internal/metrics"
	"github.com/MEKXH/workloadsim/internal/render"
	"github.com/MEKXH/workloadsim/internal/sensor"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Sleeper pauses between synthetic steps and returns early on cancellation.
type Sleeper func(ctx context.Context, d time.Duration) error

// Options carries the collaborators shared by every simulator.
type Options struct {
	Source   sensor.Source
	Now      func() time.Time
	Sleep    Sleeper
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
	Renderer render.Renderer
}

func (o Options) withDefaults() Options {
	if o.Source == nil {
		o.Source = sensor.NewRandom()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Sleep == nil {
		o.Sleep = PacedSleep(1)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// PacedSleep scales every pause by pace. A pace of zero or less skips the
// pause but still reports cancellation.
func PacedSleep(pace float64) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		scaled := time.Duration(float64(d) * pace)
		if scaled <= 0 {
			return ctx.Err()
		}
		timer := time.NewTimer(scaled)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8E4EC6"))
	subStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7875F")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CC3333"))
)

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("=== "+title+" ==="))
}

func subsection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", subStyle.Render("--- "+title+" ---"))
}

func joinDevices(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, " ")
}

// newRun tags one routine invocation in the logs.
func newRun(logger *slog.Logger, routine string) *slog.Logger {
	return logger.With("routine", routine, "run_id", uuid.NewString())
}

func writeMarkdown(w io.Writer, r render.Renderer, title string, traits []string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, render.Markdown(r, render.Bullets(title, traits)))
}
