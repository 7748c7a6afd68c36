package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/MEKXH/workloadsim/internal/menu"
	"github.com/MEKXH/workloadsim/internal/metrics"
	"github.com/MEKXH/workloadsim/internal/render"
	"github.com/MEKXH/workloadsim/internal/sensor"
	"github.com/MEKXH/workloadsim/internal/sim"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// simulator is what every simulator subcommand drives.
type simulator interface {
	Intro(w io.Writer)
	Menu() menu.Menu
}

type simBuilder func(cfg *config.Config, opts sim.Options) (simulator, error)

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("tui", false, "Run the menu as a full-screen terminal UI")
	cmd.Flags().Int64("seed", 0, "Random seed (0 seeds from the clock; overrides sim.seed)")
	cmd.Flags().Float64("pace", 1, "Sleep multiplier, 0 disables pauses (overrides sim.pace)")
	cmd.Flags().Bool("metrics", false, "Print session metrics in Prometheus text format on exit")
}

func runSimulator(cmd *cobra.Command, name string, build simBuilder) error {
	defer closeLogFile()

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	if err := applySimFlags(cmd, cfg); err != nil {
		return err
	}
	tui, _ := cmd.Flags().GetBool("tui")
	dumpMetrics, _ := cmd.Flags().GetBool("metrics")

	out := cmd.OutOrStdout()
	recorder := metrics.NewRecorder(name)

	renderer, err := render.NewRenderer(80, false)
	if err != nil {
		slog.Warn("markdown renderer unavailable, printing raw text", "error", err)
		renderer = nil
	}

	s, err := build(cfg, sim.Options{
		Source:   newSource(cfg.Sim.Seed),
		Sleep:    sim.PacedSleep(cfg.Sim.Pace),
		Metrics:  recorder,
		Logger:   slog.Default().With("simulator", name),
		Renderer: renderer,
	})
	if err != nil {
		return fmt.Errorf("failed to start %s simulator: %w", name, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("simulator started", "simulator", name, "seed", cfg.Sim.Seed, "pace", cfg.Sim.Pace, "tui", tui)
	if tui {
		var intro strings.Builder
		s.Intro(&intro)
		m := s.Menu()
		m.Intro = intro.String()
		err = menu.RunTUI(ctx, m, cmd.InOrStdin(), out)
	} else {
		s.Intro(out)
		err = menu.Run(ctx, s.Menu(), cmd.InOrStdin(), out)
	}
	if err != nil {
		return fmt.Errorf("%s simulator: %w", name, err)
	}

	printSummary(out, recorder.Snapshot())
	if dumpMetrics {
		if err := recorder.WriteText(out); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	slog.Info("simulator stopped", "simulator", name)
	return nil
}

func applySimFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		cfg.Sim.Seed = seed
	}
	if cmd.Flags().Changed("pace") {
		pace, _ := cmd.Flags().GetFloat64("pace")
		if pace < 0 {
			return fmt.Errorf("--pace must not be negative, got %g", pace)
		}
		cfg.Sim.Pace = pace
	}
	return nil
}

func newSource(seed int64) sensor.Source {
	if seed == 0 {
		return sensor.NewRandom()
	}
	return sensor.NewSeeded(uint64(seed))
}

// printSummary renders per-operation latency for the finished session.
func printSummary(w io.Writer, snap metrics.Snapshot) {
	if !snap.HasData() {
		return
	}

	var (
		headerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#8E4EC6")). // Purple
				Padding(0, 1).
				MarginTop(1)

		wOp    = 12
		wCount = 7
		wLat   = 10
		wViol  = 10

		colHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8E4EC6")).
				Bold(true).
				MarginRight(1)
		cellStyle = lipgloss.NewStyle().MarginRight(1)
		sepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1)

		okColor   = lipgloss.Color("#2E8B57") // SeaGreen
		warnColor = lipgloss.Color("#D7875F")
	)

	fmt.Fprintln(w, headerStyle.Render("Session Latency: "+snap.Simulator))

	headers := lipgloss.JoinHorizontal(lipgloss.Top,
		colHeaderStyle.Width(wOp).Render("OPERATION"),
		colHeaderStyle.Width(wCount).Render("COUNT"),
		colHeaderStyle.Width(wLat).Render("AVG"),
		colHeaderStyle.Width(wLat).Render("MAX"),
		colHeaderStyle.Width(wLat).Render("P95~"),
		colHeaderStyle.Width(wViol).Render("OVER"),
	)
	fmt.Fprintf(w, "  %s\n", headers)

	separator := lipgloss.JoinHorizontal(lipgloss.Top,
		sepStyle.Render(strings.Repeat("─", wOp)),
		sepStyle.Render(strings.Repeat("─", wCount)),
		sepStyle.Render(strings.Repeat("─", wLat)),
		sepStyle.Render(strings.Repeat("─", wLat)),
		sepStyle.Render(strings.Repeat("─", wLat)),
		sepStyle.Render(strings.Repeat("─", wViol)),
	)
	fmt.Fprintf(w, "  %s\n", separator)

	for _, op := range snap.OpNames() {
		stats := snap.Ops[op]
		violColor := okColor
		if stats.Violations > 0 {
			violColor = warnColor
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			cellStyle.Width(wOp).Render(op),
			cellStyle.Width(wCount).Render(fmt.Sprintf("%d", stats.Total)),
			cellStyle.Width(wLat).Render(formatLatency(stats.AvgLatency())),
			cellStyle.Width(wLat).Render(formatLatency(stats.MaxLatency)),
			cellStyle.Width(wLat).Render(fmt.Sprintf("%dms", stats.P95ProxyLatencyMs)),
			cellStyle.Width(wViol).Foreground(violColor).Render(fmt.Sprintf("%d (%.0f%%)", stats.Violations, stats.ViolationRatio()*100)),
		)
		fmt.Fprintf(w, "  %s\n", row)
	}
}

func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
