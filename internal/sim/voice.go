package sim

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/MEKXH/workloadsim/internal/menu"
	"github.com/MEKXH/workloadsim/internal/voice"
)

// Voice drives the keyword-spotting pipeline.
type Voice struct {
	cfg      config.VoiceConfig
	pipeline *voice.Pipeline
	opts     Options
}

// NewVoice builds the keyword models from cfg.
func NewVoice(cfg *config.Config, opts Options) (*Voice, error) {
	matcher, err := cfg.KeywordMatcher()
	if err != nil {
		return nil, fmt.Errorf("keyword models: %w", err)
	}
	opts = opts.withDefaults()
	return &Voice{
		cfg:      cfg.Voice,
		pipeline: voice.NewPipeline(opts.Source, matcher, cfg.Voice.BufferSize, cfg.Voice.FeatureSize),
		opts:     opts,
	}, nil
}

// Intro prints the model initialization banner.
func (v *Voice) Intro(w io.Writer) {
	fmt.Fprintln(w, "Initializing Sesotho keyword models...")
	for i, kw := range v.pipeline.Matcher().Keywords() {
		fmt.Fprintf(w, "  - Model %d: %s\n", i+1, kw)
	}
	fmt.Fprintln(w, "Initializing Voice Recognition Simulator...")
	fmt.Fprintln(w, "Focus: Low-latency Sesotho speech processing")
}

// RealTime processes a fixed number of frames against the per-frame budget.
func (v *Voice) RealTime(ctx context.Context, w io.Writer) error {
	log := newRun(v.opts.Logger, "voice.realtime")
	budget := config.Millis(v.cfg.FrameBudgetMS)

	section(w, "Real-time Audio Processing Test")
	fmt.Fprintf(w, "Testing latency requirements (<%dms)...\n", v.cfg.FrameBudgetMS)

	violations := 0
	for frame := 0; frame < v.cfg.Frames; frame++ {
		start := v.opts.Now()
		match := v.pipeline.Process()
		elapsed := v.opts.Now().Sub(start)

		over := elapsed > budget
		v.opts.Metrics.Record("frame", elapsed, over)

		keyword := "none"
		if match.Detected {
			keyword = "DETECTED"
		}
		line := fmt.Sprintf("Frame %d: %dms, Keyword: %s", frame, elapsed.Milliseconds(), keyword)
		if over {
			violations++
			line += " " + warnStyle.Render("LATENCY WARNING")
		}
		fmt.Fprintln(w, line)
		log.Debug("frame processed", "frame", frame, "latency", elapsed, "detected", match.Detected, "keyword", match.Keyword)

		if err := v.opts.Sleep(ctx, config.Millis(v.cfg.FrameGapMS)); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nResults: %d/%d frames exceeded %dms limit\n", violations, v.cfg.Frames, v.cfg.FrameBudgetMS)
	return nil
}

// KeywordDetection reports how often synthetic audio crosses the threshold.
func (v *Voice) KeywordDetection(ctx context.Context, w io.Writer) error {
	log := newRun(v.opts.Logger, "voice.detection")

	section(w, "Keyword Detection Accuracy Test")
	fmt.Fprintln(w, "Testing Sesotho command recognition...")

	detections := 0
	for i := 0; i < v.cfg.DetectionTests; i++ {
		start := v.opts.Now()
		match := v.pipeline.Process()
		v.opts.Metrics.Record("detection", v.opts.Now().Sub(start), false)

		if match.Detected {
			detections++
			fmt.Fprintf(w, "Test %d: %s (%s, confidence %.2f)\n", i, okStyle.Render("Keyword detected"), match.Keyword, match.Confidence)
		} else {
			fmt.Fprintf(w, "Test %d: %s\n", i, failStyle.Render("No keyword"))
		}
		log.Debug("detection test", "test", i, "detected", match.Detected)

		if err := v.opts.Sleep(ctx, config.Millis(v.cfg.DetectionGapMS)); err != nil {
			return err
		}
	}

	rate := 0
	if v.cfg.DetectionTests > 0 {
		rate = detections * 100 / v.cfg.DetectionTests
	}
	fmt.Fprintf(w, "\nDetection Rate: %d/%d (%d%%)\n", detections, v.cfg.DetectionTests, rate)
	return nil
}

// WorkloadInfo describes the workload profile.
func (v *Voice) WorkloadInfo(_ context.Context, w io.Writer) error {
	writeMarkdown(w, v.opts.Renderer, "Voice Recognition Workload Characteristics", []string{
		fmt.Sprintf("Real-time processing (<%dms latency)", v.cfg.FrameBudgetMS),
		"Matrix operations for neural network inference",
		"Continuous audio stream processing",
		"Sesotho language support (" + strings.Join(v.pipeline.Matcher().Keywords(), ", ") + ")",
		"Compute-intensive workload",
	})
	return nil
}

// Menu lists the voice routines.
func (v *Voice) Menu() menu.Menu {
	return menu.Menu{
		Title: "VOICE RECOGNITION WORKLOAD TEST",
		Items: []menu.Item{
			{Label: "Test Real-time Processing", Run: v.RealTime},
			{Label: "Test Keyword Detection", Run: v.KeywordDetection},
			{Label: "Show Workload Information", Run: v.WorkloadInfo},
		},
		Goodbye: "Exiting Voice Recognition Simulator. Goodbye!",
	}
}
