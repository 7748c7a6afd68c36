package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/MEKXH/workloadsim/internal/menu"
	"github.com/MEKXH/workloadsim/internal/policy"
	"github.com/MEKXH/workloadsim/internal/scan"
)

// batteryProbeLocation is not a known location, so battery scans see only cellular coverage.
const batteryProbeLocation = "Test"

// Connectivity drives the context-aware network policy engine.
type Connectivity struct {
	cfg       config.ConnectivityConfig
	evaluator policy.Evaluator
	table     policy.Table
	opts      Options
}

// NewConnectivity builds the policy table and evaluator from cfg.
func NewConnectivity(cfg *config.Config, opts Options) (*Connectivity, error) {
	table, err := cfg.PolicyTable()
	if err != nil {
		return nil, fmt.Errorf("policy table: %w", err)
	}
	return &Connectivity{
		cfg:       cfg.Connectivity,
		evaluator: policy.NewEvaluator(cfg.Connectivity.TrustedDevices, table),
		table:     table,
		opts:      opts.withDefaults(),
	}, nil
}

// Intro prints the policy initialization banner.
func (c *Connectivity) Intro(w io.Writer) {
	fmt.Fprintln(w, "Initializing Security Policies...")
	fmt.Fprintf(w, "  - %d security levels configured\n", c.table.Len())
	fmt.Fprintln(w, "  - Context-aware rules active")
	fmt.Fprintln(w, "Initializing Intelligent Connectivity Simulator...")
	fmt.Fprintln(w, "Focus: Context-aware network decisions for African markets")
}

// TestEnvironment returns a routine that evaluates a single location.
func (c *Connectivity) TestEnvironment(location string) func(context.Context, io.Writer) error {
	return func(_ context.Context, w io.Writer) error {
		return c.testEnvironment(w, location)
	}
}

func (c *Connectivity) testEnvironment(w io.Writer, location string) error {
	log := newRun(c.opts.Logger, "connectivity.environment")
	section(w, "Testing Environment: "+location)

	start := c.opts.Now()

	input := policy.Input{
		Location: location,
		Networks: scan.Networks(location),
		Devices:  scan.Devices(c.opts.Source, location),
	}
	fmt.Fprintf(w, "Available networks: %s\n", joinDevices(input.Networks))
	fmt.Fprintf(w, "Nearby devices: %s\n", joinDevices(input.Devices))

	result, err := c.evaluator.Evaluate(input)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", location, err)
	}
	writePolicy(w, result.Policy)
	writeDecisions(w, result.Decisions)

	elapsed := c.opts.Now().Sub(start)
	budget := time.Duration(c.cfg.DecisionBudgetUS) * time.Microsecond
	over := elapsed > budget
	c.opts.Metrics.Record("decision", elapsed, over)

	fmt.Fprintf(w, "Context decision time: %dus\n", elapsed.Microseconds())
	if over {
		fmt.Fprintln(w, warnStyle.Render("Slow decision making detected"))
	}

	log.Debug("environment evaluated",
		"location", location,
		"tier", result.Tier,
		"trusted_devices", result.TrustedCount,
		"latency", elapsed,
	)
	return nil
}

func writePolicy(w io.Writer, p policy.Policy) {
	pin := "NO"
	if p.RequirePIN {
		pin = "YES"
	}
	fmt.Fprintln(w, "Security Policy Applied:")
	fmt.Fprintf(w, "   - Level: %s\n", p.Level)
	fmt.Fprintf(w, "   - PIN Required: %s\n", pin)
	fmt.Fprintf(w, "   - Data Limit: %dMB\n", p.DataLimitMB)
	fmt.Fprintf(w, "   - Connection: %s\n", p.Connection)
}

func writeDecisions(w io.Writer, decisions []policy.Decision) {
	fmt.Fprintln(w, "Connectivity Decisions:")
	for _, d := range decisions {
		verdict := string(d.Access)
		switch {
		case d.Access.Allowed():
			verdict = okStyle.Render(verdict)
		case d.Access == policy.AccessBlocked:
			verdict = failStyle.Render(verdict)
		}
		line := fmt.Sprintf("   %s: %s", verdict, d.Network)
		if d.Note != "" {
			line += " (" + d.Note + ")"
		}
		fmt.Fprintln(w, line)
	}
}

// MultipleScenarios tours every location with a pause between them.
func (c *Connectivity) MultipleScenarios(ctx context.Context, w io.Writer) error {
	section(w, "Multiple Scenario Test")
	fmt.Fprintln(w, "Testing connectivity across different environments...")

	for _, location := range scan.Locations {
		if err := c.testEnvironment(w, location); err != nil {
			return err
		}
		if err := c.opts.Sleep(ctx, config.Millis(c.cfg.ScenarioGapMS)); err != nil {
			return err
		}
	}
	return nil
}

// BatteryOptimization compares scan intensity across power modes.
func (c *Connectivity) BatteryOptimization(ctx context.Context, w io.Writer) error {
	log := newRun(c.opts.Logger, "connectivity.battery")
	section(w, "Battery Optimization Test")
	fmt.Fprintln(w, "Testing power-efficient scanning strategies...")

	for _, mode := range scan.PowerModes {
		if err := ctx.Err(); err != nil {
			return err
		}
		subsection(w, "Power Mode: "+string(mode))

		start := c.opts.Now()
		var networks, devices []string
		for i := 0; i < mode.Passes(); i++ {
			networks = scan.Networks(batteryProbeLocation)
			devices = scan.Devices(c.opts.Source, batteryProbeLocation)
		}
		elapsed := c.opts.Now().Sub(start)
		c.opts.Metrics.Record("scan", elapsed, false)

		fmt.Fprintf(w, "Networks found: %d\n", len(networks))
		fmt.Fprintf(w, "Devices found: %d\n", len(devices))
		fmt.Fprintf(w, "Scan time: %dms\n", elapsed.Milliseconds())
		fmt.Fprintf(w, "Estimated battery impact: %d%%\n", mode.BatteryImpact())

		log.Debug("power mode scanned", "mode", mode, "passes", mode.Passes(), "latency", elapsed)
	}
	return nil
}

// WorkloadInfo describes the workload profile.
func (c *Connectivity) WorkloadInfo(_ context.Context, w io.Writer) error {
	writeMarkdown(w, c.opts.Renderer, "Intelligent Connectivity Workload Characteristics", []string{
		"Lightweight conditional logic",
		"Rule-based decision making",
		"Environment scanning and evaluation",
		"Low computational requirements",
		fmt.Sprintf("Fast response times (<%dms decisions)", c.cfg.DecisionBudgetUS/1000),
		"Battery-efficient operations",
	})
	return nil
}

// Menu lists the connectivity routines.
func (c *Connectivity) Menu() menu.Menu {
	return menu.Menu{
		Title: "INTELLIGENT CONNECTIVITY WORKLOAD TEST",
		Items: []menu.Item{
			{Label: "Test Home Environment", Run: c.TestEnvironment(scan.LocationHome)},
			{Label: "Test Office Environment", Run: c.TestEnvironment(scan.LocationOffice)},
			{Label: "Test Public Environment", Run: c.TestEnvironment(scan.LocationPublicCafe)},
			{Label: "Test Multiple Scenarios", Run: c.MultipleScenarios},
			{Label: "Test Battery Optimization", Run: c.BatteryOptimization},
			{Label: "Show Workload Information", Run: c.WorkloadInfo},
		},
		Goodbye: "Exiting Intelligent Connectivity Simulator. Goodbye!",
	}
}
