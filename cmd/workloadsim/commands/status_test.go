package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/MEKXH/workloadsim/internal/config"
	"gopkg.in/yaml.v3"
)

func TestStatusCommand_PrintsTables(t *testing.T) {
	isolateHome(t)
	configFile = ""

	output := captureOutput(t, func() {
		if err := runStatus(nil, nil); err != nil {
			t.Fatalf("runStatus error: %v", err)
		}
	})
	cleanOutput := stripANSI(output)

	for _, want := range []string{
		"Workloadsim Status",
		"Not found, using defaults",
		"Feta, Romela, Thusa",
		"TIER",
		"home_trusted",
		"FULL_ACCESS",
		"EMERGENCY_ONLY",
		"1000MB",
		"home_wifi, office_bt, car_system, personal_tablet",
		"matseliso",
		"voice=0.70 pin=0.80 quick=0.60",
	} {
		if !strings.Contains(cleanOutput, want) {
			t.Errorf("expected %q in status output:\n%s", want, cleanOutput)
		}
	}
}

func TestStatusCommand_YAML(t *testing.T) {
	tmpDir := isolateHome(t)
	path := filepath.Join(tmpDir, "sim.yaml")
	cfg := config.DefaultConfig()
	cfg.Connectivity.Policies["untrusted"] = config.PolicyConfig{Level: "critical", RequirePIN: true, DataLimitMB: 10, Connection: "LOCKED"}
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	configFile = path
	t.Cleanup(func() { configFile = "" })

	cmd := NewStatusCmd()
	if err := cmd.Flags().Set("yaml", "true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	output := captureOutput(t, func() {
		if err := runStatus(cmd, nil); err != nil {
			t.Fatalf("runStatus error: %v", err)
		}
	})

	var report statusReport
	if err := yaml.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("status output is not YAML: %v\n%s", err, output)
	}
	if !report.ConfigFound || report.Config != path {
		t.Fatalf("unexpected config fields: %+v", report)
	}
	if len(report.Policies) != 4 {
		t.Fatalf("expected 4 policies, got %d", len(report.Policies))
	}
	untrusted := report.Policies[2]
	if untrusted.Tier != "untrusted" || untrusted.Level != "CRITICAL" || untrusted.Connection != "LOCKED" {
		t.Fatalf("unexpected untrusted policy: %+v", untrusted)
	}
	if len(report.Users) != 3 || report.Users[0].ID != "matseliso" {
		t.Fatalf("expected sorted users, got %+v", report.Users)
	}
}
