package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration values are within acceptable ranges.
// Zero-valued counts fall back to defaults; negative ones are rejected.
func (c *Config) Validate() error {
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if level == "" {
		c.Log.Level = "info"
	} else {
		validLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[level] {
			return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
		}
		c.Log.Level = level
	}

	if c.Sim.Pace < 0 {
		return fmt.Errorf("sim.pace must not be negative, got %f", c.Sim.Pace)
	}

	if err := c.validateVoice(); err != nil {
		return err
	}
	if err := c.validateConnectivity(); err != nil {
		return err
	}
	return c.validateBiometric()
}

func (c *Config) validateVoice() error {
	v := &c.Voice
	defaults := DefaultConfig().Voice

	if len(v.Keywords) == 0 {
		return fmt.Errorf("voice.keywords must not be empty")
	}
	for i, kw := range v.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("voice.keywords[%d] must not be empty", i)
		}
	}
	if v.Threshold < 0 {
		return fmt.Errorf("voice.threshold must not be negative, got %f", v.Threshold)
	}

	ints := []struct {
		name string
		val  *int
		def  int
	}{
		{"voice.buffer_size", &v.BufferSize, defaults.BufferSize},
		{"voice.feature_size", &v.FeatureSize, defaults.FeatureSize},
		{"voice.frames", &v.Frames, defaults.Frames},
		{"voice.frame_budget_ms", &v.FrameBudgetMS, defaults.FrameBudgetMS},
		{"voice.detection_tests", &v.DetectionTests, defaults.DetectionTests},
	}
	for _, f := range ints {
		if err := positiveOrDefault(f.name, f.val, f.def); err != nil {
			return err
		}
	}
	if v.FrameGapMS < 0 || v.DetectionGapMS < 0 {
		return fmt.Errorf("voice gaps must not be negative")
	}
	return nil
}

func (c *Config) validateConnectivity() error {
	cc := &c.Connectivity
	if _, err := c.PolicyTable(); err != nil {
		return fmt.Errorf("connectivity.policies: %w", err)
	}
	if err := positiveOrDefault("connectivity.decision_budget_us", &cc.DecisionBudgetUS, DefaultConfig().Connectivity.DecisionBudgetUS); err != nil {
		return err
	}
	if cc.ScenarioGapMS < 0 {
		return fmt.Errorf("connectivity.scenario_gap_ms must not be negative, got %d", cc.ScenarioGapMS)
	}
	return nil
}

func (c *Config) validateBiometric() error {
	b := &c.Biometric
	defaults := DefaultConfig().Biometric

	if len(b.Users) == 0 {
		return fmt.Errorf("biometric.users must not be empty")
	}
	for id := range b.Users {
		if id != strings.ToLower(id) {
			return fmt.Errorf("biometric.users: id %q must be lower case", id)
		}
	}
	rates := map[string]float64{
		"biometric.voice_rate": b.VoiceRate,
		"biometric.pin_rate":   b.PINRate,
		"biometric.quick_rate": b.QuickRate,
	}
	for name, r := range rates {
		if r < 0 || r > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %f", name, r)
		}
	}
	if err := positiveOrDefault("biometric.stress_attempts", &b.StressAttempts, defaults.StressAttempts); err != nil {
		return err
	}
	if err := positiveOrDefault("biometric.auth_budget_ms", &b.AuthBudgetMS, defaults.AuthBudgetMS); err != nil {
		return err
	}
	if b.StressGapMS < 0 {
		return fmt.Errorf("biometric.stress_gap_ms must not be negative, got %d", b.StressGapMS)
	}
	if _, err := c.UserStore(); err != nil {
		return fmt.Errorf("biometric.users: %w", err)
	}
	return nil
}

func positiveOrDefault(name string, val *int, def int) error {
	if *val < 0 {
		return fmt.Errorf("%s must not be negative, got %d", name, *val)
	}
	if *val == 0 {
		*val = def
	}
	return nil
}
