package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config root configuration
type Config struct {
	Log          LogConfig          `mapstructure:"log" json:"log" yaml:"log"`
	Sim          SimConfig          `mapstructure:"sim" json:"sim" yaml:"sim"`
	Voice        VoiceConfig        `mapstructure:"voice" json:"voice" yaml:"voice"`
	Connectivity ConnectivityConfig `mapstructure:"connectivity" json:"connectivity" yaml:"connectivity"`
	Biometric    BiometricConfig    `mapstructure:"biometric" json:"biometric" yaml:"biometric"`
}

// LogConfig application logging settings
type LogConfig struct {
	Level string `mapstructure:"level" json:"level" yaml:"level"`
	File  string `mapstructure:"file" json:"file" yaml:"file"`
}

// SimConfig shared simulator settings
type SimConfig struct {
	Seed int64   `mapstructure:"seed" json:"seed" yaml:"seed"` // 0 seeds from the clock
	Pace float64 `mapstructure:"pace" json:"pace" yaml:"pace"` // sleep multiplier, 0 disables sleeps
}

// VoiceConfig keyword-spotting pipeline settings
type VoiceConfig struct {
	Keywords       []string `mapstructure:"keywords" json:"keywords" yaml:"keywords"`
	Threshold      float64  `mapstructure:"threshold" json:"threshold" yaml:"threshold"`
	BufferSize     int      `mapstructure:"buffer_size" json:"buffer_size" yaml:"buffer_size"`
	FeatureSize    int      `mapstructure:"feature_size" json:"feature_size" yaml:"feature_size"`
	Frames         int      `mapstructure:"frames" json:"frames" yaml:"frames"`
	FrameBudgetMS  int      `mapstructure:"frame_budget_ms" json:"frame_budget_ms" yaml:"frame_budget_ms"`
	FrameGapMS     int      `mapstructure:"frame_gap_ms" json:"frame_gap_ms" yaml:"frame_gap_ms"`
	DetectionTests int      `mapstructure:"detection_tests" json:"detection_tests" yaml:"detection_tests"`
	DetectionGapMS int      `mapstructure:"detection_gap_ms" json:"detection_gap_ms" yaml:"detection_gap_ms"`
}

// PolicyConfig access policy for one trust tier
type PolicyConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level"`
	RequirePIN  bool   `mapstructure:"require_pin" json:"require_pin" yaml:"require_pin"`
	DataLimitMB int    `mapstructure:"data_limit_mb" json:"data_limit_mb" yaml:"data_limit_mb"`
	Connection  string `mapstructure:"connection" json:"connection" yaml:"connection"`
}

// ConnectivityConfig policy engine settings
type ConnectivityConfig struct {
	TrustedDevices   []string                `mapstructure:"trusted_devices" json:"trusted_devices" yaml:"trusted_devices"`
	Policies         map[string]PolicyConfig `mapstructure:"policies" json:"policies" yaml:"policies"`
	DecisionBudgetUS int                     `mapstructure:"decision_budget_us" json:"decision_budget_us" yaml:"decision_budget_us"`
	ScenarioGapMS    int                     `mapstructure:"scenario_gap_ms" json:"scenario_gap_ms" yaml:"scenario_gap_ms"`
}

// UserConfig enrolled user
type UserConfig struct {
	VoicePrint     string   `mapstructure:"voice_print" json:"voice_print" yaml:"voice_print"`
	PIN            string   `mapstructure:"pin" json:"pin" yaml:"pin"`
	TrustedDevices []string `mapstructure:"trusted_devices" json:"trusted_devices" yaml:"trusted_devices"`
}

// BiometricConfig authenticator settings
type BiometricConfig struct {
	Users          map[string]UserConfig `mapstructure:"users" json:"users" yaml:"users"`
	VoiceRate      float64               `mapstructure:"voice_rate" json:"voice_rate" yaml:"voice_rate"`
	PINRate        float64               `mapstructure:"pin_rate" json:"pin_rate" yaml:"pin_rate"`
	QuickRate      float64               `mapstructure:"quick_rate" json:"quick_rate" yaml:"quick_rate"`
	StressAttempts int                   `mapstructure:"stress_attempts" json:"stress_attempts" yaml:"stress_attempts"`
	StressGapMS    int                   `mapstructure:"stress_gap_ms" json:"stress_gap_ms" yaml:"stress_gap_ms"`
	AuthBudgetMS   int                   `mapstructure:"auth_budget_ms" json:"auth_budget_ms" yaml:"auth_budget_ms"`
}

// DefaultConfig returns config with the reference device settings
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		Sim: SimConfig{
			Seed: 0,
			Pace: 1.0,
		},
		Voice: VoiceConfig{
			Keywords:       []string{"Feta", "Romela", "Thusa"},
			Threshold:      0.85,
			BufferSize:     1024,
			FeatureSize:    256,
			Frames:         8,
			FrameBudgetMS:  100,
			FrameGapMS:     50,
			DetectionTests: 10,
			DetectionGapMS: 20,
		},
		Connectivity: ConnectivityConfig{
			TrustedDevices: []string{"home_wifi", "office_bt", "car_system", "personal_tablet"},
			Policies: map[string]PolicyConfig{
				"home_trusted":   {Level: "LOW", RequirePIN: false, DataLimitMB: 1000, Connection: "FULL_ACCESS"},
				"public_trusted": {Level: "MEDIUM", RequirePIN: true, DataLimitMB: 500, Connection: "LIMITED_ACCESS"},
				"untrusted":      {Level: "HIGH", RequirePIN: true, DataLimitMB: 100, Connection: "RESTRICTED"},
				"emergency":      {Level: "CRITICAL", RequirePIN: true, DataLimitMB: 50, Connection: "EMERGENCY_ONLY"},
			},
			DecisionBudgetUS: 5000,
			ScenarioGapMS:    500,
		},
		Biometric: BiometricConfig{
			Users: map[string]UserConfig{
				"thabo":      {VoicePrint: "voice_hash_1234", PIN: "5678", TrustedDevices: []string{"home_bt", "car_bt"}},
				"matseliso":  {VoicePrint: "voice_hash_5678", PIN: "1234", TrustedDevices: []string{"office_wifi"}},
				"ntate_john": {VoicePrint: "voice_hash_9012", PIN: "4321", TrustedDevices: []string{"home_bt", "personal_device"}},
			},
			VoiceRate:      0.7,
			PINRate:        0.8,
			QuickRate:      0.6,
			StressAttempts: 5,
			StressGapMS:    100,
			AuthBudgetMS:   2000,
		},
	}
}

// ConfigDir returns the workloadsim config directory
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".workloadsim")
}

// ConfigPath returns the default config file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load reads path (or the default path when empty) over the defaults.
// A missing file is not an error; nothing is written. Viper folds map keys to
// lower case, so user ids and tier names are case-insensitive and stored lower.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, cfg.Validate()
		}
		return cfg, fmt.Errorf("stat config %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}
	v.SetEnvPrefix("WORKLOADSIM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}

	// Tables named in the file replace the defaults instead of merging into them.
	if v.IsSet("connectivity.policies") {
		cfg.Connectivity.Policies = nil
	}
	if v.IsSet("biometric.users") {
		cfg.Biometric.Users = nil
	}

	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.MatchName = func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		}
	}); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func normalizeKey(input string) string {
	input = strings.ReplaceAll(input, "_", "")
	input = strings.ReplaceAll(input, "-", "")
	return strings.ToLower(input)
}

// Save saves config to the default path
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo writes cfg to path, as YAML for .yaml/.yml files and indented JSON otherwise
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
