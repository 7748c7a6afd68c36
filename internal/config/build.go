package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/MEKXH/workloadsim/internal/auth"
	"github.com/MEKXH/workloadsim/internal/policy"
	"github.com/MEKXH/workloadsim/internal/voice"
)

// PolicyTable converts the configured policies into an immutable table.
func (c *Config) PolicyTable() (policy.Table, error) {
	rules := make(map[policy.Tier]policy.Policy, len(c.Connectivity.Policies))
	for name, pc := range c.Connectivity.Policies {
		level, err := policy.ParseSecurityLevel(pc.Level)
		if err != nil {
			return policy.Table{}, fmt.Errorf("tier %s: %w", name, err)
		}
		rules[policy.Tier(strings.ToLower(strings.TrimSpace(name)))] = policy.Policy{
			Level:       level,
			RequirePIN:  pc.RequirePIN,
			DataLimitMB: pc.DataLimitMB,
			Connection:  pc.Connection,
		}
	}
	return policy.NewTable(rules)
}

// UserStore converts the configured users into an immutable profile store.
func (c *Config) UserStore() (*auth.Store, error) {
	profiles := make(map[string]auth.Profile, len(c.Biometric.Users))
	for id, u := range c.Biometric.Users {
		profiles[id] = auth.Profile{
			VoicePrint:     u.VoicePrint,
			PIN:            u.PIN,
			TrustedDevices: u.TrustedDevices,
		}
	}
	return auth.NewStore(profiles)
}

// Rates returns the synthetic factor pass rates.
func (c *Config) Rates() auth.Rates {
	return auth.Rates{
		Voice: c.Biometric.VoiceRate,
		PIN:   c.Biometric.PINRate,
		Quick: c.Biometric.QuickRate,
	}
}

// KeywordMatcher builds the keyword models and matcher.
func (c *Config) KeywordMatcher() (*voice.Matcher, error) {
	models := voice.BuildModels(c.Voice.Keywords, c.Voice.FeatureSize)
	return voice.NewMatcher(models, c.Voice.Threshold)
}

// Millis converts a millisecond setting into a duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
