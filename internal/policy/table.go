package policy

import "fmt"

// Table is an immutable tier to policy mapping.
type Table struct {
	rules map[Tier]Policy
}

// NewTable copies rules and requires a policy for every tier in Tiers.
func NewTable(rules map[Tier]Policy) (Table, error) {
	copied := make(map[Tier]Policy, len(rules))
	for tier, p := range rules {
		if p.Level < LevelLow || p.Level > LevelCritical {
			return Table{}, fmt.Errorf("tier %s: invalid security level %s", tier, p.Level)
		}
		copied[tier] = p
	}
	for _, tier := range Tiers {
		if _, ok := copied[tier]; !ok {
			return Table{}, fmt.Errorf("tier %s: %w", tier, ErrUnknownTier)
		}
	}
	return Table{rules: copied}, nil
}

// DefaultRules returns the built-in policy set.
func DefaultRules() map[Tier]Policy {
	return map[Tier]Policy{
		TierHomeTrusted:   {Level: LevelLow, RequirePIN: false, DataLimitMB: 1000, Connection: "FULL_ACCESS"},
		TierPublicTrusted: {Level: LevelMedium, RequirePIN: true, DataLimitMB: 500, Connection: "LIMITED_ACCESS"},
		TierUntrusted:     {Level: LevelHigh, RequirePIN: true, DataLimitMB: 100, Connection: "RESTRICTED"},
		TierEmergency:     {Level: LevelCritical, RequirePIN: true, DataLimitMB: 50, Connection: "EMERGENCY_ONLY"},
	}
}

// Lookup returns the policy for tier.
func (t Table) Lookup(tier Tier) (Policy, error) {
	p, ok := t.rules[tier]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return p, nil
}

// Len returns the number of configured tiers.
func (t Table) Len() int {
	return len(t.rules)
}
