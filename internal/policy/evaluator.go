package policy

import "strings"

// Well-known locations with dedicated trust rules.
const (
	LocationHome   = "Home"
	LocationOffice = "Office"
	LocationRural  = "Rural Area"
)

// CellularNetwork is the only network allowed under HIGH and CRITICAL policies.
const CellularNetwork = "Cellular_Data"

// Evaluator performs pure connectivity decisions.
type Evaluator struct {
	trusted map[string]struct{}
	table   Table
}

// NewEvaluator builds a deterministic, side-effect free evaluator.
func NewEvaluator(trustedDevices []string, table Table) Evaluator {
	trusted := make(map[string]struct{}, len(trustedDevices))
	for _, device := range trustedDevices {
		device = strings.TrimSpace(device)
		if device == "" {
			continue
		}
		trusted[device] = struct{}{}
	}
	return Evaluator{trusted: trusted, table: table}
}

// TrustedCount returns how many distinct devices are in the trusted set.
func (e Evaluator) TrustedCount(devices []string) int {
	seen := make(map[string]struct{}, len(devices))
	count := 0
	for _, device := range devices {
		if _, dup := seen[device]; dup {
			continue
		}
		seen[device] = struct{}{}
		if _, ok := e.trusted[device]; ok {
			count++
		}
	}
	return count
}

// TrustLevel maps nearby devices and location to a tier. First match wins.
func (e Evaluator) TrustLevel(devices []string, location string) Tier {
	count := e.TrustedCount(devices)

	switch {
	case location == LocationHome && count >= 2:
		return TierHomeTrusted
	case location == LocationOffice && count >= 1:
		return TierPublicTrusted
	case count >= 1:
		return TierPublicTrusted
	case location == LocationRural:
		return TierEmergency
	default:
		return TierUntrusted
	}
}

// ApplyPolicy looks up the policy for tier.
func (e Evaluator) ApplyPolicy(tier Tier) (Policy, error) {
	return e.table.Lookup(tier)
}

// Decide classifies each network under p, preserving input order.
func (e Evaluator) Decide(networks []string, p Policy) []Decision {
	decisions := make([]Decision, 0, len(networks))
	for _, network := range networks {
		decisions = append(decisions, decide(network, p.Level))
	}
	return decisions
}

func decide(network string, level SecurityLevel) Decision {
	switch level {
	case LevelLow:
		return Decision{Network: network, Access: AccessFull, Note: "trusted"}
	case LevelMedium:
		if strings.Contains(network, "Secure") || strings.Contains(network, "Office") {
			return Decision{Network: network, Access: AccessLimited, Note: "secured"}
		}
		return Decision{Network: network, Access: AccessAvoid, Note: "unsecured"}
	case LevelHigh:
		if network == CellularNetwork {
			return Decision{Network: network, Access: AccessRestricted, Note: "cellular"}
		}
		return Decision{Network: network, Access: AccessBlocked, Note: "untrusted"}
	case LevelCritical:
		if network == CellularNetwork {
			return Decision{Network: network, Access: AccessEmergency, Note: "minimal"}
		}
		return Decision{Network: network, Access: AccessBlocked}
	default:
		return Decision{Network: network, Access: AccessBlocked, Note: "unknown security level"}
	}
}

// Evaluate runs trust evaluation, policy lookup and network decisions.
func (e Evaluator) Evaluate(input Input) (Result, error) {
	tier := e.TrustLevel(input.Devices, input.Location)
	p, err := e.ApplyPolicy(tier)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Tier:         tier,
		TrustedCount: e.TrustedCount(input.Devices),
		Policy:       p,
		Decisions:    e.Decide(input.Networks, p),
	}, nil
}
