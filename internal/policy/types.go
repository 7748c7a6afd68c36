package policy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTier is returned when a tier has no policy in the table.
var ErrUnknownTier = errors.New("unknown trust tier")

// Tier is a named trust category.
type Tier string

const (
	TierHomeTrusted   Tier = "home_trusted"
	TierPublicTrusted Tier = "public_trusted"
	TierUntrusted     Tier = "untrusted"
	TierEmergency     Tier = "emergency"
)

// Tiers lists every tier the evaluator can produce.
var Tiers = []Tier{TierHomeTrusted, TierPublicTrusted, TierUntrusted, TierEmergency}

// SecurityLevel orders policies from most to least permissive.
type SecurityLevel int

const (
	LevelLow SecurityLevel = iota + 1
	LevelMedium
	LevelHigh
	LevelCritical
)

func (l SecurityLevel) String() string {
	switch l {
	case LevelLow:
		return "LOW"
	case LevelMedium:
		return "MEDIUM"
	case LevelHigh:
		return "HIGH"
	case LevelCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(l))
	}
}

// ParseSecurityLevel maps a config name to a level.
func ParseSecurityLevel(name string) (SecurityLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LOW":
		return LevelLow, nil
	case "MEDIUM":
		return LevelMedium, nil
	case "HIGH":
		return LevelHigh, nil
	case "CRITICAL", "EMERGENCY":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("unknown security level %q", name)
	}
}

// Policy is the access bundle attached to a tier.
type Policy struct {
	Level       SecurityLevel
	RequirePIN  bool
	DataLimitMB int
	Connection  string
}

// Access is the per-network verdict.
type Access string

const (
	AccessFull       Access = "FULL"
	AccessLimited    Access = "LIMITED"
	AccessAvoid      Access = "AVOID"
	AccessRestricted Access = "RESTRICTED"
	AccessBlocked    Access = "BLOCKED"
	AccessEmergency  Access = "EMERGENCY"
)

// Allowed reports whether the device may join the network.
func (a Access) Allowed() bool {
	switch a {
	case AccessFull, AccessLimited, AccessRestricted, AccessEmergency:
		return true
	default:
		return false
	}
}

// Decision is the verdict for one network.
type Decision struct {
	Network string
	Access  Access
	Note    string
}

// Input is one environment observation.
type Input struct {
	Location string
	Devices  []string
	Networks []string
}

// Result bundles the three evaluation steps.
type Result struct {
	Tier         Tier
	TrustedCount int
	Policy       Policy
	Decisions    []Decision
}
