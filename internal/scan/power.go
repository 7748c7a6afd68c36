package scan

import "fmt"

// PowerMode controls how many scan passes a sweep performs.
type PowerMode string

const (
	PowerHigh      PowerMode = "HIGH_POWER"
	PowerBalanced  PowerMode = "BALANCED"
	PowerLow       PowerMode = "LOW_POWER"
	PowerUltraSave PowerMode = "ULTRA_SAVE"
)

// PowerModes is the battery test order.
var PowerModes = []PowerMode{PowerHigh, PowerBalanced, PowerLow, PowerUltraSave}

// Passes returns the scan intensity for the mode.
func (m PowerMode) Passes() int {
	switch m {
	case PowerHigh:
		return 4
	case PowerBalanced:
		return 2
	case PowerLow:
		return 1
	default:
		return 0
	}
}

// BatteryImpact is the estimated battery cost in percent.
func (m PowerMode) BatteryImpact() int {
	return m.Passes() * 10
}

// ParsePowerMode accepts the mode names above.
func ParsePowerMode(name string) (PowerMode, error) {
	for _, m := range PowerModes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown power mode %q", name)
}
