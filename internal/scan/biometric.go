package scan

// Authentication context environments.
const (
	EnvHome    = "Home"
	EnvOffice  = "Office"
	EnvPublic  = "Public"
	EnvUnknown = "Unknown"
)

// Environments is the context-awareness tour order.
var Environments = []string{EnvHome, EnvOffice, EnvPublic, EnvUnknown}

// BiometricSweep is the fixed result of a general device sweep before authentication.
func BiometricSweep() []string {
	return []string{"home_bt", "unknown_device", "office_wifi", "car_bt"}
}

// ContextDevices returns the devices seen in an authentication environment.
func ContextDevices(env string) []string {
	switch env {
	case EnvHome:
		return []string{"home_bt", "car_bt", "tv_system"}
	case EnvOffice:
		return []string{"office_wifi", "printer_bt"}
	case EnvPublic:
		return []string{"public_wifi", "unknown_device1"}
	default:
		return []string{"strange_device", "unknown_network"}
	}
}
