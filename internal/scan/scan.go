// Package scan fabricates the radio environment the simulators react to.
package scan

import "github.com/MEKXH/workloadsim/internal/sensor"

// Connectivity test locations.
const (
	LocationHome         = "Home"
	LocationOffice       = "Office"
	LocationPublicCafe   = "Public Cafe"
	LocationShoppingMall = "Shopping Mall"
	LocationAirport      = "Airport"
	LocationRural        = "Rural Area"
)

// Locations is the multi-scenario tour order.
var Locations = []string{
	LocationHome,
	LocationOffice,
	LocationPublicCafe,
	LocationShoppingMall,
	LocationAirport,
	LocationRural,
}

// CellularBackup is appended to every network scan.
const CellularBackup = "Cellular_Data"

var networksByLocation = map[string][]string{
	LocationHome:         {"Home_WiFi_5G", "Home_WiFi_2G", "Neighbor_WiFi"},
	LocationOffice:       {"Office_Secure", "Office_Guest", "Conference_Room"},
	LocationPublicCafe:   {"Cafe_Free_WiFi", "Cafe_Premium", "Public_Hotspot"},
	LocationShoppingMall: {"Mall_Free", "Store_WiFi", "FoodCourt_Network"},
	LocationAirport:      {"Airport_Free", "Airport_Premium", "Airline_Lounge"},
}

var ruralNetworks = []string{"Cellular_4G", "Cellular_3G"}

// Networks lists the visible networks for location, cellular backup last.
// Unknown locations see only cellular coverage.
func Networks(location string) []string {
	base, ok := networksByLocation[location]
	if !ok {
		base = ruralNetworks
	}
	out := make([]string, 0, len(base)+1)
	out = append(out, base...)
	return append(out, CellularBackup)
}

// Devices draws the nearby device list for location.
func Devices(src sensor.Source, location string) []string {
	var devices []string
	roll := func() int { return src.IntN(4) }

	switch location {
	case LocationHome:
		devices = append(devices, "home_wifi", "smart_tv")
		if roll() > 1 {
			devices = append(devices, "car_system")
		}
	case LocationOffice:
		devices = append(devices, "office_bt")
		if roll() > 1 {
			devices = append(devices, "printer_01")
		}
	}

	if roll() > 0 {
		devices = append(devices, "unknown_device_1")
	}
	if roll() > 1 {
		devices = append(devices, "strange_bt_device")
	}
	return devices
}
