package compat

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

// missingPortPenalty is subtracted from the port score per missing port.
const missingPortPenalty = 0.15

// PortCompatibility summarises which common Windows ports a Mac lacks.
type PortCompatibility struct {
	NeedsHub          bool     `json:"needs_hub"`
	MissingPorts      []string `json:"missing_ports"`
	AvailablePorts    []string `json:"available_ports"`
	HubRecommendation string   `json:"hub_recommendation"`
	Score             float64  `json:"score"`
}

// CheckPorts parses the Mac's free-text port list.
func CheckPorts(mac hardware.MacSpec) PortCompatibility {
	ports := strings.ToUpper(mac.Ports)
	has := func(tokens ...string) bool {
		for _, t := range tokens {
			if strings.Contains(ports, t) {
				return true
			}
		}
		return false
	}

	available := []string{}
	if has("HDMI") {
		available = append(available, "HDMI")
	}
	if has("USB-A", "USB 3") {
		available = append(available, "USB-A")
	}
	if has("USB-C", "TB", "THUNDERBOLT") {
		available = append(available, "USB-C", "Thunderbolt")
	}
	if has("ETHERNET", "RJ-45") {
		available = append(available, "Ethernet")
	}
	if has("SD") {
		available = append(available, "SD Card")
	}

	missing := []string{}
	if !has("HDMI", "THUNDERBOLT") {
		missing = append(missing, "HDMI")
	}
	if !has("USB-A", "USB 3") {
		missing = append(missing, "USB-A")
	}
	if !has("ETHERNET", "RJ-45") {
		missing = append(missing, "Ethernet")
	}

	pc := PortCompatibility{
		NeedsHub:          len(missing) > 0,
		MissingPorts:      missing,
		AvailablePorts:    available,
		HubRecommendation: "No hub needed - all ports available",
		Score:             max(0, 1.0-missingPortPenalty*float64(len(missing))),
	}
	if pc.NeedsHub {
		pc.HubRecommendation = fmt.Sprintf("Recommended: USB-C Hub with %s - AED 150-300", strings.Join(missing, ", "))
	}
	return pc
}
