package hardware

import (
	"fmt"
	"time"
)

// MacSpec is one MacBook catalog row.
type MacSpec struct {
	Model         string    `json:"model"`
	Chip          string    `json:"chip"`
	CoresCPU      int       `json:"cores_cpu"`
	CoresGPU      int       `json:"cores_gpu"`
	RAMGB         int       `json:"ram_gb"`
	StorageGB     int       `json:"storage_gb"`
	DisplayInches float64   `json:"display_inches"`
	DisplayNits   int       `json:"display_nits"`
	RefreshHz     int       `json:"refresh_hz"`
	WeightKg      float64   `json:"weight_kg"`
	Ports         string    `json:"ports"`
	MSRP          int       `json:"msrp_aed"`
	LaunchDate    time.Time `json:"launch_date"`
	BatteryWh     float64   `json:"battery_wh"`
	Wifi          string    `json:"wifi"`
}

// Signature identifies a configuration for tier de-duplication.
func (m MacSpec) Signature() string {
	return fmt.Sprintf("%s_%d_%d", m.Model, m.RAMGB, m.StorageGB)
}

// Priced reports whether the catalog row carries a list price.
func (m MacSpec) Priced() bool {
	return m.MSRP > 0
}
