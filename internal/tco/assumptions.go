package tco

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Assumptions is the flat cost-assumption record. Field names on the wire
// are snake_case and matched case-insensitively.
type Assumptions struct {
	Region                      string  `json:"region" yaml:"region" mapstructure:"region"`
	PowerCostPerKWh             float64 `json:"power_cost_aed_per_kwh" yaml:"power_cost_aed_per_kwh" mapstructure:"power_cost_aed_per_kwh"`
	WorkHoursPerDay             float64 `json:"work_hours_per_day" yaml:"work_hours_per_day" mapstructure:"work_hours_per_day"`
	WorkdaysPerYear             float64 `json:"workdays_per_year" yaml:"workdays_per_year" mapstructure:"workdays_per_year"`
	WindowsAvgWatts             float64 `json:"windows_avg_watts" yaml:"windows_avg_watts" mapstructure:"windows_avg_watts"`
	MacAvgWatts                 float64 `json:"mac_avg_watts" yaml:"mac_avg_watts" mapstructure:"mac_avg_watts"`
	WindowsLicensing            float64 `json:"windows_licensing_aed" yaml:"windows_licensing_aed" mapstructure:"windows_licensing_aed"`
	SecuritySuitePerYear        float64 `json:"security_suite_aed_per_year" yaml:"security_suite_aed_per_year" mapstructure:"security_suite_aed_per_year"`
	MDMCostPerYear              float64 `json:"mdm_cost_aed_per_year" yaml:"mdm_cost_aed_per_year" mapstructure:"mdm_cost_aed_per_year"`
	HelpdeskHoursPerYear        float64 `json:"helpdesk_hours_per_year" yaml:"helpdesk_hours_per_year" mapstructure:"helpdesk_hours_per_year"`
	HelpdeskCostPerHour         float64 `json:"helpdesk_cost_aed_per_hour" yaml:"helpdesk_cost_aed_per_hour" mapstructure:"helpdesk_cost_aed_per_hour"`
	MacResalePct                float64 `json:"mac_resale_value_pct" yaml:"mac_resale_value_pct" mapstructure:"mac_resale_value_pct"`
	PCResalePct                 float64 `json:"pc_resale_value_pct" yaml:"pc_resale_value_pct" mapstructure:"pc_resale_value_pct"`
	MacProductivityGainPct      float64 `json:"mac_productivity_gain_pct" yaml:"mac_productivity_gain_pct" mapstructure:"mac_productivity_gain_pct"`
	MacHelpdeskReductionPct     float64 `json:"mac_helpdesk_reduction_pct" yaml:"mac_helpdesk_reduction_pct" mapstructure:"mac_helpdesk_reduction_pct"`
	WindowsDowntimeHoursPerYear float64 `json:"windows_downtime_hours_per_year" yaml:"windows_downtime_hours_per_year" mapstructure:"windows_downtime_hours_per_year"`
	MacDowntimeHoursPerYear     float64 `json:"mac_downtime_hours_per_year" yaml:"mac_downtime_hours_per_year" mapstructure:"mac_downtime_hours_per_year"`
	HourlyProductivityValue     float64 `json:"hourly_productivity_value_aed" yaml:"hourly_productivity_value_aed" mapstructure:"hourly_productivity_value_aed"`
	MacSecurityAdvantagePct     float64 `json:"mac_security_advantage_pct" yaml:"mac_security_advantage_pct" mapstructure:"mac_security_advantage_pct"`
	MacMinutesSavedPerDay       float64 `json:"mac_minutes_saved_per_day" yaml:"mac_minutes_saved_per_day" mapstructure:"mac_minutes_saved_per_day"`
}

// DefaultAssumptions returns the UAE baseline used when no assumptions file exists.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Region:                      "UAE",
		PowerCostPerKWh:             0.30,
		WorkHoursPerDay:             8,
		WorkdaysPerYear:             240,
		WindowsAvgWatts:             35,
		MacAvgWatts:                 15,
		WindowsLicensing:            0,
		SecuritySuitePerYear:        250,
		MDMCostPerYear:              0,
		HelpdeskHoursPerYear:        3,
		HelpdeskCostPerHour:         120,
		MacResalePct:                0.50,
		PCResalePct:                 0.15,
		MacProductivityGainPct:      0.06,
		MacHelpdeskReductionPct:     0.40,
		WindowsDowntimeHoursPerYear: 8,
		MacDowntimeHoursPerYear:     2,
		HourlyProductivityValue:     50,
		MacSecurityAdvantagePct:     0.30,
		MacMinutesSavedPerDay:       10,
	}
}

// DecodeAssumptions overlays a flat key/value record onto the defaults.
// Keys absent from raw keep their default value; numeric strings are accepted.
func DecodeAssumptions(raw map[string]any) (Assumptions, error) {
	a := DefaultAssumptions()
	if len(raw) == 0 {
		return a, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &a,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Assumptions{}, fmt.Errorf("building assumptions decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Assumptions{}, fmt.Errorf("decoding assumptions: %w", err)
	}
	return a, nil
}

// HoursPerYear is the powered-on working time per year.
func (a Assumptions) HoursPerYear() float64 {
	return a.WorkHoursPerDay * a.WorkdaysPerYear
}

// WindowsKWhPerYear is the yearly energy draw of the Windows machine.
func (a Assumptions) WindowsKWhPerYear() float64 {
	return a.WindowsAvgWatts / 1000.0 * a.HoursPerYear()
}

// MacKWhPerYear is the yearly energy draw of the Mac.
func (a Assumptions) MacKWhPerYear() float64 {
	return a.MacAvgWatts / 1000.0 * a.HoursPerYear()
}
