// Package tco models multi-year total cost of ownership for a Windows laptop
// and a candidate Mac under a shared set of cost assumptions.
package tco

import "math"

// Supported comparison horizons.
const (
	DefaultYears = 3
	LongYears    = 5
)

// MaxSavingsPct caps the displayed savings percentage.
const MaxSavingsPct = 50.0

// batteryPowerSavingsPct is the share of Mac power cost saved by fewer charge cycles.
const batteryPowerSavingsPct = 0.30

// Platform identifies which side of the comparison a breakdown belongs to.
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformMac     Platform = "mac"
)

// Breakdown is the cost of one platform over a horizon. Total is already net
// of resale and includes downtime and security deltas.
type Breakdown struct {
	Platform         Platform `json:"platform"`
	Years            int      `json:"years"`
	Upfront          float64  `json:"upfront"`
	RecurringPerYear float64  `json:"recurring_per_year"`
	ResaleAtEnd      float64  `json:"resale_at_end"`
	Total            float64  `json:"total"`
	ProductivityGain float64  `json:"productivity_gain"`
	DowntimeCost     float64  `json:"downtime_cost"`
	SecuritySavings  float64  `json:"security_savings"`
}

// ComputeWindows returns the Windows breakdown for the given purchase price.
func ComputeWindows(a Assumptions, years int, price float64) Breakdown {
	y := float64(years)
	powerPerYear := a.WindowsKWhPerYear() * a.PowerCostPerKWh
	recurring := powerPerYear +
		a.SecuritySuitePerYear +
		a.MDMCostPerYear +
		a.HelpdeskHoursPerYear*a.HelpdeskCostPerHour
	resale := price * a.PCResalePct
	downtime := a.WindowsDowntimeHoursPerYear * a.HourlyProductivityValue * y

	return Breakdown{
		Platform:         PlatformWindows,
		Years:            years,
		Upfront:          price + a.WindowsLicensing,
		RecurringPerYear: recurring,
		ResaleAtEnd:      resale,
		Total:            price + a.WindowsLicensing + recurring*y - resale + downtime,
		DowntimeCost:     downtime,
	}
}

// ComputeMac returns the Mac breakdown for the given list price.
func ComputeMac(a Assumptions, years int, price float64) Breakdown {
	y := float64(years)
	powerPerYear := a.MacKWhPerYear() * a.PowerCostPerKWh
	helpdeskHours := a.HelpdeskHoursPerYear * (1.0 - a.MacHelpdeskReductionPct)
	security := a.SecuritySuitePerYear * (1.0 - a.MacSecurityAdvantagePct)

	recurring := powerPerYear +
		a.MDMCostPerYear +
		helpdeskHours*a.HelpdeskCostPerHour +
		security
	resale := price * a.MacResalePct
	downtime := a.MacDowntimeHoursPerYear * a.HourlyProductivityValue * y
	battery := powerPerYear * batteryPowerSavingsPct * y
	securityDelta := a.SecuritySuitePerYear * a.MacSecurityAdvantagePct * y

	return Breakdown{
		Platform:         PlatformMac,
		Years:            years,
		Upfront:          price,
		RecurringPerYear: recurring,
		ResaleAtEnd:      resale,
		Total:            price + recurring*y - resale + downtime - battery,
		DowntimeCost:     downtime,
		SecuritySavings:  securityDelta + battery,
	}
}

// Savings is the signed Windows-minus-Mac total.
func Savings(windows, mac Breakdown) float64 {
	return windows.Total - mac.Total
}

// SavingsPercent is savings as a share of the Windows total, capped at
// MaxSavingsPct. It is 0 when the Windows total is not positive.
func SavingsPercent(windows, mac Breakdown) float64 {
	if windows.Total <= 0 {
		return 0
	}
	return math.Min(Savings(windows, mac)/windows.Total*100.0, MaxSavingsPct)
}

// NormalizeYears returns years when it is a supported horizon, else DefaultYears.
func NormalizeYears(years int) int {
	if years == DefaultYears || years == LongYears {
		return years
	}
	return DefaultYears
}
