// Package carbon estimates lifetime CO2 for the Windows machine and the Mac.
package carbon

import (
	"errors"
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/MacMatch/internal/tco"
)

// Factors are the emission constants of the carbon model.
type Factors struct {
	GridKgPerKWh           float64 `yaml:"grid_kg_per_kwh" json:"grid_kg_per_kwh"`
	WindowsManufacturingKg float64 `yaml:"windows_manufacturing_kg" json:"windows_manufacturing_kg"`
	MacManufacturingKg     float64 `yaml:"mac_manufacturing_kg" json:"mac_manufacturing_kg"`
	TreesPerKg             float64 `yaml:"trees_per_kg" json:"trees_per_kg"`
}

// DefaultFactors uses the UAE grid average and typical laptop manufacturing footprints.
func DefaultFactors() Factors {
	return Factors{
		GridKgPerKWh:           0.5,
		WindowsManufacturingKg: 250,
		MacManufacturingKg:     300,
		TreesPerKg:             0.02,
	}
}

// Validate rejects negative factors.
func (f Factors) Validate() error {
	if f.GridKgPerKWh < 0 || f.WindowsManufacturingKg < 0 || f.MacManufacturingKg < 0 || f.TreesPerKg < 0 {
		return errors.New("carbon factors must be non-negative")
	}
	return nil
}

// Footprint is the rounded comparison result.
type Footprint struct {
	WindowsCO2Kg    float64 `json:"windows_co2_kg"`
	MacCO2Kg        float64 `json:"mac_co2_kg"`
	SavingsCO2Kg    float64 `json:"savings_co2_kg"`
	EquivalentTrees float64 `json:"equivalent_trees"`
	Description     string  `json:"description"`
}

// Calculate returns manufacturing plus operational CO2 for both platforms
// over the given number of years.
func Calculate(a tco.Assumptions, f Factors, years int) Footprint {
	y := float64(years)
	windows := f.WindowsManufacturingKg + a.WindowsKWhPerYear()*f.GridKgPerKWh*y
	mac := f.MacManufacturingKg + a.MacKWhPerYear()*f.GridKgPerKWh*y
	savings := windows - mac
	trees := savings * f.TreesPerKg

	desc := "Similar carbon footprint"
	if savings > 0 {
		desc = fmt.Sprintf("Switching to Mac reduces carbon footprint by %g kg CO2, equivalent to %g trees planted",
			round(savings, 1), round(trees, 1))
	}

	return Footprint{
		WindowsCO2Kg:    round(windows, 2),
		MacCO2Kg:        round(mac, 2),
		SavingsCO2Kg:    round(savings, 2),
		EquivalentTrees: round(trees, 1),
		Description:     desc,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
