package recommend

import (
	"math"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
	"github.com/MikeSquared-Agency/MacMatch/internal/tco"
)

// Radar axis names, in display order.
const (
	AxisCPU     = "CPU Performance"
	AxisRAM     = "RAM Efficiency"
	AxisStorage = "Storage"
	AxisPower   = "Power Efficiency"
	AxisSupport = "Support Cost"
	AxisResale  = "Resale Value"
)

// RadarAxes is the display order of the radar chart.
var RadarAxes = []string{AxisCPU, AxisRAM, AxisStorage, AxisPower, AxisSupport, AxisResale}

// Windows is the fixed reference side of the radar. Support and resale are
// baselines, not derived from the Windows cost breakdown.
const (
	WindowsRadarCPU     = 50.0
	WindowsRadarRAM     = 50.0
	WindowsRadarPower   = 15.0
	WindowsRadarSupport = 50.0
	WindowsRadarResale  = 30.0
)

const (
	macRadarPower  = 85.0
	macRadarResale = 90.0

	radarStorageEfficiency = 1.15
	radarStorageFloor      = 20.0
	radarStorageCap        = 1024
	radarStorageMin        = 256
	radarDefaultStorageGB  = 512

	supportNeutral = 50.0
	supportMin     = 70.0
	supportMax     = 95.0
)

// Radar holds two parallel axis-to-[0,1] mappings.
type Radar struct {
	Axes    []string           `json:"axes"`
	Windows map[string]float64 `json:"windows"`
	Mac     map[string]float64 `json:"mac"`
}

// BuildRadar scores the recommended Mac against the Windows machine on the
// six radar axes.
func BuildRadar(p hardware.MachineProfile, mac hardware.MacSpec, win, macTCO tco.Breakdown, eff scoring.Efficiency) Radar {
	winRAM := p.MemoryGB()
	winStorage := p.StorageGB(radarDefaultStorageGB)

	cpu := math.Min(float64(mac.CoresCPU)*eff.CPU/float64(max(p.PhysicalCores, 1))*100, 100)

	ramRatio := float64(mac.RAMGB) * eff.RAM / float64(max(winRAM, 1))
	var ram float64
	switch {
	case ramRatio >= 1.0:
		ram = 95
	case ramRatio >= 0.9:
		ram = 90
	case ramRatio >= 0.75:
		ram = 80
	default:
		ram = math.Max(ramRatio*100+20, 70)
	}

	baseline := winStorage
	if baseline > radarStorageCap {
		baseline = radarStorageCap
	}
	baseline = max(baseline, radarStorageMin)
	storage := math.Min(float64(mac.StorageGB)*radarStorageEfficiency/float64(baseline)*100, 100)
	storage = math.Max(storage, radarStorageFloor)

	support := supportNeutral
	if win.RecurringPerYear > 0 && macTCO.RecurringPerYear > 0 {
		ratio := macTCO.RecurringPerYear / win.RecurringPerYear
		support = math.Min(math.Max(100-ratio*50, supportMin), supportMax)
	}

	winStorageScore := 50.0
	switch {
	case winStorage >= 1024:
		winStorageScore = 70
	case winStorage >= 512:
		winStorageScore = 60
	}

	return Radar{
		Axes: RadarAxes,
		Windows: map[string]float64{
			AxisCPU:     unit(WindowsRadarCPU),
			AxisRAM:     unit(WindowsRadarRAM),
			AxisStorage: unit(winStorageScore),
			AxisPower:   unit(WindowsRadarPower),
			AxisSupport: unit(WindowsRadarSupport),
			AxisResale:  unit(WindowsRadarResale),
		},
		Mac: map[string]float64{
			AxisCPU:     unit(cpu),
			AxisRAM:     unit(ram),
			AxisStorage: unit(storage),
			AxisPower:   unit(macRadarPower),
			AxisSupport: unit(support),
			AxisResale:  unit(macRadarResale),
		},
	}
}

// unit maps a percentage onto [0,1].
func unit(pct float64) float64 {
	return math.Max(0, math.Min(pct, 100)) / 100
}
