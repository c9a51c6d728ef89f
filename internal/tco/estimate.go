package tco

import (
	"strings"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

// DefaultWindowsPrice is the estimate for processors no rule recognises.
const DefaultWindowsPrice = 5000.0

// highRAMGB splits the lower and upper price of each processor family.
const highRAMGB = 16.0

type priceRule struct {
	keyword string
	lowRAM  float64
	highRAM float64
}

// priceRules is evaluated in order; the first keyword found in the processor name wins.
var priceRules = []priceRule{
	{"i7", 5000, 6000},
	{"i5", 4000, 4500},
	{"i3", 3000, 3000},
	{"ryzen 7", 4500, 5500},
	{"ryzen 5", 3500, 4000},
}

// EstimateWindowsPrice derives a purchase price from the processor family
// and installed memory.
func EstimateWindowsPrice(processor string, memoryGB float64) float64 {
	proc := strings.ToLower(processor)
	for _, r := range priceRules {
		if !strings.Contains(proc, r.keyword) {
			continue
		}
		if memoryGB >= highRAMGB {
			return r.highRAM
		}
		return r.lowRAM
	}
	return DefaultWindowsPrice
}

// ResolveWindowsPrice returns supplied when positive, else an estimate from
// the machine profile.
func ResolveWindowsPrice(p hardware.MachineProfile, supplied float64) float64 {
	if supplied > 0 {
		return supplied
	}
	return EstimateWindowsPrice(p.Processor, p.MemoryValue())
}
