package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

// Efficiency holds the multipliers applied to Apple-silicon specs before they
// are placed on the shared normalisation scales.
type Efficiency struct {
	CPU     float64 `json:"cpu" yaml:"cpu"`
	RAM     float64 `json:"ram" yaml:"ram"`
	Storage float64 `json:"storage" yaml:"storage"`
}

// DefaultEfficiency returns the stock multipliers.
func DefaultEfficiency() Efficiency {
	return Efficiency{CPU: 1.35, RAM: 1.25, Storage: 1.10}
}

// Validate rejects non-positive multipliers.
func (e Efficiency) Validate() error {
	for name, v := range map[string]float64{"cpu": e.CPU, "ram": e.RAM, "storage": e.Storage} {
		if v <= 0 {
			return fmt.Errorf("efficiency %s must be positive, got %f", name, v)
		}
	}
	return nil
}

// Shared capacity scales: 8 GB RAM and 256 GB storage map to 0; 64 GB and
// 2048 GB map to 1.
const (
	ramFloorGB     = 8.0
	ramSpanGB      = 56.0
	storageFloorGB = 256.0
	storageSpanGB  = 1792.0
)

type cpuTier struct {
	keywords []string
	score    float64
}

var windowsCPUTiers = []cpuTier{
	{[]string{"i9", "ryzen 9"}, 0.90},
	{[]string{"i7", "ryzen 7"}, 0.80},
	{[]string{"i5", "ryzen 5"}, 0.65},
	{[]string{"i3", "ryzen 3"}, 0.50},
}

const windowsCPUDefault = 0.60

// appleCPUTiers is checked top to bottom; variant keywords win over generation.
var appleCPUTiers = []cpuTier{
	{[]string{"ultra"}, 0.98},
	{[]string{"max"}, 0.95},
	{[]string{"pro"}, 0.88},
	{[]string{"m3"}, 0.85},
	{[]string{"m2"}, 0.75},
	{[]string{"m1"}, 0.65},
}

const appleCPUDefault = 0.70

// generationPattern matches 12th-14th generation model numbers such as "12700".
var generationPattern = regexp.MustCompile(`\b(1[234]\d{3})\b`)

const generationBonus = 0.05

// WindowsCPUScore scores a Windows processor by family keyword, generation and
// physical core count.
func WindowsCPUScore(processor string, physicalCores int) float64 {
	name := strings.ToLower(processor)
	score := tierScore(name, windowsCPUTiers, windowsCPUDefault)

	if generationPattern.MatchString(name) {
		score += generationBonus
	}

	switch {
	case physicalCores >= 12:
		score += 0.08
	case physicalCores >= 8:
		score += 0.05
	case physicalCores >= 6:
		score += 0.02
	}
	return clamp(score, 0, 1)
}

// AppleCPUScore scores an Apple chip by variant/generation keyword and core
// count, then applies the CPU efficiency multiplier.
func AppleCPUScore(chip string, cores int, eff Efficiency) float64 {
	score := tierScore(strings.ToLower(chip), appleCPUTiers, appleCPUDefault)

	switch {
	case cores >= 12:
		score += 0.03
	case cores >= 10:
		score += 0.02
	case cores >= 8:
		score += 0.01
	}
	return clamp(score*eff.CPU, 0, 1)
}

// NormRAM places a RAM size on the shared 8–64 GB scale.
func NormRAM(gb float64) float64 {
	return clamp((gb-ramFloorGB)/ramSpanGB, 0, 1)
}

// NormStorage places a storage size on the shared 256–2048 GB scale.
func NormStorage(gb float64) float64 {
	return clamp((gb-storageFloorGB)/storageSpanGB, 0, 1)
}

func tierScore(name string, tiers []cpuTier, fallback float64) float64 {
	for _, t := range tiers {
		for _, kw := range t.keywords {
			if strings.Contains(name, kw) {
				return t.score
			}
		}
	}
	return fallback
}

// Vector is a machine placed on the CPU/RAM/storage axes.
type Vector struct {
	CPU     float64 `json:"cpu"`
	RAM     float64 `json:"ram"`
	Storage float64 `json:"storage"`
}

// Weighted scales each axis by the persona multiplier for that axis.
func (v Vector) Weighted(w PersonaWeights) Vector {
	return Vector{CPU: v.CPU * w.CPU, RAM: v.RAM * w.RAM, Storage: v.Storage * w.Storage}
}

func (v Vector) dot(o Vector) float64 {
	return v.CPU*o.CPU + v.RAM*o.RAM + v.Storage*o.Storage
}

func (v Vector) norm() float64 {
	return math.Sqrt(v.dot(v))
}

// Normalizer converts raw hardware facts into unweighted vectors.
type Normalizer struct {
	eff Efficiency
}

// NewNormalizer creates a Normalizer with the given Apple-side multipliers.
func NewNormalizer(eff Efficiency) *Normalizer {
	return &Normalizer{eff: eff}
}

// Efficiency returns the multipliers in use.
func (n *Normalizer) Efficiency() Efficiency {
	return n.eff
}

// Windows normalises the source machine.
func (n *Normalizer) Windows(p hardware.MachineProfile) Vector {
	return Vector{
		CPU:     WindowsCPUScore(p.Processor, p.PhysicalCores),
		RAM:     NormRAM(float64(p.MemoryGB())),
		Storage: NormStorage(float64(p.StorageGB(hardware.DefaultStorageGB))),
	}
}

// Mac normalises a catalog entry on its effective whole-GB capacities.
func (n *Normalizer) Mac(m hardware.MacSpec) Vector {
	return Vector{
		CPU:     AppleCPUScore(m.Chip, m.CoresCPU, n.eff),
		RAM:     NormRAM(float64(n.EffectiveRAM(m))),
		Storage: NormStorage(float64(n.EffectiveStorage(m))),
	}
}

// EffectiveRAM is the Mac RAM expressed as Windows-equivalent whole GB.
func (n *Normalizer) EffectiveRAM(m hardware.MacSpec) int {
	return int(float64(m.RAMGB) * n.eff.RAM)
}

// EffectiveStorage is the Mac storage expressed as Windows-equivalent whole GB.
func (n *Normalizer) EffectiveStorage(m hardware.MacSpec) int {
	return int(float64(m.StorageGB) * n.eff.Storage)
}

// AxisResult captures one axis's contribution for the explain view.
type AxisResult struct {
	Name    string  `json:"name"`
	Windows float64 `json:"windows"`
	Mac     float64 `json:"mac"`
	Weight  float64 `json:"weight"`
	Bonus   float64 `json:"bonus"`
	Reason  string  `json:"reason"`
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
