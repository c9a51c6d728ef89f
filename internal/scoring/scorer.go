package scoring

import (
	"log/slog"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

// Efficiency bonuses are granted when the Mac axis reaches the given share of
// the Windows axis.
const (
	cpuBonus          = 0.05
	cpuBonusShare     = 0.85
	ramBonus          = 0.03
	ramBonusShare     = 0.80
	storageBonus      = 0.02
	storageBonusShare = 0.90
)

// Persona feature bonuses apply only when persona weights were supplied.
const (
	featureBonus       = 0.02
	gpuCoresThreshold  = 10
	batteryWhThreshold = 50.0
	portableKgLimit    = 1.5
)

// SimilarityResult is one catalog entry scored against the source machine.
type SimilarityResult struct {
	Mac         *hardware.MacSpec `json:"mac"`
	Similarity  float64           `json:"similarity"`
	CPUNote     string            `json:"cpu_note"`
	RAMNote     string            `json:"ram_note"`
	StorageNote string            `json:"storage_note"`
	PriceNote   string            `json:"price_note"`

	Breakdown Breakdown `json:"-"`
}

// Breakdown records how a similarity score was assembled.
type Breakdown struct {
	Cosine          float64      `json:"cosine"`
	EfficiencyBonus float64      `json:"efficiency_bonus"`
	PersonaBonus    float64      `json:"persona_bonus"`
	Axes            []AxisResult `json:"axes"`
}

// Reference is the Windows side of a comparison, prepared once per ranking.
type Reference struct {
	Profile   hardware.MachineProfile
	Vector    Vector
	MemoryGB  int
	StorageGB int
}

// Scorer computes efficiency-adjusted similarity between the Windows machine
// and individual Mac catalog entries.
type Scorer struct {
	normalizer *Normalizer
	logger     *slog.Logger
}

// NewScorer creates a Scorer with the given efficiency multipliers.
func NewScorer(eff Efficiency, logger *slog.Logger) *Scorer {
	return &Scorer{
		normalizer: NewNormalizer(eff),
		logger:     logger,
	}
}

// Normalizer exposes the normalizer used by this scorer.
func (s *Scorer) Normalizer() *Normalizer {
	return s.normalizer
}

// Reference prepares the weighted Windows vector. A nil weights pointer uses
// neutral multipliers.
func (s *Scorer) Reference(p hardware.MachineProfile, weights *PersonaWeights) Reference {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}
	return Reference{
		Profile:   p,
		Vector:    s.normalizer.Windows(p).Weighted(w),
		MemoryGB:  p.MemoryGB(),
		StorageGB: p.StorageGB(hardware.DefaultStorageGB),
	}
}

// Score computes the similarity result for one Mac against the reference.
func (s *Scorer) Score(ref Reference, mac *hardware.MacSpec, weights *PersonaWeights) SimilarityResult {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}
	macVec := s.normalizer.Mac(*mac).Weighted(w)

	cos := Cosine(ref.Vector, macVec)
	effBonus, axes := efficiencyBonus(ref.Vector, macVec, w)
	sim := clamp(cos+effBonus, 0, 1)

	var pBonus float64
	if weights != nil {
		pBonus = personaBonus(mac, w)
		sim = clamp(sim+pBonus, 0, 1)
	}
	sim = round(sim, 3)

	s.logger.Debug("scored mac",
		"model", mac.Model,
		"cosine", cos,
		"efficiency_bonus", effBonus,
		"persona_bonus", pBonus,
		"similarity", sim,
	)

	return SimilarityResult{
		Mac:         mac,
		Similarity:  sim,
		CPUNote:     CPUNote(macVec.CPU, ref.Vector.CPU, mac.Chip),
		RAMNote:     CapacityNote("RAM", mac.RAMGB, s.normalizer.EffectiveRAM(*mac), ref.MemoryGB),
		StorageNote: CapacityNote("Storage", mac.StorageGB, s.normalizer.EffectiveStorage(*mac), ref.StorageGB),
		PriceNote:   PriceNote(mac.MSRP),
		Breakdown: Breakdown{
			Cosine:          cos,
			EfficiencyBonus: effBonus,
			PersonaBonus:    pBonus,
			Axes:            axes,
		},
	}
}

// Cosine returns dot(a,b)/(|a||b|), or 0 when either vector has no magnitude.
func Cosine(a, b Vector) float64 {
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.dot(b) / (na * nb)
}

func efficiencyBonus(win, mac Vector, w PersonaWeights) (float64, []AxisResult) {
	axes := []AxisResult{
		axis("cpu", win.CPU, mac.CPU, w.CPU, cpuBonusShare, cpuBonus),
		axis("ram", win.RAM, mac.RAM, w.RAM, ramBonusShare, ramBonus),
		axis("storage", win.Storage, mac.Storage, w.Storage, storageBonusShare, storageBonus),
	}
	var total float64
	for _, a := range axes {
		total += a.Bonus
	}
	return total, axes
}

func axis(name string, win, mac, weight, share, bonus float64) AxisResult {
	r := AxisResult{Name: name, Windows: win, Mac: mac, Weight: weight}
	if mac >= win*share {
		r.Bonus = bonus
		r.Reason = "mac within efficiency threshold"
	} else {
		r.Reason = "mac below efficiency threshold"
	}
	return r
}

func personaBonus(mac *hardware.MacSpec, w PersonaWeights) float64 {
	var b float64
	if w.GPU > 1.0 && mac.CoresGPU >= gpuCoresThreshold {
		b += featureBonus
	}
	if w.Battery > 1.0 && mac.BatteryWh >= batteryWhThreshold {
		b += featureBonus
	}
	if w.Portability > 1.0 && mac.WeightKg <= portableKgLimit {
		b += featureBonus
	}
	return b
}
