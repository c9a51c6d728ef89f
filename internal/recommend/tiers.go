package recommend

import (
	"math"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
	"github.com/MikeSquared-Agency/MacMatch/internal/tco"
)

// TierOption is one Good/Better/Best entry.
type TierOption struct {
	Tier       scoring.Tier      `json:"tier"`
	Mac        *hardware.MacSpec `json:"mac"`
	Similarity float64           `json:"similarity"`
	TotalCost  float64           `json:"total_cost"`
	Savings    float64           `json:"savings"`
	SavingsPct float64           `json:"savings_pct"`
	Rationale  string            `json:"rationale"`
	Advantages []string          `json:"advantages"`
}

// BuildTiers labels up to three ranked matches and prices each against the
// Windows breakdown. Savings never go below zero and the percentage is shown
// only when positive, capped at tco.MaxSavingsPct.
func BuildTiers(tbl *Table, matches []scoring.SimilarityResult, a tco.Assumptions, windows tco.Breakdown) []TierOption {
	n := min(len(matches), len(scoring.Tiers))
	out := make([]TierOption, 0, n)
	for i := 0; i < n; i++ {
		m := matches[i]
		tier := scoring.TierForRank(i)
		macTCO := tco.ComputeMac(a, windows.Years, float64(m.Mac.MSRP))
		savings := tco.Savings(windows, macTCO)

		var pct float64
		if windows.Total > 0 {
			pct = roundTo(savings/windows.Total*100, 1)
		}
		if pct < 0 {
			pct = 0
		}

		text := tbl.Tier(tier)
		out = append(out, TierOption{
			Tier:       tier,
			Mac:        m.Mac,
			Similarity: roundTo(m.Similarity, 4),
			TotalCost:  roundTo(macTCO.Total, 2),
			Savings:    roundTo(math.Max(savings, 0), 2),
			SavingsPct: math.Min(pct, tco.MaxSavingsPct),
			Rationale:  text.Rationale,
			Advantages: text.Advantages,
		})
	}
	return out
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
