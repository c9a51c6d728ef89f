package scoring

import "math"

// ParetoCandidate is a scored Mac placed on the similarity/price/weight trade-off.
type ParetoCandidate struct {
	Model      string  `json:"model"`
	Signature  string  `json:"signature"`
	Similarity float64 `json:"similarity"`
	PriceAED   float64 `json:"price_aed"` // lower is better
	WeightKg   float64 `json:"weight_kg"` // lower is better
}

// CandidatesFromResults converts scored results for frontier analysis.
// Unpriced or unweighed entries are treated as worst on that axis.
func CandidatesFromResults(results []SimilarityResult) []ParetoCandidate {
	out := make([]ParetoCandidate, 0, len(results))
	for _, r := range results {
		c := ParetoCandidate{
			Model:      r.Mac.Model,
			Signature:  r.Mac.Signature(),
			Similarity: r.Similarity,
			PriceAED:   float64(r.Mac.MSRP),
			WeightKg:   r.Mac.WeightKg,
		}
		if !r.Mac.Priced() {
			c.PriceAED = math.Inf(1)
		}
		if c.WeightKg <= 0 {
			c.WeightKg = math.Inf(1)
		}
		out = append(out, c)
	}
	return out
}

// ComputeFrontier returns the candidates no other candidate dominates.
// O(n^2), fine for catalog-sized inputs.
func ComputeFrontier(candidates []ParetoCandidate) []ParetoCandidate {
	if len(candidates) <= 1 {
		return candidates
	}

	var frontier []ParetoCandidate
	for i := range candidates {
		dominated := false
		for j := range candidates {
			if i == j {
				continue
			}
			if dominates(candidates[j], candidates[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, candidates[i])
		}
	}
	return frontier
}

// dominates reports whether a is at least as good as b everywhere and
// strictly better somewhere. Similarity is higher-better; price and weight
// are lower-better.
func dominates(a, b ParetoCandidate) bool {
	if a.Similarity < b.Similarity || a.PriceAED > b.PriceAED || a.WeightKg > b.WeightKg {
		return false
	}
	return a.Similarity > b.Similarity || a.PriceAED < b.PriceAED || a.WeightKg < b.WeightKg
}
