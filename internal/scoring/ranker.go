package scoring

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

// MaxMatches is the number of results the ranker returns.
const MaxMatches = 3

// Composite ordering bonuses.
const (
	airBonus            = 0.05
	airBonusThreshold   = 0.85
	priceBonusWeight    = 0.10
	priceBonusThreshold = 0.90
	priceCeilingAED     = 10000.0
)

// Ranker orders catalog entries against a Windows machine and picks a
// model-diverse top three.
type Ranker struct {
	scorer *Scorer
	logger *slog.Logger
}

// NewRanker creates a Ranker around a Scorer.
func NewRanker(scorer *Scorer, logger *slog.Logger) *Ranker {
	return &Ranker{scorer: scorer, logger: logger}
}

// Scorer returns the underlying scorer.
func (r *Ranker) Scorer() *Scorer {
	return r.scorer
}

// Rank returns up to MaxMatches results with distinct model/RAM/storage
// signatures where the catalog allows it. An empty catalog yields no results.
func (r *Ranker) Rank(p hardware.MachineProfile, macs []hardware.MacSpec, weights *PersonaWeights) []SimilarityResult {
	all := r.ScoreAll(p, macs, weights)
	picked := selectDistinct(all, MaxMatches)
	r.logger.Debug("ranked catalog", "catalog_size", len(macs), "returned", len(picked))
	return picked
}

// ScoreAll scores every catalog entry and returns them in composite order.
func (r *Ranker) ScoreAll(p hardware.MachineProfile, macs []hardware.MacSpec, weights *PersonaWeights) []SimilarityResult {
	if len(macs) == 0 {
		return nil
	}
	ref := r.scorer.Reference(p, weights)

	results := make([]SimilarityResult, 0, len(macs))
	for i := range macs {
		results = append(results, r.scorer.Score(ref, &macs[i], weights))
	}
	SortByComposite(results)
	return results
}

// CompositeScore is the ordering key: similarity plus an Air preference when
// it is good enough and a price preference among near-equal matches.
func CompositeScore(res SimilarityResult) float64 {
	score := res.Similarity
	if strings.Contains(strings.ToLower(res.Mac.Model), "air") && res.Similarity >= airBonusThreshold {
		score += airBonus
	}
	if res.Similarity >= priceBonusThreshold && res.Mac.Priced() {
		score += (1.0 - float64(res.Mac.MSRP)/priceCeilingAED) * priceBonusWeight
	}
	return score
}

// SortByComposite orders results by descending composite score, then by
// ascending price with unpriced entries last. The sort is stable.
func SortByComposite(results []SimilarityResult) {
	sort.SliceStable(results, func(i, j int) bool {
		ci, cj := CompositeScore(results[i]), CompositeScore(results[j])
		if ci != cj {
			return ci > cj
		}
		return sortPrice(results[i].Mac) < sortPrice(results[j].Mac)
	})
}

func sortPrice(m *hardware.MacSpec) int {
	if !m.Priced() {
		return math.MaxInt
	}
	return m.MSRP
}

// selectDistinct takes up to n results with unseen signatures, then backfills
// from the remaining results in order.
func selectDistinct(sorted []SimilarityResult, n int) []SimilarityResult {
	picked := make([]SimilarityResult, 0, n)
	used := make([]bool, len(sorted))
	seen := make(map[string]bool)

	for i, res := range sorted {
		if len(picked) >= n {
			break
		}
		sig := res.Mac.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		used[i] = true
		picked = append(picked, res)
	}

	for i, res := range sorted {
		if len(picked) >= n {
			break
		}
		if !used[i] {
			used[i] = true
			picked = append(picked, res)
		}
	}
	return picked
}
