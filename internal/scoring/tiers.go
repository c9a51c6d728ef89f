package scoring

// Tier labels a ranked match for the Good/Better/Best presentation.
type Tier string

const (
	TierGood   Tier = "Good"
	TierBetter Tier = "Better"
	TierBest   Tier = "Best"
)

// Tiers is the label order applied to ranked matches.
var Tiers = []Tier{TierGood, TierBetter, TierBest}

// TierForRank returns the label for the i-th ranked match, or "" past the
// third.
func TierForRank(i int) Tier {
	if i < 0 || i >= len(Tiers) {
		return ""
	}
	return Tiers[i]
}
