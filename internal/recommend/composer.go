// Package recommend composes scoring, cost, carbon and compatibility results
// into the payloads served to clients.
package recommend

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/MacMatch/internal/carbon"
	"github.com/MikeSquared-Agency/MacMatch/internal/catalog"
	"github.com/MikeSquared-Agency/MacMatch/internal/compat"
	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
	"github.com/MikeSquared-Agency/MacMatch/internal/tco"
)

// ErrNoMatches is returned when ranking yields no Mac for the profile.
var ErrNoMatches = errors.New("could not compute recommendation")

// Request carries the caller's inputs. A nil Persona means none was given.
// Years outside {3, 5} fall back to 3; a WindowsPrice of 0 is estimated.
type Request struct {
	Profile      hardware.MachineProfile
	Persona      *scoring.Persona
	Apps         []string
	Years        int
	WindowsPrice float64
}

// Recommendation is the full aggregate for the top-ranked Mac.
type Recommendation struct {
	ID                      string            `json:"id"`
	Persona                 scoring.Persona   `json:"persona"`
	RecommendedMac          *hardware.MacSpec `json:"recommended_mac"`
	CostOptimizedMac        *hardware.MacSpec `json:"cost_optimized_mac"`
	PerformanceOptimizedMac *hardware.MacSpec `json:"performance_optimized_mac"`
	Similarity              float64           `json:"similarity"`
	Explanation             string            `json:"explanation"`

	AppCompatibility     []compat.Record          `json:"app_compatibility"`
	OverallCompatibility float64                  `json:"overall_compatibility"`
	PortCompatibility    compat.PortCompatibility `json:"port_compatibility"`

	WindowsTCO      tco.Breakdown    `json:"windows_tco"`
	MacTCO          tco.Breakdown    `json:"mac_tco"`
	CarbonFootprint carbon.Footprint `json:"carbon_footprint"`
	Radar           Radar            `json:"performance_radar"`
	WorkflowMatches []string         `json:"workflow_matches"`
	MacAdvantages   []Advantage      `json:"mac_advantages"`
	Tiers           []TierOption     `json:"tiers"`

	Years        int     `json:"years"`
	WindowsPrice float64 `json:"windows_price"`
}

// ExplainEntry is the scoring breakdown of one catalog entry.
type ExplainEntry struct {
	Model      string            `json:"model"`
	Signature  string            `json:"signature"`
	Similarity float64           `json:"similarity"`
	Composite  float64           `json:"composite"`
	Breakdown  scoring.Breakdown `json:"breakdown"`
}

// Explain is the scoring breakdown of the whole catalog plus its Pareto
// frontier over similarity, price and weight.
type Explain struct {
	Persona  *scoring.Persona          `json:"persona,omitempty"`
	Entries  []ExplainEntry            `json:"entries"`
	Frontier []scoring.ParetoCandidate `json:"frontier"`
}

// Composer orchestrates the ranker and the cost, carbon and compatibility
// models over a catalog dataset.
type Composer struct {
	ranker    *scoring.Ranker
	templates *Templates
	carbon    carbon.Factors
	logger    *slog.Logger
}

// NewComposer creates a Composer.
func NewComposer(ranker *scoring.Ranker, templates *Templates, factors carbon.Factors, logger *slog.Logger) *Composer {
	return &Composer{
		ranker:    ranker,
		templates: templates,
		carbon:    factors,
		logger:    logger,
	}
}

// Matches ranks the catalog, applying persona weights only when a persona
// was given explicitly.
func (c *Composer) Matches(ds catalog.Dataset, req Request) []scoring.SimilarityResult {
	return c.ranker.Rank(req.Profile, ds.Macs, explicitWeights(req.Persona))
}

// Tiers returns the Good/Better/Best options.
func (c *Composer) Tiers(ds catalog.Dataset, req Request) ([]TierOption, error) {
	tbl, err := c.templates.Table()
	if err != nil {
		return nil, err
	}
	matches := c.Matches(ds, req)
	if len(matches) == 0 {
		return nil, ErrNoMatches
	}
	years := tco.NormalizeYears(req.Years)
	price := tco.ResolveWindowsPrice(req.Profile, req.WindowsPrice)
	windows := tco.ComputeWindows(ds.Assumptions, years, price)
	return BuildTiers(tbl, matches, ds.Assumptions, windows), nil
}

// CompareTCO returns the flat cost comparison for the top match.
func (c *Composer) CompareTCO(ds catalog.Dataset, req Request) (*Comparison, error) {
	matches := c.Matches(ds, req)
	if len(matches) == 0 {
		return nil, ErrNoMatches
	}
	top := matches[0]
	years := tco.NormalizeYears(req.Years)
	price := tco.ResolveWindowsPrice(req.Profile, req.WindowsPrice)
	windows := tco.ComputeWindows(ds.Assumptions, years, price)
	mac := tco.ComputeMac(ds.Assumptions, years, float64(top.Mac.MSRP))

	cmp := BuildComparison(top, ds.Assumptions, windows, mac)
	cmp.WindowsPrice = price
	return &cmp, nil
}

// Recommend builds the full recommendation. When no persona is given it is
// detected from the applications, falling back to General.
func (c *Composer) Recommend(ds catalog.Dataset, req Request) (*Recommendation, error) {
	tbl, err := c.templates.Table()
	if err != nil {
		return nil, err
	}

	persona := scoring.PersonaGeneral
	switch {
	case req.Persona != nil:
		persona = *req.Persona
	case len(req.Apps) > 0:
		persona = scoring.DetectPersona(req.Apps)
		c.logger.Info("persona detected", "persona", persona, "apps", len(req.Apps))
	}

	weights := scoring.WeightsFor(persona)
	matches := c.ranker.Rank(req.Profile, ds.Macs, &weights)
	if len(matches) == 0 {
		return nil, ErrNoMatches
	}
	top := matches[0]

	years := tco.NormalizeYears(req.Years)
	price := tco.ResolveWindowsPrice(req.Profile, req.WindowsPrice)
	windows := tco.ComputeWindows(ds.Assumptions, years, price)
	mac := tco.ComputeMac(ds.Assumptions, years, float64(top.Mac.MSRP))
	tiers := BuildTiers(tbl, matches, ds.Assumptions, windows)

	records := compat.Classify(req.Apps)
	eff := c.ranker.Scorer().Normalizer().Efficiency()

	rec := &Recommendation{
		ID:                      uuid.NewString(),
		Persona:                 persona,
		RecommendedMac:          top.Mac,
		CostOptimizedMac:        tierMac(tiers, scoring.TierGood, top.Mac),
		PerformanceOptimizedMac: tierMac(tiers, scoring.TierBest, top.Mac),
		Similarity:              top.Similarity,
		Explanation:             Explanation(req.Profile, *top.Mac, persona, records, eff),
		AppCompatibility:        records,
		OverallCompatibility:    compat.OverallScore(records),
		PortCompatibility:       compat.CheckPorts(*top.Mac),
		WindowsTCO:              windows,
		MacTCO:                  mac,
		CarbonFootprint:         carbon.Calculate(ds.Assumptions, c.carbon, years),
		Radar:                   BuildRadar(req.Profile, *top.Mac, windows, mac, eff),
		WorkflowMatches:         WorkflowMatches(tbl, persona, records),
		MacAdvantages:           tbl.AdvantagesFor(persona),
		Tiers:                   tiers,
		Years:                   years,
		WindowsPrice:            price,
	}

	c.logger.Debug("recommendation composed",
		"id", rec.ID,
		"model", top.Mac.Model,
		"similarity", top.Similarity,
		"persona", persona,
	)
	return rec, nil
}

// Explain scores every catalog entry and computes the Pareto frontier.
func (c *Composer) Explain(ds catalog.Dataset, req Request) (*Explain, error) {
	results := c.ranker.ScoreAll(req.Profile, ds.Macs, explicitWeights(req.Persona))
	if len(results) == 0 {
		return nil, ErrNoMatches
	}

	out := &Explain{Persona: req.Persona, Entries: make([]ExplainEntry, 0, len(results))}
	for _, r := range results {
		out.Entries = append(out.Entries, ExplainEntry{
			Model:      r.Mac.Model,
			Signature:  r.Mac.Signature(),
			Similarity: r.Similarity,
			Composite:  scoring.CompositeScore(r),
			Breakdown:  r.Breakdown,
		})
	}
	out.Frontier = scoring.ComputeFrontier(scoring.CandidatesFromResults(results))
	return out, nil
}

// Describe summarises a recommendation for logs and events.
func (r *Recommendation) Describe() string {
	return fmt.Sprintf("%s (%s, %d GB / %d GB) similarity %.2f",
		r.RecommendedMac.Model, r.RecommendedMac.Chip, r.RecommendedMac.RAMGB, r.RecommendedMac.StorageGB, r.Similarity)
}

func explicitWeights(p *scoring.Persona) *scoring.PersonaWeights {
	if p == nil {
		return nil
	}
	w := scoring.WeightsFor(*p)
	return &w
}

func tierMac(tiers []TierOption, tier scoring.Tier, fallback *hardware.MacSpec) *hardware.MacSpec {
	for _, t := range tiers {
		if t.Tier == tier {
			return t.Mac
		}
	}
	return fallback
}
