package recommend

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
	"github.com/MikeSquared-Agency/MacMatch/internal/tco"
)

const (
	excellentMatch     = 0.90
	goodMatch          = 0.85
	significantSavings = 2000.0
)

// Comparison is the flat TCO comparison for the top-ranked Mac.
type Comparison struct {
	SuggestedModel string  `json:"suggested_model"`
	Chip           string  `json:"chip"`
	RAMGB          int     `json:"ram_gb"`
	StorageGB      int     `json:"storage_gb"`
	PriceAED       int     `json:"price_aed"`
	Similarity     float64 `json:"similarity"`

	Windows    tco.Breakdown `json:"windows"`
	Mac        tco.Breakdown `json:"mac"`
	SavingsAED float64       `json:"savings_aed"`
	SavingsPct float64       `json:"savings_pct"`

	MacAdvantages   []string `json:"mac_advantages"`
	Recommendations []string `json:"recommendations"`

	Years        int     `json:"years"`
	WindowsPrice float64 `json:"windows_price"`
}

// BuildComparison compares the top match with the Windows breakdown.
func BuildComparison(top scoring.SimilarityResult, a tco.Assumptions, windows, mac tco.Breakdown) Comparison {
	savings := tco.Savings(windows, mac)
	return Comparison{
		SuggestedModel:  top.Mac.Model,
		Chip:            top.Mac.Chip,
		RAMGB:           top.Mac.RAMGB,
		StorageGB:       top.Mac.StorageGB,
		PriceAED:        top.Mac.MSRP,
		Similarity:      top.Similarity,
		Windows:         windows,
		Mac:             mac,
		SavingsAED:      roundTo(savings, 2),
		SavingsPct:      roundTo(tco.SavingsPercent(windows, mac), 2),
		MacAdvantages:   MacAdvantages(a),
		Recommendations: Recommendations(top, savings, windows.Years),
		Years:           windows.Years,
	}
}

// MacAdvantages lists the generic cost advantages, interpolating the
// helpdesk and resale assumptions.
func MacAdvantages(a tco.Assumptions) []string {
	return []string{
		"Unified memory architecture - more efficient RAM usage than Windows",
		"Industry-leading battery life - work unplugged longer, less charging time",
		fmt.Sprintf("%.0f%% fewer helpdesk tickets - macOS is more stable", a.MacHelpdeskReductionPct*100),
		"Built-in security features - no need for expensive antivirus software",
		fmt.Sprintf("Better resale value - retains %.0f%% value vs %.0f%% for Windows PCs", a.MacResalePct*100, a.PCResalePct*100),
		"Silent operation - no fan noise during normal use",
	}
}

// Recommendations returns the match-quality, savings and product-line
// statements for the top match.
func Recommendations(top scoring.SimilarityResult, savings float64, years int) []string {
	var out []string
	switch {
	case top.Similarity >= excellentMatch:
		out = append(out, "Excellent match - This Mac will meet or exceed your current Windows performance")
	case top.Similarity >= goodMatch:
		out = append(out, "Good match - Mac's efficiency means it will perform similarly to your Windows machine")
	}

	switch {
	case savings > significantSavings:
		out = append(out, fmt.Sprintf("Significant savings: Save %s over %d years with Mac", scoring.FormatAED(savings), years))
	case savings > 0:
		out = append(out, fmt.Sprintf("Cost-effective: Mac offers better value with %s savings", scoring.FormatAED(savings)))
	}

	model := strings.ToLower(top.Mac.Model)
	switch {
	case strings.Contains(model, "air"):
		out = append(out, "MacBook Air provides excellent value - perfect for most professional workloads")
	case strings.Contains(model, "pro"):
		out = append(out, "MacBook Pro offers professional-grade performance for demanding tasks")
	}
	return out
}
