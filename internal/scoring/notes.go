package scoring

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// cpuEquivalentDelta is the score gap below which the CPUs read as equivalent.
const cpuEquivalentDelta = 0.08

// CPUNote describes the Mac CPU axis relative to the Windows one.
func CPUNote(mac, win float64, chip string) string {
	switch {
	case math.Abs(mac-win) < cpuEquivalentDelta:
		return "CPU: equivalent (Mac efficient architecture)"
	case mac > win:
		return fmt.Sprintf("CPU: ↑ Mac stronger (efficient %s)", chip)
	case mac >= win*0.80:
		return fmt.Sprintf("CPU: ~ Mac sufficient (efficient %s)", chip)
	default:
		return "CPU: ↓ Mac weaker"
	}
}

// CapacityNote compares an efficiency-adjusted Mac capacity with the Windows one.
func CapacityNote(label string, raw, effective, win int) string {
	e, w := float64(effective), float64(win)
	switch {
	case e >= w*0.95 && e <= w*1.05:
		return fmt.Sprintf("%s: equivalent (Mac %d GB ≈ Win %d GB)", label, raw, win)
	case effective > win:
		return fmt.Sprintf("%s: ↑ Mac better (Mac %d GB ≈ %d GB effective vs Win %d GB)", label, raw, effective, win)
	case e >= w*0.85:
		return fmt.Sprintf("%s: ~ Mac sufficient (Mac %d GB ≈ %d GB effective vs Win %d GB)", label, raw, effective, win)
	default:
		return fmt.Sprintf("%s: ↓ Mac lower (Mac %d GB ≈ %d GB effective vs Win %d GB)", label, raw, effective, win)
	}
}

// PriceNote renders a list price, or an em dash for unpriced entries.
func PriceNote(msrp int) string {
	if msrp <= 0 {
		return "—"
	}
	return FormatAED(float64(msrp))
}

// FormatAED renders a whole-dirham amount with thousands separators.
func FormatAED(v float64) string {
	return printer.Sprintf("AED %d", int64(math.Round(v)))
}
