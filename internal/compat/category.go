// Package compat rates how well a Windows machine's software and peripherals
// carry over to a Mac.
package compat

import (
	"fmt"
	"strings"
)

// Category is the macOS compatibility class of an application.
type Category string

const (
	NativeMacOS            Category = "NativeMacOS"
	WebSaaS                Category = "WebSaaS"
	Rosetta2Compatible     Category = "Rosetta2Compatible"
	RequiresVirtualization Category = "RequiresVirtualization"
	NotCompatible          Category = "NotCompatible"
	AlternativeAvailable   Category = "AlternativeAvailable"
)

// Score is the fixed compatibility score of the category.
func (c Category) Score() float64 {
	switch c {
	case NativeMacOS, WebSaaS:
		return 1.0
	case Rosetta2Compatible:
		return 0.95
	case AlternativeAvailable:
		return 0.85
	case RequiresVirtualization:
		return 0.75
	case NotCompatible:
		return 0.3
	default:
		return 0.8
	}
}

// Note is the category's explanatory text for the given application.
func (c Category) Note(app string) string {
	switch c {
	case NativeMacOS:
		return "Fully native macOS app - optimal performance"
	case WebSaaS:
		return "Available as web app - works perfectly in browser"
	case Rosetta2Compatible:
		return "Runs via Rosetta 2 - excellent compatibility"
	case AlternativeAvailable:
		return fmt.Sprintf("Native macOS alternative available (e.g., %s)", alternativeFor(app))
	case RequiresVirtualization:
		return "Requires Parallels Desktop or similar - good performance"
	case NotCompatible:
		return "Limited compatibility - may need alternative solution"
	default:
		return "Compatibility varies"
	}
}

func alternativeFor(app string) string {
	lower := strings.ToLower(app)
	switch {
	case strings.Contains(lower, "project"):
		return "OmniPlan or Asana"
	case strings.Contains(lower, "visio"):
		return "Lucidchart or OmniGraffle"
	default:
		return "macOS alternative"
	}
}
