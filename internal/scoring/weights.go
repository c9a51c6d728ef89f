package scoring

import (
	"fmt"
	"strings"
)

// Persona is a usage profile that biases scoring toward the axes it cares about.
type Persona string

const (
	PersonaDeveloper    Persona = "Developer"
	PersonaDesigner     Persona = "Designer"
	PersonaOfficeWorker Persona = "OfficeWorker"
	PersonaITAdmin      Persona = "ITAdmin"
	PersonaDataAnalyst  Persona = "DataAnalyst"
	PersonaStudent      Persona = "Student"
	PersonaGeneral      Persona = "General"
)

// Personas lists every persona in declaration order.
var Personas = []Persona{
	PersonaDeveloper, PersonaDesigner, PersonaOfficeWorker, PersonaITAdmin,
	PersonaDataAnalyst, PersonaStudent, PersonaGeneral,
}

// ParsePersona resolves a case-insensitive persona name.
func ParsePersona(s string) (Persona, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Personas {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// PersonaWeights defines per-axis multipliers for a persona.
// Every multiplier defaults to 1.0.
type PersonaWeights struct {
	CPU         float64 `json:"cpu"`
	RAM         float64 `json:"ram"`
	Storage     float64 `json:"storage"`
	GPU         float64 `json:"gpu"`
	Battery     float64 `json:"battery"`
	Portability float64 `json:"portability"`
	Description string  `json:"description"`
}

// DefaultWeights returns the General persona weights.
func DefaultWeights() PersonaWeights {
	return personaTable[PersonaGeneral]
}

var personaTable = map[Persona]PersonaWeights{
	PersonaDeveloper: {
		CPU: 1.2, RAM: 1.3, Storage: 1.1, GPU: 0.8, Battery: 1.0, Portability: 0.9,
		Description: "Developers need strong CPU and RAM for compiling, running VMs, and IDEs",
	},
	PersonaDesigner: {
		CPU: 1.1, RAM: 1.2, Storage: 1.2, GPU: 1.3, Battery: 1.0, Portability: 1.0,
		Description: "Designers need GPU power for graphics work and color-accurate displays",
	},
	PersonaOfficeWorker: {
		CPU: 0.9, RAM: 1.0, Storage: 0.9, GPU: 0.7, Battery: 1.2, Portability: 1.1,
		Description: "Office workers prioritize battery life and portability",
	},
	PersonaITAdmin: {
		CPU: 1.1, RAM: 1.2, Storage: 1.0, GPU: 0.8, Battery: 1.0, Portability: 1.0,
		Description: "IT admins need reliable performance for multiple tools and VMs",
	},
	PersonaDataAnalyst: {
		CPU: 1.3, RAM: 1.4, Storage: 1.1, GPU: 0.9, Battery: 0.9, Portability: 0.8,
		Description: "Data analysts need maximum CPU and RAM for large datasets",
	},
	PersonaStudent: {
		CPU: 0.9, RAM: 1.0, Storage: 0.9, GPU: 0.8, Battery: 1.3, Portability: 1.2,
		Description: "Students need long battery life and portability for campus use",
	},
	PersonaGeneral: {
		CPU: 1.0, RAM: 1.0, Storage: 1.0, GPU: 1.0, Battery: 1.0, Portability: 1.0,
		Description: "General use - balanced performance",
	},
}

// WeightsFor looks up the weights for a persona. Unknown personas get the
// General weights.
func WeightsFor(p Persona) PersonaWeights {
	if w, ok := personaTable[p]; ok {
		return w
	}
	return DefaultWeights()
}

// Validate checks that no multiplier is negative.
func (w PersonaWeights) Validate() error {
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// ValidateWeightTable checks every persona's weights.
func ValidateWeightTable() error {
	for _, p := range Personas {
		w, ok := personaTable[p]
		if !ok {
			return fmt.Errorf("persona %s: no weights", p)
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("persona %s: %w", p, err)
		}
	}
	return nil
}

func (w PersonaWeights) asList() []float64 {
	return []float64{w.CPU, w.RAM, w.Storage, w.GPU, w.Battery, w.Portability}
}
