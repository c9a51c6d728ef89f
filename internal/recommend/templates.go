package recommend

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
)

//go:embed templates.yaml
var templatesYAML []byte

// AdvantagesPerPersona is the number of advantage statements every persona carries.
const AdvantagesPerPersona = 4

// Advantage is one persona-specific Mac advantage statement.
type Advantage struct {
	Title             string `yaml:"title" json:"title"`
	Description       string `yaml:"description" json:"description"`
	WindowsLimitation string `yaml:"windows_limitation" json:"windows_limitation"`
}

// TierCopy is the presentation text attached to a tier label.
type TierCopy struct {
	Rationale  string   `yaml:"rationale" json:"rationale"`
	Advantages []string `yaml:"advantages" json:"advantages"`
}

// Table is the parsed persona template table.
type Table struct {
	Advantages     map[scoring.Persona][]Advantage `yaml:"advantages"`
	Workflows      map[scoring.Persona][]string    `yaml:"workflows"`
	NativeWorkflow string                          `yaml:"native_workflow"`
	Tiers          map[scoring.Tier]TierCopy       `yaml:"tiers"`
}

// AdvantagesFor returns the persona's advantages, or the General set when the
// persona has none.
func (t *Table) AdvantagesFor(p scoring.Persona) []Advantage {
	if adv, ok := t.Advantages[p]; ok {
		return adv
	}
	return t.Advantages[scoring.PersonaGeneral]
}

// WorkflowFor returns the persona's workflow lines. Personas without an entry
// get none.
func (t *Table) WorkflowFor(p scoring.Persona) []string {
	return t.Workflows[p]
}

// Tier returns the copy for a tier label.
func (t *Table) Tier(tier scoring.Tier) TierCopy {
	return t.Tiers[tier]
}

// Templates parses the embedded table on first use.
type Templates struct {
	raw []byte

	once  sync.Once
	table *Table
	err   error
}

// NewTemplates returns the embedded template table loader.
func NewTemplates() *Templates {
	return &Templates{raw: templatesYAML}
}

// NewTemplatesFromYAML returns a loader over caller-supplied YAML.
func NewTemplatesFromYAML(raw []byte) *Templates {
	return &Templates{raw: raw}
}

// Table returns the parsed table, parsing it on the first call.
func (t *Templates) Table() (*Table, error) {
	t.once.Do(func() {
		t.table, t.err = parseTable(t.raw)
	})
	return t.table, t.err
}

func parseTable(raw []byte) (*Table, error) {
	var tbl Table
	if err := yaml.Unmarshal(raw, &tbl); err != nil {
		return nil, fmt.Errorf("parsing persona templates: %w", err)
	}
	general, ok := tbl.Advantages[scoring.PersonaGeneral]
	if !ok || len(general) == 0 {
		return nil, fmt.Errorf("persona templates: no %s advantages", scoring.PersonaGeneral)
	}
	for p, adv := range tbl.Advantages {
		if len(adv) != AdvantagesPerPersona {
			return nil, fmt.Errorf("persona templates: %s has %d advantages, want %d", p, len(adv), AdvantagesPerPersona)
		}
	}
	return &tbl, nil
}
