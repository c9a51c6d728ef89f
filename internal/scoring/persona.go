package scoring

import "strings"

type personaRule struct {
	persona  Persona
	keywords []string
}

// detectionRules is evaluated in order; the first persona with any matching
// application wins.
var detectionRules = []personaRule{
	{PersonaDeveloper, []string{"visual studio", "intellij", "docker", "kubernetes", "git", "node", "python"}},
	{PersonaDesigner, []string{"photoshop", "illustrator", "figma", "sketch", "premiere", "after effects"}},
	{PersonaDataAnalyst, []string{"tableau", "power bi", "r studio", "jupyter", "matlab", "spss"}},
	{PersonaITAdmin, []string{"vmware", "virtualbox", "putty", "wireshark", "active directory", "sccm"}},
	{PersonaOfficeWorker, []string{"office", "outlook", "teams", "slack", "chrome", "edge"}},
}

// DetectPersona infers a persona from installed application names.
func DetectPersona(apps []string) Persona {
	lower := make([]string, len(apps))
	for i, a := range apps {
		lower[i] = strings.ToLower(a)
	}

	for _, rule := range detectionRules {
		for _, app := range lower {
			if containsAny(app, rule.keywords) {
				return rule.persona
			}
		}
	}
	return PersonaGeneral
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
