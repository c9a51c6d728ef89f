package compat

import "strings"

// Record is the compatibility verdict for one installed application.
type Record struct {
	AppName  string   `json:"app_name"`
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	Note     string   `json:"note"`
}

// Rule classifies an application whose lowercased name satisfies Match.
// A zero Score uses the category score; an empty Note uses the category note.
type Rule struct {
	Name     string
	Match    func(lower string) bool
	Category Category
	Score    float64
	Note     string
}

func (r Rule) record(app string) Record {
	rec := Record{AppName: app, Category: r.Category, Score: r.Score, Note: r.Note}
	if rec.Score == 0 {
		rec.Score = r.Category.Score()
	}
	if rec.Note == "" {
		rec.Note = r.Category.Note(app)
	}
	return rec
}

const vscodeNote = "Visual Studio Code available natively on macOS - excellent developer experience"

// keywordTable is checked in order after the VS Code rule. "teams" precedes
// "microsoft teams", so Teams resolves to native.
var keywordTable = []struct {
	keyword  string
	category Category
}{
	{"microsoft office", NativeMacOS},
	{"adobe photoshop", NativeMacOS},
	{"adobe illustrator", NativeMacOS},
	{"adobe premiere", NativeMacOS},
	{"figma", NativeMacOS},
	{"slack", NativeMacOS},
	{"zoom", NativeMacOS},
	{"chrome", NativeMacOS},
	{"firefox", NativeMacOS},
	{"spotify", NativeMacOS},
	{"visual studio code", NativeMacOS},
	{"vscode", NativeMacOS},
	{"docker", NativeMacOS},
	{"cursor", NativeMacOS},
	{"postman", NativeMacOS},
	{"insomnia", NativeMacOS},
	{"sublime text", NativeMacOS},
	{"atom", NativeMacOS},
	{"node.js", NativeMacOS},
	{"nodejs", NativeMacOS},
	{"git", NativeMacOS},
	{"python", NativeMacOS},
	{"teams", NativeMacOS},

	{"microsoft teams", WebSaaS},
	{"outlook", WebSaaS},
	{"gmail", WebSaaS},
	{"google workspace", WebSaaS},
	{"salesforce", WebSaaS},
	{"notion", WebSaaS},

	{"autocad", Rosetta2Compatible},
	{"solidworks", Rosetta2Compatible},

	{"visual studio", RequiresVirtualization},
	{"sql server management", RequiresVirtualization},
	{"active directory", RequiresVirtualization},

	{"microsoft project", AlternativeAvailable},
	{"visio", AlternativeAvailable},
}

// Rules is the ordered classification chain. The first matching rule wins
// and the final rule always matches.
var Rules = buildRules()

func buildRules() []Rule {
	rules := []Rule{{
		Name:     "vscode",
		Match:    anyOf("visual studio code", "vscode"),
		Category: NativeMacOS,
		Score:    1.0,
		Note:     vscodeNote,
	}}

	for _, kw := range keywordTable {
		rules = append(rules, Rule{
			Name:     "keyword:" + kw.keyword,
			Match:    anyOf(kw.keyword),
			Category: kw.category,
		})
	}

	return append(rules,
		Rule{
			Name: "microsoft-code",
			Match: func(s string) bool {
				return isMicrosoft(s) && strings.Contains(s, "code") &&
					!containsAny(s, "sdk", ".net", "update")
			},
			Category: NativeMacOS,
			Score:    1.0,
			Note:     vscodeNote,
		},
		Rule{
			Name: "microsoft-office",
			Match: func(s string) bool {
				return isMicrosoft(s) && containsAny(s, "office", "365", "word", "excel", "powerpoint", "outlook")
			},
			Category: NativeMacOS,
			Score:    1.0,
			Note:     "Microsoft Office available natively on macOS",
		},
		Rule{
			Name:     "microsoft-edge",
			Match:    func(s string) bool { return isMicrosoft(s) && strings.Contains(s, "edge") },
			Category: NativeMacOS,
			Score:    1.0,
			Note:     "Microsoft Edge available natively on macOS",
		},
		Rule{
			Name:     "microsoft-onedrive",
			Match:    func(s string) bool { return isMicrosoft(s) && strings.Contains(s, "onedrive") },
			Category: NativeMacOS,
			Score:    1.0,
			Note:     "OneDrive available natively on macOS",
		},
		Rule{
			Name:     "microsoft-other",
			Match:    isMicrosoft,
			Category: RequiresVirtualization,
			Score:    0.7,
			Note:     "May require Parallels or alternative solution",
		},
		Rule{
			Name:     "developer-tools",
			Match:    anyOf("node", "git", "python", "cursor", "docker", "postman", "insomnia", "sublime", "atom"),
			Category: NativeMacOS,
			Score:    1.0,
			Note:     "Available natively on macOS - excellent developer tools",
		},
		Rule{
			Name: "windows-specific",
			Match: func(s string) bool {
				return strings.Contains(s, "windows") && !containsAny(s, "update", "sdk")
			},
			Category: RequiresVirtualization,
			Score:    0.7,
			Note:     "Windows-specific - may require alternative or virtualization",
		},
		Rule{
			Name:     "default",
			Match:    func(string) bool { return true },
			Category: WebSaaS,
			Score:    0.9,
			Note:     "Likely available as web app or macOS alternative",
		},
	)
}

// Classify rates each application, skipping framework and system noise.
func Classify(apps []string) []Record {
	out := make([]Record, 0, len(apps))
	for _, app := range apps {
		if rec, ok := ClassifyApp(app); ok {
			out = append(out, rec)
		}
	}
	return out
}

// ClassifyApp rates one application. ok is false for noise entries.
func ClassifyApp(app string) (Record, bool) {
	lower := strings.ToLower(strings.TrimSpace(app))
	if lower == "" || IsNoise(lower) {
		return Record{}, false
	}
	for _, r := range Rules {
		if r.Match(lower) {
			return r.record(app), true
		}
	}
	return Record{}, false
}

// OverallScore averages record scores; an empty list is fully compatible.
func OverallScore(records []Record) float64 {
	if len(records) == 0 {
		return 1.0
	}
	var sum float64
	for _, r := range records {
		sum += r.Score
	}
	return sum / float64(len(records))
}

// HasNative reports whether any record is a native macOS app.
func HasNative(records []Record) bool {
	for _, r := range records {
		if r.Category == NativeMacOS {
			return true
		}
	}
	return false
}

// IsNoise reports whether a lowercased name is a framework, SDK or system
// component rather than a user-facing application.
func IsNoise(lower string) bool {
	switch {
	case containsAny(lower, ".net framework", "targeting pack", "multi-targeting", "bootstrapper"):
		return true
	case strings.Contains(lower, "microsoft .net") && !strings.Contains(lower, "office"):
		return true
	case strings.Contains(lower, "sdk") && strings.Contains(lower, ".net") &&
		!containsAny(lower, "core", "5", "6", "7", "8"):
		return true
	case containsAny(lower, "clickonce", "kudu", "iisnode", "url rewrite"):
		return true
	case strings.Contains(lower, "mercurial") && strings.Contains(lower, "x86"):
		return true
	case strings.Contains(lower, "active directory") && strings.Contains(lower, "library"):
		return true
	case containsAny(lower, "update health", "health tools", "system component"):
		return true
	case strings.Contains(lower, "microsoft") && strings.Contains(lower, "framework") && !strings.Contains(lower, "office"):
		return true
	}
	return false
}

func isMicrosoft(s string) bool {
	return strings.Contains(s, "microsoft") || strings.Contains(s, "ms ")
}

func anyOf(keywords ...string) func(string) bool {
	return func(s string) bool { return containsAny(s, keywords...) }
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
