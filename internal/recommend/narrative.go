package recommend

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/MacMatch/internal/compat"
	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
)

// Explanation writes the narrative for the recommended Mac. The compatibility
// sentence is appended only when applications were classified.
func Explanation(p hardware.MachineProfile, mac hardware.MacSpec, persona scoring.Persona, records []compat.Record, eff scoring.Efficiency) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your %s with %d GB RAM requires higher specs mainly due to Windows overhead. ", p.Processor, p.MemoryGB())
	fmt.Fprintf(&b, "A %s with %d GB unified memory can outperform it in typical %s workflows because: ", mac.Model, mac.RAMGB, persona)
	fmt.Fprintf(&b, "Mac's unified memory architecture is %.0f%% more efficient, ", (eff.RAM-1)*100)
	b.WriteString("macOS uses resources more effectively than Windows, ")
	b.WriteString("and Apple Silicon provides better performance per watt. ")

	if len(records) > 0 {
		switch avg := compat.OverallScore(records); {
		case avg >= 0.9:
			b.WriteString("All your key applications are fully compatible with macOS.")
		case avg >= 0.7:
			b.WriteString("Most applications work natively, with a few requiring simple alternatives.")
		}
	}
	return b.String()
}

// WorkflowMatches lists persona workflow lines, plus the native-apps line when
// any classified application runs natively.
func WorkflowMatches(tbl *Table, persona scoring.Persona, records []compat.Record) []string {
	out := append([]string{}, tbl.WorkflowFor(persona)...)
	if compat.HasNative(records) {
		out = append(out, tbl.NativeWorkflow)
	}
	return out
}
