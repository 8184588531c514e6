package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
)

// Describe renders a markdown summary of m: its sets, its transition table and
// any lint findings.
func Describe(m *domain.Machine, name string) string {
	var sb strings.Builder
	if name == "" {
		name = "Turing machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)

	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| States | %s |\n", code(statesList(m.States())))
	fmt.Fprintf(&sb, "| Initial state | %s |\n", code(string(m.Initial())))
	fmt.Fprintf(&sb, "| Accepting states | %s |\n", code(statesList(m.Accepting())))
	fmt.Fprintf(&sb, "| Reject state | %s |\n", code(string(m.Reject())))
	fmt.Fprintf(&sb, "| Input alphabet | %s |\n", code(symbolsList(m.InputAlphabet())))
	fmt.Fprintf(&sb, "| Tape alphabet | %s |\n", code(symbolsList(m.TapeAlphabet())))
	fmt.Fprintf(&sb, "| Blank | %s |\n", code(m.Blank().String()))
	fmt.Fprintf(&sb, "| Fingerprint | %s |\n\n", code(m.Fingerprint()[:16]))

	sb.WriteString("## Transitions\n\n")
	ts := m.Transitions()
	if len(ts) == 0 {
		sb.WriteString("_none_\n")
	} else {
		sb.WriteString("| State | Read | Next | Write | Move |\n|---|---|---|---|---|\n")
		for _, t := range ts {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				code(string(t.From)), code(t.Read.String()), code(string(t.Next)), code(t.Write.String()), t.Dir)
		}
	}

	report := validator.Lint(m)
	if len(report.Findings) > 0 {
		sb.WriteString("\n## Lint\n\n")
		for _, f := range report.Findings {
			fmt.Fprintf(&sb, "- **%s**: %s\n", f.Kind, f.Message)
		}
	}
	return sb.String()
}

func code(s string) string {
	if s == "" {
		return "∅"
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}

func statesList(qs []domain.State) string {
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		parts = append(parts, string(q))
	}
	return strings.Join(parts, ", ")
}

func symbolsList(ss []domain.Symbol) string {
	parts := make([]string, 0, len(ss))
	for _, s := range ss {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}
