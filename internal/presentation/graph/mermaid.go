package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Overlay contains run data to visualize on the diagram.
type Overlay struct {
	VisitedStates []domain.State
	CurrentState  domain.State
	Verdict       domain.Verdict
}

// OverlayFromOutcome builds an overlay from a traced outcome.
func OverlayFromOutcome(out domain.Outcome) *Overlay {
	o := &Overlay{CurrentState: out.State, Verdict: out.Verdict}
	for _, s := range out.Trace {
		o.VisitedStates = append(o.VisitedStates, s.State)
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the machine's state graph.
// Shapes follow the usual automaton conventions:
// - Initial: ((Circle))
// - Accepting: (((Double circle)))
// - Reject: [/Parallelogram/]
// - Default: (Rounded)
// Transitions between the same pair of states share one edge whose label lists
// every "read/write,dir" triple.
func GenerateMermaid(m *domain.Machine, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, q := range m.States() {
		id := sanitizeMermaidID(q)
		opener, closer := "(", ")"
		switch {
		case m.IsAccepting(q):
			opener, closer = "(((", ")))"
		case q == m.Initial():
			opener, closer = "((", "))"
		case m.IsReject(q):
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(string(q)), closer)
	}

	type edge struct{ from, to domain.State }
	var order []edge
	labels := make(map[edge][]string)
	for _, t := range m.Transitions() {
		e := edge{t.From, t.Next}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%s/%s,%s", t.Read, t.Write, t.Dir))
	}
	for _, e := range order {
		label := escapeLabel(strings.Join(labels[e], " "))
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", sanitizeMermaidID(e.from), label, sanitizeMermaidID(e.to))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills under both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef rejected fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, q := range overlay.VisitedStates {
			id := sanitizeMermaidID(q)
			if !seen[id] {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}

		if overlay.CurrentState != "" {
			class := "current"
			switch overlay.Verdict {
			case domain.VerdictAccepted:
				class = "accepted"
			case domain.VerdictRejected:
				class = "rejected"
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeMermaidID(overlay.CurrentState), class)
		}
	}

	return sb.String()
}

// sanitizeMermaidID maps a state name to a Mermaid node id. The prefix keeps
// names like "end" from colliding with Mermaid keywords.
func sanitizeMermaidID(q domain.State) string {
	var sb strings.Builder
	sb.WriteString("s_")
	for _, r := range string(q) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "_%x_", r)
		}
	}
	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
