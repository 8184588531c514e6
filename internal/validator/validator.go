package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Kind classifies a lint finding.
type Kind string

const (
	KindUnreachableState  Kind = "unreachable_state"
	KindDeadTransition    Kind = "dead_transition"
	KindUnusedSymbol      Kind = "unused_symbol"
	KindNoReachableAccept Kind = "no_reachable_accept"
)

// Finding is a single lint result. Findings never make a machine invalid;
// they point at parts of the description that can never take effect.
type Finding struct {
	Kind    Kind   `json:"kind"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Report is the result of linting a machine.
type Report struct {
	Reachable []domain.State `json:"reachable"`
	Findings  []Finding      `json:"findings"`
}

// Err returns nil for a clean report and a summary error otherwise.
func (r *Report) Err() error {
	if len(r.Findings) == 0 {
		return nil
	}
	lines := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		lines = append(lines, f.String())
	}
	return fmt.Errorf("found %d problems:\n- %s", len(lines), strings.Join(lines, "\n- "))
}

// Lint inspects m for states that can never be entered, transitions that can
// never fire and tape symbols that are never used.
func Lint(m *domain.Machine) *Report {
	r := &Report{Reachable: Reachable(m)}
	reached := make(map[domain.State]bool, len(r.Reachable))
	for _, q := range r.Reachable {
		reached[q] = true
	}

	for _, q := range m.States() {
		if !reached[q] && !m.IsReject(q) {
			r.add(KindUnreachableState, string(q), fmt.Sprintf("state %q is never entered from %q", q, m.Initial()))
		}
	}

	accepting := false
	for _, q := range m.Accepting() {
		accepting = accepting || reached[q]
	}
	if !accepting {
		r.add(KindNoReachableAccept, string(m.Initial()), "no accepting state is reachable, the language is empty")
	}

	written := make(map[domain.Symbol]bool)
	for _, t := range m.Transitions() {
		written[t.Write] = true
		written[t.Read] = true
		if m.IsAccepting(t.From) || m.IsReject(t.From) {
			r.add(KindDeadTransition, t.String(), fmt.Sprintf("transition %s leaves a halting state and never fires", t))
		}
	}

	for _, s := range m.TapeAlphabet() {
		if s == m.Blank() || m.InInput(s) || written[s] {
			continue
		}
		r.add(KindUnusedSymbol, s.String(), fmt.Sprintf("tape symbol %q is never read or written", s))
	}
	return r
}

func (r *Report) add(kind Kind, subject, msg string) {
	r.Findings = append(r.Findings, Finding{Kind: kind, Subject: subject, Message: msg})
}

// Reachable returns the states reachable from the initial state, in breadth-first
// order. Halting states are reachable but are not expanded.
func Reachable(m *domain.Machine) []domain.State {
	next := make(map[domain.State][]domain.State)
	for _, t := range m.Transitions() {
		next[t.From] = append(next[t.From], t.Next)
	}

	visited := map[domain.State]bool{m.Initial(): true}
	order := []domain.State{m.Initial()}
	queue := []domain.State{m.Initial()}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if m.IsAccepting(current) || m.IsReject(current) {
			continue
		}
		for _, target := range next[current] {
			if visited[target] {
				continue
			}
			visited[target] = true
			order = append(order, target)
			queue = append(queue, target)
		}
	}
	return slices.Clip(order)
}
