package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Spec is the raw, unvalidated description of a machine as handed over by a loader.
type Spec struct {
	States      []State
	Input       []Symbol
	TapeSymbols []Symbol
	Initial     State
	Blank       Symbol
	Accepting   []State
	Reject      State
	Transitions []Transition
}

type transitionKey struct {
	state  State
	symbol Symbol
}

// Machine is an immutable single-tape deterministic Turing machine.
// It is safe to share between goroutines.
type Machine struct {
	spec      Spec
	states    map[State]struct{}
	input     []Symbol
	inputSet  map[Symbol]struct{}
	tape      map[Symbol]struct{}
	accepting map[State]struct{}
	delta     map[transitionKey]Move
}

// NewMachine validates spec and builds a Machine from it.
// Every violated invariant is reported in a *MalformedMachineError.
func NewMachine(spec Spec) (*Machine, error) {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	m := &Machine{
		spec:      cloneSpec(spec),
		states:    make(map[State]struct{}, len(spec.States)),
		inputSet:  make(map[Symbol]struct{}, len(spec.Input)),
		tape:      make(map[Symbol]struct{}, len(spec.TapeSymbols)),
		accepting: make(map[State]struct{}, len(spec.Accepting)),
		delta:     make(map[transitionKey]Move, len(spec.Transitions)),
	}

	if len(spec.States) == 0 {
		addf("no states declared")
	}
	for _, q := range spec.States {
		if q == "" {
			addf("empty state name")
			continue
		}
		if _, dup := m.states[q]; dup {
			addf("duplicate state %q", q)
		}
		m.states[q] = struct{}{}
	}

	for _, s := range spec.TapeSymbols {
		if _, dup := m.tape[s]; dup {
			addf("duplicate tape symbol %q", s)
		}
		m.tape[s] = struct{}{}
	}
	if _, ok := m.tape[spec.Blank]; !ok {
		addf("blank symbol %q is not in the tape alphabet", spec.Blank)
	}

	for _, s := range spec.Input {
		if _, dup := m.inputSet[s]; dup {
			addf("duplicate input symbol %q", s)
		}
		m.inputSet[s] = struct{}{}
		if s == spec.Blank {
			addf("blank symbol %q appears in the input alphabet", s)
		}
		if _, ok := m.tape[s]; !ok {
			addf("input symbol %q is not in the tape alphabet", s)
		}
	}

	if !m.hasState(spec.Initial) {
		addf("initial state %q is not a declared state", spec.Initial)
	}
	for _, q := range spec.Accepting {
		if !m.hasState(q) {
			addf("accepting state %q is not a declared state", q)
		}
		if _, dup := m.accepting[q]; dup {
			addf("duplicate accepting state %q", q)
		}
		m.accepting[q] = struct{}{}
	}
	if !m.hasState(spec.Reject) {
		addf("reject state %q is not a declared state", spec.Reject)
	}

	for _, t := range spec.Transitions {
		if !m.hasState(t.From) {
			addf("transition %s: unknown state %q", t, t.From)
		}
		if !m.hasState(t.Next) {
			addf("transition %s: unknown state %q", t, t.Next)
		}
		if _, ok := m.tape[t.Read]; !ok {
			addf("transition %s: read symbol %q is not in the tape alphabet", t, t.Read)
		}
		if _, ok := m.tape[t.Write]; !ok {
			addf("transition %s: write symbol %q is not in the tape alphabet", t, t.Write)
		}
		if !t.Dir.Valid() {
			addf("transition %s: invalid direction", t)
		}
		k := transitionKey{t.From, t.Read}
		if _, dup := m.delta[k]; dup {
			addf("duplicate transition for (%s, %s)", t.From, t.Read)
			continue
		}
		m.delta[k] = t.Move
	}

	if len(problems) > 0 {
		return nil, &MalformedMachineError{Problems: problems}
	}

	m.input = slices.Clone(spec.Input)
	slices.Sort(m.input)
	return m, nil
}

func (m *Machine) hasState(q State) bool {
	_, ok := m.states[q]
	return ok
}

// TransitionFor returns δ(state, symbol) if it is defined.
func (m *Machine) TransitionFor(state State, symbol Symbol) (Move, bool) {
	mv, ok := m.delta[transitionKey{state, symbol}]
	return mv, ok
}

// IsAccepting reports whether q ∈ F.
func (m *Machine) IsAccepting(q State) bool {
	_, ok := m.accepting[q]
	return ok
}

// IsReject reports whether q is the designated reject state.
func (m *Machine) IsReject(q State) bool {
	return q == m.spec.Reject
}

// Initial returns the initial state.
func (m *Machine) Initial() State { return m.spec.Initial }

// Blank returns the blank symbol.
func (m *Machine) Blank() Symbol { return m.spec.Blank }

// Reject returns the designated reject state.
func (m *Machine) Reject() State { return m.spec.Reject }

// States returns Q in declaration order.
func (m *Machine) States() []State { return slices.Clone(m.spec.States) }

// Accepting returns F in declaration order.
func (m *Machine) Accepting() []State { return slices.Clone(m.spec.Accepting) }

// InputAlphabet returns Σ in ascending symbol order. This is the fixed total order
// used for canonical candidate generation.
func (m *Machine) InputAlphabet() []Symbol { return slices.Clone(m.input) }

// TapeAlphabet returns Γ in declaration order.
func (m *Machine) TapeAlphabet() []Symbol { return slices.Clone(m.spec.TapeSymbols) }

// Transitions returns δ sorted by (state, read symbol).
func (m *Machine) Transitions() []Transition {
	ts := slices.Clone(m.spec.Transitions)
	slices.SortFunc(ts, func(a, b Transition) int {
		if c := strings.Compare(string(a.From), string(b.From)); c != 0 {
			return c
		}
		return int(a.Read) - int(b.Read)
	})
	return ts
}

// Spec returns a copy of the description the machine was built from.
func (m *Machine) Spec() Spec { return cloneSpec(m.spec) }

// InInput reports whether s ∈ Σ.
func (m *Machine) InInput(s Symbol) bool {
	_, ok := m.inputSet[s]
	return ok
}

// ParseInput converts w into symbols, rejecting any rune outside Σ.
func (m *Machine) ParseInput(w string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(w))
	for i, r := range []rune(w) {
		s := Symbol(r)
		if !m.InInput(s) {
			return nil, fmt.Errorf("%w: symbol %q at offset %d is not in the input alphabet", ErrInvalidInput, s, i)
		}
		out = append(out, s)
	}
	return out, nil
}

// Fingerprint returns a stable digest of the machine's canonical description.
// Two machines with the same sets and transition relation share a fingerprint
// regardless of declaration order.
func (m *Machine) Fingerprint() string {
	var sb strings.Builder

	states := make([]string, 0, len(m.spec.States))
	for _, q := range m.spec.States {
		states = append(states, string(q))
	}
	slices.Sort(states)
	fmt.Fprintf(&sb, "Q=%q\n", states)
	fmt.Fprintf(&sb, "S=%q\n", string(symbolsToRunes(m.input)))

	gamma := slices.Clone(m.spec.TapeSymbols)
	slices.Sort(gamma)
	fmt.Fprintf(&sb, "G=%q\n", string(symbolsToRunes(gamma)))
	fmt.Fprintf(&sb, "q0=%q b=%q r=%q\n", m.spec.Initial, m.spec.Blank, m.spec.Reject)

	acc := make([]string, 0, len(m.spec.Accepting))
	for _, q := range m.spec.Accepting {
		acc = append(acc, string(q))
	}
	slices.Sort(acc)
	fmt.Fprintf(&sb, "F=%q\n", acc)

	for _, t := range m.Transitions() {
		fmt.Fprintf(&sb, "%q %q %q %q %s\n", t.From, t.Read, t.Next, t.Write, t.Dir)
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

func symbolsToRunes(ss []Symbol) []rune {
	rs := make([]rune, len(ss))
	for i, s := range ss {
		rs[i] = rune(s)
	}
	return rs
}

// SymbolsString joins symbols into a string.
func SymbolsString(ss []Symbol) string {
	return string(symbolsToRunes(ss))
}

func cloneSpec(s Spec) Spec {
	return Spec{
		States:      slices.Clone(s.States),
		Input:       slices.Clone(s.Input),
		TapeSymbols: slices.Clone(s.TapeSymbols),
		Initial:     s.Initial,
		Blank:       s.Blank,
		Accepting:   slices.Clone(s.Accepting),
		Reject:      s.Reject,
		Transitions: slices.Clone(s.Transitions),
	}
}
