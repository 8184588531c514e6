package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/domain"
)

// DefaultBlank is the blank symbol used when Blank is never called.
const DefaultBlank = '_'

// DefaultReject names the reject state added when none is declared.
const DefaultReject = "reject"

// Builder manages the machine construction.
type Builder struct {
	states  []domain.State
	byName  map[domain.State]*StateBuilder
	input   []domain.Symbol
	tape    []domain.Symbol
	blank   domain.Symbol
	initial domain.State
	reject  domain.State

	transitions []domain.Transition
}

// New creates a new machine builder.
func New() *Builder {
	return &Builder{
		byName: make(map[domain.State]*StateBuilder),
		blank:  DefaultBlank,
	}
}

// Input sets the input alphabet, one symbol per rune of symbols.
func (b *Builder) Input(symbols string) *Builder {
	b.input = appendRunes(b.input[:0], symbols)
	return b
}

// Tape declares extra tape symbols beyond those the transitions mention.
func (b *Builder) Tape(symbols string) *Builder {
	b.tape = appendRunes(b.tape, symbols)
	return b
}

// Blank sets the blank symbol.
func (b *Builder) Blank(s rune) *Builder {
	b.blank = domain.Symbol(s)
	return b
}

// Add declares a state. If the state already exists, it returns the existing builder.
func (b *Builder) Add(name string) *StateBuilder {
	q := domain.State(name)
	if sb, ok := b.byName[q]; ok {
		return sb
	}
	sb := &StateBuilder{state: q, builder: b}
	b.byName[q] = sb
	b.states = append(b.states, q)
	return sb
}

// Build compiles the declarations into a machine.
// The first declared state is initial unless another is marked.
func (b *Builder) Build() (*domain.Machine, error) {
	if len(b.states) == 0 {
		return nil, fmt.Errorf("dsl: no states declared")
	}

	initial := b.initial
	if initial == "" {
		initial = b.states[0]
	}
	reject := b.reject
	if reject == "" {
		reject = b.Add(DefaultReject).state
	}

	var accepting []domain.State
	for _, q := range b.states {
		if b.byName[q].accept {
			accepting = append(accepting, q)
		}
	}

	tape := slices.Clone(b.input)
	tape = appendUnique(tape, b.blank)
	for _, s := range b.tape {
		tape = appendUnique(tape, s)
	}
	for _, t := range b.transitions {
		tape = appendUnique(tape, t.Read)
		tape = appendUnique(tape, t.Write)
	}

	m, err := domain.NewMachine(domain.Spec{
		States:      slices.Clone(b.states),
		Input:       slices.Clone(b.input),
		TapeSymbols: tape,
		Initial:     initial,
		Blank:       b.blank,
		Accepting:   accepting,
		Reject:      reject,
		Transitions: slices.Clone(b.transitions),
	})
	if err != nil {
		return nil, fmt.Errorf("dsl: %w", err)
	}
	return m, nil
}

func appendRunes(dst []domain.Symbol, s string) []domain.Symbol {
	for _, r := range s {
		dst = appendUnique(dst, domain.Symbol(r))
	}
	return dst
}

func appendUnique(dst []domain.Symbol, s domain.Symbol) []domain.Symbol {
	if slices.Contains(dst, s) {
		return dst
	}
	return append(dst, s)
}
