package dsl

import "github.com/aretw0/turing/pkg/domain"

// StateBuilder provides a fluent API for configuring a state and its transitions.
type StateBuilder struct {
	state   domain.State
	accept  bool
	builder *Builder
}

// Initial marks the state as the start state.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.initial = s.state
	return s
}

// Accept marks the state as accepting.
func (s *StateBuilder) Accept() *StateBuilder {
	s.accept = true
	return s
}

// Reject marks the state as the reject state.
func (s *StateBuilder) Reject() *StateBuilder {
	s.builder.reject = s.state
	return s
}

// On adds δ(state, read) = (next, write, dir). The next state is declared if needed.
func (s *StateBuilder) On(read rune, next string, write rune, dir domain.Direction) *StateBuilder {
	s.builder.Add(next)
	s.builder.transitions = append(s.builder.transitions, domain.Transition{
		From: s.state,
		Read: domain.Symbol(read),
		Move: domain.Move{Next: domain.State(next), Write: domain.Symbol(write), Dir: dir},
	})
	return s
}

// Pass adds a transition that writes back the symbol it reads.
func (s *StateBuilder) Pass(read rune, next string, dir domain.Direction) *StateBuilder {
	return s.On(read, next, read, dir)
}

// Name returns the state name.
func (s *StateBuilder) Name() string {
	return string(s.state)
}
