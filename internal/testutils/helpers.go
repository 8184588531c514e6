package testutils

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Symbols converts w into tape symbols without alphabet checks.
func Symbols(w string) []domain.Symbol {
	out := make([]domain.Symbol, 0, len(w))
	for _, r := range w {
		out = append(out, domain.Symbol(r))
	}
	return out
}

func tr(from string, read rune, next string, write rune, dir domain.Direction) domain.Transition {
	return domain.Transition{
		From: domain.State(from),
		Read: domain.Symbol(read),
		Move: domain.Move{Next: domain.State(next), Write: domain.Symbol(write), Dir: dir},
	}
}

// EvenZerosSpec accepts strings over {0,1} with an even number of 0s.
// Acceptance happens when q_even reads the blank after the input.
func EvenZerosSpec() domain.Spec {
	return domain.Spec{
		States:      []domain.State{"q_even", "q_odd", "accept", "reject"},
		Input:       []domain.Symbol{'0', '1'},
		TapeSymbols: []domain.Symbol{'0', '1', '_'},
		Initial:     "q_even",
		Blank:       '_',
		Accepting:   []domain.State{"accept"},
		Reject:      "reject",
		Transitions: []domain.Transition{
			tr("q_even", '0', "q_odd", '0', domain.Right),
			tr("q_odd", '0', "q_even", '0', domain.Right),
			tr("q_even", '1', "q_even", '1', domain.Right),
			tr("q_odd", '1', "q_odd", '1', domain.Right),
			tr("q_even", '_', "accept", '_', domain.Right),
		},
	}
}

// EvenZerosTM is EvenZerosSpec in the .tm text format.
const EvenZerosTM = `4
q_even
q_odd
accept
reject
2
0
1
3
0
1
_
q_even
_
1
accept
reject
5
q_even 0 : q_odd 0 R
q_odd 0 : q_even 0 R
q_even 1 : q_even 1 R
q_odd 1 : q_odd 1 R
q_even _ : accept _ R
`

// EvenZeros builds EvenZerosSpec.
func EvenZeros(t testing.TB) *domain.Machine {
	t.Helper()
	return mustMachine(t, EvenZerosSpec())
}

// HashMarkerSpec overwrites every 0 of its input with '#' and accepts at the
// blank. '#' is a tape symbol but not an input symbol.
func HashMarkerSpec() domain.Spec {
	return domain.Spec{
		States:      []domain.State{"mark", "accept", "reject"},
		Input:       []domain.Symbol{'0', '1'},
		TapeSymbols: []domain.Symbol{'0', '1', '#', '_'},
		Initial:     "mark",
		Blank:       '_',
		Accepting:   []domain.State{"accept"},
		Reject:      "reject",
		Transitions: []domain.Transition{
			tr("mark", '0', "mark", '#', domain.Right),
			tr("mark", '1', "mark", '1', domain.Right),
			tr("mark", '#', "mark", '#', domain.Right),
			tr("mark", '_', "accept", '_', domain.Right),
		},
	}
}

// HashMarkerTM is HashMarkerSpec in the .tm text format. Lines starting with
// "# " are comments while the bare "#" lines are symbols.
const HashMarkerTM = `# marks every 0 with #
3
mark
accept
reject
2
0
1
# tape alphabet, # included
4
0
1
#
_
mark
_
1
accept
reject
4
mark 0 : mark # R
# a cell already marked is skipped
mark 1 : mark 1 R
mark # : mark # R
mark _ : accept _ R
`

// HashMarker builds HashMarkerSpec.
func HashMarker(t testing.TB) *domain.Machine {
	t.Helper()
	return mustMachine(t, HashMarkerSpec())
}

// AcceptingStart has an initial state that is also accepting and still defines
// transitions out of it. Every input is accepted after one step.
func AcceptingStart(t testing.TB) *domain.Machine {
	t.Helper()
	return mustMachine(t, domain.Spec{
		States:      []domain.State{"q_even", "q_odd", "reject"},
		Input:       []domain.Symbol{'0', '1'},
		TapeSymbols: []domain.Symbol{'0', '1', '_'},
		Initial:     "q_even",
		Blank:       '_',
		Accepting:   []domain.State{"q_even"},
		Reject:      "reject",
		Transitions: []domain.Transition{
			tr("q_even", '0', "q_odd", '0', domain.Right),
			tr("q_odd", '0', "q_even", '0', domain.Right),
			tr("q_even", '1', "q_even", '1', domain.Right),
			tr("q_odd", '1', "q_odd", '1', domain.Right),
		},
	})
}

// RejectOnOne has no transition for (q0, '1') although '1' ∈ Σ.
func RejectOnOne(t testing.TB) *domain.Machine {
	t.Helper()
	return mustMachine(t, domain.Spec{
		States:      []domain.State{"q0", "accept", "reject"},
		Input:       []domain.Symbol{'0', '1'},
		TapeSymbols: []domain.Symbol{'0', '1', '_'},
		Initial:     "q0",
		Blank:       '_',
		Accepting:   []domain.State{"accept"},
		Reject:      "reject",
		Transitions: []domain.Transition{
			tr("q0", '0', "q0", '0', domain.Right),
			tr("q0", '_', "accept", '_', domain.Left),
		},
	})
}

// PrefixLooper accepts strings starting with 'a' and runs forever on strings
// starting with 'b'. The empty string is rejected.
func PrefixLooper(t testing.TB) *domain.Machine {
	t.Helper()
	return mustMachine(t, domain.Spec{
		States:      []domain.State{"q0", "loop", "accept", "reject"},
		Input:       []domain.Symbol{'b', 'a'},
		TapeSymbols: []domain.Symbol{'a', 'b', '_'},
		Initial:     "q0",
		Blank:       '_',
		Accepting:   []domain.State{"accept"},
		Reject:      "reject",
		Transitions: []domain.Transition{
			tr("q0", 'a', "accept", 'a', domain.Right),
			tr("q0", 'b', "loop", 'b', domain.Right),
			tr("loop", 'a', "loop", 'a', domain.Right),
			tr("loop", 'b', "loop", 'b', domain.Right),
			tr("loop", '_', "loop", '_', domain.Right),
		},
	})
}

// Palindromes accepts the palindromes over {0,1} by repeatedly erasing the
// first symbol and matching it against the last one.
func Palindromes(t testing.TB) *domain.Machine {
	t.Helper()
	return mustMachine(t, domain.Spec{
		States:      []domain.State{"q0", "have0", "have1", "check0", "check1", "back", "accept", "reject"},
		Input:       []domain.Symbol{'0', '1'},
		TapeSymbols: []domain.Symbol{'0', '1', '_'},
		Initial:     "q0",
		Blank:       '_',
		Accepting:   []domain.State{"accept"},
		Reject:      "reject",
		Transitions: []domain.Transition{
			tr("q0", '_', "accept", '_', domain.Right),
			tr("q0", '0', "have0", '_', domain.Right),
			tr("q0", '1', "have1", '_', domain.Right),
			tr("have0", '0', "have0", '0', domain.Right),
			tr("have0", '1', "have0", '1', domain.Right),
			tr("have0", '_', "check0", '_', domain.Left),
			tr("have1", '0', "have1", '0', domain.Right),
			tr("have1", '1', "have1", '1', domain.Right),
			tr("have1", '_', "check1", '_', domain.Left),
			tr("check0", '0', "back", '_', domain.Left),
			tr("check0", '_', "accept", '_', domain.Right),
			tr("check0", '1', "reject", '1', domain.Left),
			tr("check1", '1', "back", '_', domain.Left),
			tr("check1", '_', "accept", '_', domain.Right),
			tr("check1", '0', "reject", '0', domain.Left),
			tr("back", '0', "back", '0', domain.Left),
			tr("back", '1', "back", '1', domain.Left),
			tr("back", '_', "q0", '_', domain.Right),
		},
	})
}

// NoInput has an empty input alphabet and accepts the empty string.
func NoInput(t testing.TB) *domain.Machine {
	t.Helper()
	return mustMachine(t, domain.Spec{
		States:      []domain.State{"q0", "accept", "reject"},
		TapeSymbols: []domain.Symbol{'_'},
		Initial:     "q0",
		Blank:       '_',
		Accepting:   []domain.State{"accept"},
		Reject:      "reject",
		Transitions: []domain.Transition{
			tr("q0", '_', "accept", '_', domain.Right),
		},
	})
}

func mustMachine(t testing.TB, spec domain.Spec) *domain.Machine {
	t.Helper()
	m, err := domain.NewMachine(spec)
	require.NoError(t, err, "fixture machine must be well formed")
	return m
}
