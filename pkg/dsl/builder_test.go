package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenZeros() *Builder {
	b := New().Input("01")

	b.Add("q_even").Initial().
		On('0', "q_odd", '0', domain.Right).
		Pass('1', "q_even", domain.Right).
		Pass('_', "accept", domain.Right)

	b.Add("q_odd").
		Pass('0', "q_even", domain.Right).
		Pass('1', "q_odd", domain.Right)

	b.Add("accept").Accept()
	return b
}

func TestBuilder_EvenZeros(t *testing.T) {
	m, err := evenZeros().Build()
	require.NoError(t, err)

	assert.Equal(t, domain.State("q_even"), m.Initial())
	assert.Equal(t, domain.State(DefaultReject), m.Reject())
	assert.Equal(t, []domain.State{"accept"}, m.Accepting())
	assert.ElementsMatch(t, []domain.State{"q_even", "q_odd", "accept", "reject"}, m.States())
	assert.ElementsMatch(t, testutils.Symbols("01_"), m.TapeAlphabet())
	assert.Equal(t, testutils.EvenZeros(t).Fingerprint(), m.Fingerprint())

	got, err := runtime.Enumerate(context.Background(), m, 4, domain.EnumerationPolicy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "1", "00", "11"}, got)
}

func TestBuilder_AddReturnsExistingState(t *testing.T) {
	b := New()
	first := b.Add("q0")
	assert.Same(t, first, b.Add("q0"))
	assert.Equal(t, "q0", first.Name())
}

func TestBuilder_FirstStateIsInitial(t *testing.T) {
	b := New().Input("a")
	b.Add("start").Pass('a', "done", domain.Right)
	b.Add("done").Accept()
	b.Add("no").Reject()

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.State("start"), m.Initial())
	assert.Equal(t, domain.State("no"), m.Reject())
	assert.NotContains(t, m.States(), domain.State(DefaultReject))
}

func TestBuilder_TapeSymbolsAndBlank(t *testing.T) {
	b := New().Input("a").Blank('B').Tape("X")
	b.Add("q0").On('a', "q0", 'Y', domain.Right)

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.Symbol('B'), m.Blank())
	assert.ElementsMatch(t, testutils.Symbols("aBXY"), m.TapeAlphabet())
}

func TestBuilder_Errors(t *testing.T) {
	_, err := New().Build()
	assert.Error(t, err)

	// The blank may not be an input symbol.
	b := New().Input("0_")
	b.Add("q0")
	_, err = b.Build()
	assert.ErrorIs(t, err, domain.ErrMalformedMachine)
}
