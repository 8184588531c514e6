package compiler_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EvenZeros(t *testing.T) {
	spec, err := compiler.NewParser().Parse([]byte(testutils.EvenZerosTM))
	require.NoError(t, err)
	assert.Equal(t, testutils.EvenZerosSpec(), spec)
}

func TestParse_CommentsAndCRLF(t *testing.T) {
	doc := "# even number of zeros\r\n\r\n" + strings.ReplaceAll(testutils.EvenZerosTM, "\n", "\r\n")
	spec, err := compiler.NewParser().Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, testutils.EvenZerosSpec(), spec)
}

func TestParse_HashIsAValidSymbol(t *testing.T) {
	doc := `3
q0
accept
reject
1
#
2
#
_
q0
_
1
accept
reject
1
q0 # : accept # R
`
	spec, err := compiler.NewParser().Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []domain.Symbol{'#'}, spec.Input)
	assert.Equal(t, domain.Symbol('#'), spec.Transitions[0].Read)
}

func TestParse_HashCommentsAndHashSymbols(t *testing.T) {
	spec, err := compiler.NewParser().Parse([]byte(testutils.HashMarkerTM))
	require.NoError(t, err)
	assert.Equal(t, testutils.HashMarkerSpec(), spec)

	m, err := compiler.NewParser().Compile([]byte(testutils.HashMarkerTM))
	require.NoError(t, err)
	assert.Equal(t, testutils.HashMarker(t).Fingerprint(), m.Fingerprint())
}

func TestParse_HugeCountFailsAtEndOfDocument(t *testing.T) {
	for _, doc := range []string{
		"99999999999999999\nq0\n",
		"1\nq0\n99999999999999999\n0\n",
		"1\nq0\n0\n1\n_\nq0\n_\n0\nq0\n99999999999999999\n",
	} {
		_, err := compiler.NewParser().Parse([]byte(doc))
		var se *compiler.SyntaxError
		require.True(t, errors.As(err, &se), "got %T: %v", err, err)
		assert.Contains(t, se.Msg, "unexpected end of document")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		line int
		msg  string
	}{
		{"empty", "", 0, "expected state count"},
		{"bad count", "two\n", 1, "state count"},
		{"negative count", "-1\n", 1, "state count"},
		{"truncated", "2\nq0\n", 2, "expected state"},
		{"multi-rune symbol", "1\nq0\n1\n01\n", 4, "single character"},
		{
			"missing colon",
			"1\nq0\n0\n1\n_\nq0\n_\n0\nq0\n1\nq0 _ q0 _ R\n",
			11, "missing ':'",
		},
		{
			"bad direction",
			"1\nq0\n0\n1\n_\nq0\n_\n0\nq0\n1\nq0 _ : q0 _ X\n",
			11, "invalid direction",
		},
		{
			"trailing content",
			"1\nq0\n0\n1\n_\nq0\n_\n0\nq0\n0\nextra\n",
			11, "unexpected content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.NewParser().Parse([]byte(tt.doc))
			require.Error(t, err)

			var se *compiler.SyntaxError
			require.True(t, errors.As(err, &se), "got %T: %v", err, err)
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, se.Msg, tt.msg)
		})
	}
}

func TestCompile_ReportsMalformedMachine(t *testing.T) {
	// Initial state is not declared.
	doc := strings.Replace(testutils.EvenZerosTM, "q_even\n_\n1", "q_start\n_\n1", 1)
	_, err := compiler.NewParser().Compile([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedMachine)
	assert.Contains(t, err.Error(), "q_start")
}

func TestFormat_RoundTrip(t *testing.T) {
	for name, m := range map[string]*domain.Machine{
		"even zeros":  testutils.EvenZeros(t),
		"palindromes": testutils.Palindromes(t),
		"no input":    testutils.NoInput(t),
		"hash marker": testutils.HashMarker(t),
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, compiler.Format(&buf, m))

			back, err := compiler.NewParser().Compile(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, m.Fingerprint(), back.Fingerprint())

			var again bytes.Buffer
			require.NoError(t, compiler.Format(&again, back))
			assert.Equal(t, buf.String(), again.String())
		})
	}
}
