package schema_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evenZerosYAML = `
name: even zeros
states: [q_even, q_odd, accept, reject]
input_alphabet: [0, 1]
tape_alphabet: [0, 1, _]
initial: q_even
blank: _
accepting: [accept]
reject: reject
transitions:
  - {from: q_even, read: 0, to: q_odd, write: 0, move: R}
  - {from: q_odd, read: 0, to: q_even, write: 0, move: R}
  - {from: q_even, read: 1, to: q_even, write: 1, move: R}
  - {from: q_odd, read: 1, to: q_odd, write: 1, move: R}
  - {from: q_even, read: _, to: accept, write: _, move: R}
`

func TestDecode_YAMLWithNumericSymbols(t *testing.T) {
	m, err := schema.Decode([]byte(evenZerosYAML), schema.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, testutils.EvenZeros(t).Fingerprint(), m.Fingerprint())
}

func TestDecodeDocument_KeepsMetadata(t *testing.T) {
	doc, err := schema.DecodeDocument([]byte(evenZerosYAML), schema.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "even zeros", doc.Name)
	assert.Equal(t, []string{"0", "1"}, doc.InputAlphabet)
	assert.Equal(t, "R", doc.Transitions[0].Move)
}

func TestDecode_JSON(t *testing.T) {
	doc := `{
		"states": ["q0", "accept", "reject"],
		"input_alphabet": [],
		"tape_alphabet": ["_"],
		"initial": "q0",
		"blank": "_",
		"accepting": ["accept"],
		"reject": "reject",
		"transitions": [{"from": "q0", "read": "_", "to": "accept", "write": "_", "move": "R"}]
	}`
	m, err := schema.Decode([]byte(doc), schema.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, testutils.NoInput(t).Fingerprint(), m.Fingerprint())
}

func TestDecode_ReportsEveryFieldProblem(t *testing.T) {
	doc := `
states: [q0]
input_alphabet: ["ab"]
tape_alphabet: [_]
blank: _
accepting: []
reject: q0
transitions:
  - {from: q0, read: _, to: q0, write: _, move: up}
`
	_, err := schema.Decode([]byte(doc), schema.FormatYAML)
	require.Error(t, err)

	errs := schema.ValidationErrors(err)
	require.Len(t, errs, 3)

	keys := make([]string, 0, len(errs))
	for _, e := range errs {
		var ve *schema.ValidationError
		require.ErrorAs(t, e, &ve)
		keys = append(keys, ve.Key)
	}
	assert.Equal(t, []string{"initial", "input_alphabet", "transitions"}, keys)
	assert.Contains(t, err.Error(), "3 validation errors")
}

func TestDecode_MalformedMachine(t *testing.T) {
	doc := `
states: [q0, reject]
input_alphabet: [a]
tape_alphabet: [_]
initial: q0
blank: _
accepting: [done]
reject: reject
transitions: []
`
	_, err := schema.Decode([]byte(doc), schema.FormatYAML)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedMachine)
}

func TestDecodeDocument_Errors(t *testing.T) {
	_, err := schema.DecodeDocument([]byte("states: [\n"), schema.FormatYAML)
	assert.Error(t, err)

	_, err = schema.DecodeDocument([]byte(""), schema.FormatYAML)
	assert.ErrorContains(t, err, "empty")

	_, err = schema.DecodeDocument([]byte("4\n"), schema.FormatTM)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]schema.Format{
		"tm": schema.FormatTM, ".yml": schema.FormatYAML, "YAML": schema.FormatYAML, ".json": schema.FormatJSON,
	} {
		got, err := schema.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := schema.ParseFormat(".txt")
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	machines := map[string]*domain.Machine{
		"even zeros":  testutils.EvenZeros(t),
		"palindromes": testutils.Palindromes(t),
		"no input":    testutils.NoInput(t),
	}
	for name, m := range machines {
		for _, f := range []schema.Format{schema.FormatTM, schema.FormatYAML, schema.FormatJSON} {
			t.Run(name+"/"+string(f), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, schema.Encode(&buf, m, f))

				back, err := schema.Decode(buf.Bytes(), f)
				require.NoError(t, err)
				assert.Equal(t, m.Fingerprint(), back.Fingerprint())
			})
		}
	}
}

func TestEncode_YAMLQuotesDigits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, schema.Encode(&buf, testutils.EvenZeros(t), schema.FormatYAML))
	assert.Contains(t, buf.String(), `"0"`)
	assert.Contains(t, buf.String(), "input_alphabet:")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	tm := filepath.Join(dir, "even.tm")
	require.NoError(t, os.WriteFile(tm, []byte(testutils.EvenZerosTM), 0644))
	yml := filepath.Join(dir, "even.yml")
	require.NoError(t, os.WriteFile(yml, []byte(evenZerosYAML), 0644))

	a, err := schema.LoadFile(tm)
	require.NoError(t, err)
	b, err := schema.LoadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	_, err = schema.LoadFile(filepath.Join(dir, "missing.tm"))
	assert.Error(t, err)

	_, err = schema.LoadFile(filepath.Join(dir, "machine.txt"))
	assert.ErrorContains(t, err, "unknown machine format")
}

func TestSymbolType(t *testing.T) {
	typ := schema.Symbol()
	assert.NoError(t, typ.Validate("a"))
	assert.NoError(t, typ.Validate("λ"))
	assert.NoError(t, typ.Validate(7))
	assert.NoError(t, typ.Validate(float64(3)))
	assert.Error(t, typ.Validate("ab"))
	assert.Error(t, typ.Validate(""))
	assert.Error(t, typ.Validate(12))
	assert.Error(t, typ.Validate(1.5))
	assert.Error(t, typ.Validate(true))
}
