package tui_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracePrinter_Plain(t *testing.T) {
	out, err := runtime.Run(context.Background(), testutils.EvenZeros(t), testutils.Symbols("01"), runtime.RunOptions{Trace: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tui.NewTracePrinter(&buf, false).Trace(out.Trace))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+len(out.Trace))
	assert.Contains(t, lines[0], "State")
	assert.Contains(t, lines[1], "q_even")
	assert.Contains(t, lines[1], "[0]|1")
	assert.Contains(t, lines[3], "0|1|[_]")
	assert.Contains(t, lines[3], "@2")
}

func TestTracePrinter_WindowOffset(t *testing.T) {
	var buf bytes.Buffer
	p := tui.NewTracePrinter(&buf, false)
	require.NoError(t, p.Snapshot(domain.Snapshot{Step: 7, State: "q", Head: 5, Offset: 4, Cells: "abc"}))
	assert.Contains(t, buf.String(), "a|[b]|c")
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "The string '00' is accepted by the Turing machine",
		tui.Verdict("00", domain.Outcome{Verdict: domain.VerdictAccepted}))
	assert.Equal(t, "The string '0' is NOT accepted by the Turing machine",
		tui.Verdict("0", domain.Outcome{Verdict: domain.VerdictRejected}))
	assert.Contains(t, tui.Verdict("b", domain.Outcome{Verdict: domain.VerdictStepLimitExceeded, Steps: 10}), "10 steps")
}

func TestDescribe(t *testing.T) {
	md := tui.Describe(testutils.EvenZeros(t), "even zeros")

	assert.True(t, strings.HasPrefix(md, "# even zeros\n"))
	assert.Contains(t, md, "| Initial state | `q_even` |")
	assert.Contains(t, md, "| `q_even` | `0` | `q_odd` | `0` | R |")
	assert.NotContains(t, md, "## Lint")

	md = tui.Describe(testutils.AcceptingStart(t), "")
	assert.Contains(t, md, "# Turing machine")
	assert.Contains(t, md, "## Lint")
	assert.Contains(t, md, "unreachable_state")
}

func TestDescribe_EmptyInputAlphabet(t *testing.T) {
	md := tui.Describe(testutils.NoInput(t), "x")
	assert.Contains(t, md, "| Input alphabet | ∅ |")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestPrintBanner_Plain(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, false)
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "|___/")
}

func TestColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, tui.ColorEnabled(os.Stdout))
}
