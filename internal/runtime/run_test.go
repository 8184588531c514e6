package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, m *domain.Machine, w string, opts runtime.RunOptions) domain.Outcome {
	t.Helper()
	out, err := runtime.Run(context.Background(), m, testutils.Symbols(w), opts)
	require.NoError(t, err)
	return out
}

func TestRun_EvenZeros(t *testing.T) {
	m := testutils.EvenZeros(t)

	tests := []struct {
		input string
		want  domain.Verdict
	}{
		{"", domain.VerdictAccepted},
		{"0", domain.VerdictRejected},
		{"00", domain.VerdictAccepted},
		{"1", domain.VerdictAccepted},
		{"0101", domain.VerdictAccepted},
		{"010", domain.VerdictAccepted},
		{"000", domain.VerdictRejected},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, m, tt.input, runtime.RunOptions{}).Verdict)
		})
	}
}

func TestRun_UndefinedTransitionConsumesOneStep(t *testing.T) {
	out := run(t, testutils.RejectOnOne(t), "1", runtime.RunOptions{})
	assert.Equal(t, domain.VerdictRejected, out.Verdict)
	assert.Equal(t, uint64(1), out.Steps)
}

func TestRun_AcceptancePreemptsTransitions(t *testing.T) {
	m := testutils.AcceptingStart(t)
	for _, w := range []string{"", "0", "000", "101"} {
		out := run(t, m, w, runtime.RunOptions{})
		assert.Equal(t, domain.VerdictAccepted, out.Verdict, w)
		assert.Equal(t, uint64(1), out.Steps, w)
	}
}

func TestRun_Deterministic(t *testing.T) {
	m := testutils.Palindromes(t)
	for _, w := range []string{"", "0110", "0111", "10101"} {
		a := run(t, m, w, runtime.RunOptions{Trace: true})
		b := run(t, m, w, runtime.RunOptions{Trace: true})
		assert.Equal(t, a, b, w)
	}
}

func TestRun_StepLimit(t *testing.T) {
	m := testutils.PrefixLooper(t)

	out := run(t, m, "b", runtime.RunOptions{StepLimit: 25})
	assert.Equal(t, domain.VerdictStepLimitExceeded, out.Verdict)
	assert.Equal(t, uint64(25), out.Steps)
	assert.Equal(t, domain.State("loop"), out.State)

	// Halting within the limit is unaffected.
	out = run(t, m, "ab", runtime.RunOptions{StepLimit: 25})
	assert.Equal(t, domain.VerdictAccepted, out.Verdict)
}

func TestRun_StepLimitMonotonic(t *testing.T) {
	m := testutils.Palindromes(t)
	w := "0110110"

	full := run(t, m, w, runtime.RunOptions{})
	require.True(t, full.Verdict.Halted())

	for k := uint64(1); k < full.Steps; k++ {
		out := run(t, m, w, runtime.RunOptions{StepLimit: k})
		assert.Equal(t, domain.VerdictStepLimitExceeded, out.Verdict, "limit %d", k)
	}
	out := run(t, m, w, runtime.RunOptions{StepLimit: full.Steps})
	assert.Equal(t, full.Verdict, out.Verdict)
}

func TestRun_Trace(t *testing.T) {
	m := testutils.EvenZeros(t)
	out := run(t, m, "01", runtime.RunOptions{Trace: true})

	require.Equal(t, domain.VerdictRejected, out.Verdict)
	require.Len(t, out.Trace, int(out.Steps))

	first := out.Trace[0]
	assert.Equal(t, uint64(0), first.Step)
	assert.Equal(t, domain.State("q_even"), first.State)
	assert.Equal(t, 0, first.Head)
	assert.Equal(t, "01", first.Cells)

	last := out.Trace[len(out.Trace)-1]
	assert.Equal(t, domain.State("q_odd"), last.State)
	assert.Equal(t, 2, last.Head)
	assert.Equal(t, "01_", last.Cells)
	assert.Equal(t, 2, last.HeadIndex())

	for i, s := range out.Trace {
		assert.Equal(t, uint64(i), s.Step)
	}
}

func TestRun_TraceWindow(t *testing.T) {
	m := testutils.EvenZeros(t)
	out := run(t, m, "1111", runtime.RunOptions{Trace: true, TraceWindow: 1})

	s := out.Trace[2]
	assert.Equal(t, 2, s.Head)
	assert.Equal(t, 1, s.Offset)
	assert.Equal(t, "111", s.Cells)
}

func TestRun_TraceOnStepLimitIncludesFinalConfiguration(t *testing.T) {
	out := run(t, testutils.PrefixLooper(t), "b", runtime.RunOptions{StepLimit: 3, Trace: true})
	require.Len(t, out.Trace, 4)
	assert.Equal(t, uint64(3), out.Trace[3].Step)
}

func TestRun_Untraced(t *testing.T) {
	out := run(t, testutils.EvenZeros(t), "00", runtime.RunOptions{})
	assert.Nil(t, out.Trace)
	assert.Equal(t, "00", out.Tape)
}

func TestRun_CancelledUnboundedRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := runtime.Run(ctx, testutils.PrefixLooper(t), testutils.Symbols("b"), runtime.RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.VerdictStepLimitExceeded, out.Verdict)
	assert.Positive(t, out.Steps)
}

func TestRun_OnSnapshotStreamsWithoutRetaining(t *testing.T) {
	var streamed []domain.Snapshot
	out := run(t, testutils.EvenZeros(t), "0010", runtime.RunOptions{
		OnSnapshot: func(s domain.Snapshot) { streamed = append(streamed, s) },
	})
	assert.Nil(t, out.Trace)
	require.Len(t, streamed, int(out.Steps))
	for i, s := range streamed {
		assert.Equal(t, uint64(i), s.Step)
	}

	traced := run(t, testutils.EvenZeros(t), "0010", runtime.RunOptions{Trace: true})
	assert.Equal(t, traced.Trace, streamed)
}

func TestRun_OnSnapshotBeforeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var n uint64
	out, err := runtime.Run(ctx, testutils.PrefixLooper(t), testutils.Symbols("b"), runtime.RunOptions{
		OnSnapshot: func(domain.Snapshot) { n++ },
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, out.Steps+1, n)
}
