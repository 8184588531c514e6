package compiler

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aretw0/turing/pkg/domain"
)

// Format writes m in the .tm text format. Transitions are written in sorted order,
// so formatting a parsed document is stable across runs.
func Format(w io.Writer, m *domain.Machine) error {
	spec := m.Spec()
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, len(spec.States))
	for _, q := range spec.States {
		fmt.Fprintln(bw, q)
	}
	writeSymbols(bw, spec.Input)
	writeSymbols(bw, spec.TapeSymbols)
	fmt.Fprintln(bw, spec.Initial)
	fmt.Fprintln(bw, spec.Blank)
	fmt.Fprintln(bw, len(spec.Accepting))
	for _, q := range spec.Accepting {
		fmt.Fprintln(bw, q)
	}
	fmt.Fprintln(bw, spec.Reject)

	ts := m.Transitions()
	fmt.Fprintln(bw, len(ts))
	for _, t := range ts {
		fmt.Fprintf(bw, "%s %s : %s %s %s\n", t.From, t.Read, t.Move.Next, t.Move.Write, t.Move.Dir)
	}
	return bw.Flush()
}

func writeSymbols(w io.Writer, syms []domain.Symbol) {
	fmt.Fprintln(w, len(syms))
	for _, s := range syms {
		fmt.Fprintln(w, s)
	}
}
