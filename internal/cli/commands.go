package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/schema"
)

// RunParams are the per-invocation options of `turing run`.
type RunParams struct {
	Input     string
	Verbose   bool
	Window    int
	StepLimit *uint64
	Color     bool
}

// RunMachine runs the engine on p.Input and prints the verdict, preceded by
// the trace table when p.Verbose is set.
func RunMachine(ctx context.Context, w io.Writer, eng *turing.Engine, p RunParams) (domain.Outcome, error) {
	var opts []turing.RunOption
	if p.StepLimit != nil {
		opts = append(opts, turing.WithRunStepLimit(*p.StepLimit))
	}
	var (
		printer  *tui.TracePrinter
		printErr error
		rows     int
	)
	if p.Verbose {
		printer = tui.NewTracePrinter(w, p.Color)
		opts = append(opts, turing.WithTraceFunc(p.Window, func(s domain.Snapshot) {
			if printErr != nil {
				return
			}
			if rows == 0 {
				printErr = printer.Header()
			}
			if printErr == nil {
				printErr = printer.Snapshot(s)
			}
			rows++
		}))
	}

	// Rows are written as the run proceeds so a cancelled run keeps them.
	out, err := eng.Run(ctx, p.Input, opts...)
	if err != nil {
		return out, err
	}
	if printErr != nil {
		return out, printErr
	}

	if rows > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, tui.Verdict(p.Input, out))

	if out.Verdict == domain.VerdictStepLimitExceeded {
		return out, &ExitError{Code: ExitCodeStepLimit}
	}
	return out, nil
}

// ListLanguage prints the first n accepted strings, one per line. With
// epsilon set the empty string is shown as ε.
func ListLanguage(ctx context.Context, w io.Writer, eng *turing.Engine, n int, epsilon bool) error {
	words, err := eng.Enumerate(ctx, n)
	for _, word := range words {
		if word == "" && epsilon {
			word = "ε"
		}
		fmt.Fprintln(w, word)
	}
	if errors.Is(err, runtime.ErrRoundLimit) {
		return fmt.Errorf("listed %d of %d strings: %w", len(words), n, err)
	}
	return err
}

// Validate prints the lint report of m. With strict set, any finding fails.
func Validate(w io.Writer, m *domain.Machine, strict bool) error {
	report := validator.Lint(m)
	for _, f := range report.Findings {
		fmt.Fprintf(w, "warning: %s\n", f)
	}
	if strict {
		if err := report.Err(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "Machine is valid! ✅")
	return nil
}

// Describe prints the markdown description of m, rendered for a terminal
// when render is set.
func Describe(w io.Writer, m *domain.Machine, name string, render bool) error {
	md := tui.Describe(m, name)
	if render {
		out, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		md = out
	}
	_, err := io.WriteString(w, md)
	return err
}

// Graph prints the Mermaid diagram of the engine's machine. A non-nil input
// runs the machine first and highlights the states it visits.
func Graph(ctx context.Context, w io.Writer, eng *turing.Engine, input *string) error {
	var overlay *graph.Overlay
	if input != nil {
		out, err := eng.Run(ctx, *input, turing.WithTrace(1))
		if err != nil {
			return err
		}
		overlay = graph.OverlayFromOutcome(out)
	}
	_, err := io.WriteString(w, graph.GenerateMermaid(eng.Machine(), overlay))
	return err
}

// Convert writes m in the named format.
func Convert(w io.Writer, m *domain.Machine, to string) error {
	format, err := schema.ParseFormat(to)
	if err != nil {
		return err
	}
	return schema.Encode(w, m, format)
}

// CacheList prints the keys of store.
func CacheList(ctx context.Context, w io.Writer, store ports.ListingStore) error {
	keys, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		l, err := store.Load(ctx, k)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				continue // expired between List and Load
			}
			return err
		}
		fmt.Fprintf(w, "%s\t%d strings\texhausted=%t\t%s\n", k, len(l.Strings), l.Exhausted, l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}

// CacheRemove deletes keys from store, or every key when all is set.
func CacheRemove(ctx context.Context, w io.Writer, store ports.ListingStore, keys []string, all bool) error {
	if all {
		var err error
		keys, err = store.List(ctx)
		if err != nil {
			return err
		}
	}
	for _, k := range keys {
		if err := store.Delete(ctx, k); err != nil {
			return fmt.Errorf("failed to remove %s: %w", k, err)
		}
		fmt.Fprintf(w, "removed %s\n", k)
	}
	return nil
}
