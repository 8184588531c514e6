/*
Package turing runs single-tape deterministic Turing machines and enumerates the
languages they recognize.

A machine is an immutable description: states, an input alphabet, a tape alphabet
with a blank, an initial state, accepting states, one reject state and a partial
transition function. Machines are loaded from the line-oriented .tm format or from
YAML/JSON documents (see package schema), or built in Go with package dsl.

# Running

Run drives the machine on one input until it halts or exhausts a step budget. A run
that does not halt in budget is reported with the StepLimitExceeded verdict, which is
not an error.

# Enumerating

Enumerate lists accepted strings in canonical order (shortest first, then
lexicographic over the input alphabet) without ever blocking on a candidate that
loops forever. Candidates are run side by side, one step each per round, and a
candidate that has not halted after the policy Ceiling is dropped. The listing is
therefore the language as observed under that ceiling.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/turing"
	)

	func main() {
		eng, err := turing.Load("even-zeros.tm")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		out, err := eng.Run(ctx, "0011", turing.WithTrace(0))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out.Verdict)

		first, err := eng.Enumerate(ctx, 10)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(first)
	}

Results of Enumerate can be cached across processes with WithListingStore, backed
by memory, the filesystem or Redis, and wrapped with the encryption and logging
middleware of package middleware.
*/
package turing
