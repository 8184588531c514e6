/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing Turing machines.

It allows developers to define machines with a fluent builder instead of writing
.tm, YAML or JSON files. States are declared on first use, the tape alphabet is
collected from the input alphabet, the blank and every symbol a transition reads
or writes, and a missing reject state is added as "reject".

Example usage:

	package main

	import (
		"github.com/aretw0/turing"
		"github.com/aretw0/turing/pkg/domain"
		"github.com/aretw0/turing/pkg/dsl"
	)

	func main() {
		b := dsl.New().Input("01").Blank('_')

		b.Add("q_even").Initial().
			On('0', "q_odd", '0', domain.Right).
			Pass('1', "q_even", domain.Right).
			Pass('_', "accept", domain.Right)

		b.Add("q_odd").
			On('0', "q_even", '0', domain.Right).
			Pass('1', "q_odd", domain.Right)

		b.Add("accept").Accept()

		m, err := b.Build()
		// ... pass m to turing.New(m)
	}
*/
package dsl
