package turing_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/schema"
)

const evenZerosYAML = `
states: [q_even, q_odd, accept, reject]
input_alphabet: ["0", "1"]
tape_alphabet: ["0", "1", "_"]
initial: q_even
blank: "_"
accepting: [accept]
reject: reject
transitions:
  - {from: q_even, read: "0", to: q_odd, write: "0", move: R}
  - {from: q_odd, read: "0", to: q_even, write: "0", move: R}
  - {from: q_even, read: "1", to: q_even, write: "1", move: R}
  - {from: q_odd, read: "1", to: q_odd, write: "1", move: R}
  - {from: q_even, read: "_", to: accept, write: "_", move: R}
`

// ExampleEngine_Run runs a machine that accepts strings with an even number of zeros.
func ExampleEngine_Run() {
	m, err := schema.Decode([]byte(evenZerosYAML), schema.FormatYAML)
	if err != nil {
		log.Fatal(err)
	}
	engine, err := turing.New(m)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, w := range []string{"0011", "0"} {
		out, err := engine.Run(ctx, w)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(w, out.Verdict, out.Steps)
	}
	// Output:
	// 0011 accepted 6
	// 0 rejected 2
}

// ExampleEngine_Enumerate lists the first members of the language, caching the
// result in memory.
func ExampleEngine_Enumerate() {
	m, err := schema.Decode([]byte(evenZerosYAML), schema.FormatYAML)
	if err != nil {
		log.Fatal(err)
	}
	engine, err := turing.New(m, turing.WithListingStore(memory.NewStore()))
	if err != nil {
		log.Fatal(err)
	}

	words, err := engine.Enumerate(context.Background(), 5)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%q\n", words)
	// Output:
	// ["" "1" "00" "11" "001"]
}
