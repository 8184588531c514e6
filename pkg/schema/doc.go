// Package schema defines the YAML and JSON document formats for Turing machines.
//
// A document mirrors the formal description of a machine:
//
//	states: [q0, accept, reject]
//	input_alphabet: ["0", "1"]
//	tape_alphabet: ["0", "1", "_"]
//	initial: q0
//	blank: "_"
//	accepting: [accept]
//	reject: reject
//	transitions:
//	  - {from: q0, read: "_", to: accept, write: "_", move: R}
//
// Documents are decoded into a generic map, checked field by field against
// MachineSchema, and then decoded into a Document with mapstructure. Unquoted
// digits such as 0 and 1 are accepted wherever a symbol is expected.
//
// LoadFile dispatches on the file extension and also accepts the line-oriented
// .tm format, so callers can treat every supported format uniformly.
package schema
