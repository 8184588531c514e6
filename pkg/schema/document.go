package schema

import (
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Document is the serialized form of a machine.
type Document struct {
	Name          string       `yaml:"name,omitempty" json:"name,omitempty" mapstructure:"name"`
	Description   string       `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	States        []string     `yaml:"states" json:"states" mapstructure:"states"`
	InputAlphabet []string     `yaml:"input_alphabet" json:"input_alphabet" mapstructure:"input_alphabet"`
	TapeAlphabet  []string     `yaml:"tape_alphabet" json:"tape_alphabet" mapstructure:"tape_alphabet"`
	Initial       string       `yaml:"initial" json:"initial" mapstructure:"initial"`
	Blank         string       `yaml:"blank" json:"blank" mapstructure:"blank"`
	Accepting     []string     `yaml:"accepting" json:"accepting" mapstructure:"accepting"`
	Reject        string       `yaml:"reject" json:"reject" mapstructure:"reject"`
	Transitions   []Transition `yaml:"transitions" json:"transitions" mapstructure:"transitions"`
}

// Transition is one row of the transition table.
type Transition struct {
	From  string `yaml:"from" json:"from" mapstructure:"from"`
	Read  string `yaml:"read" json:"read" mapstructure:"read"`
	To    string `yaml:"to" json:"to" mapstructure:"to"`
	Write string `yaml:"write" json:"write" mapstructure:"write"`
	Move  string `yaml:"move" json:"move" mapstructure:"move"`
}

// DecodeMap validates raw against MachineSchema and decodes it into a Document.
func DecodeMap(raw map[string]any) (*Document, error) {
	if err := Validate(MachineSchema, raw); err != nil {
		return nil, err
	}

	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("schema: decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("schema: decode machine document: %w", err)
	}
	return &doc, nil
}

// Spec converts the document into a machine spec.
func (d *Document) Spec() (domain.Spec, error) {
	var errs []error
	symbol := func(key, s string) domain.Symbol {
		r, size := utf8.DecodeRuneInString(s)
		if s == "" || size != len(s) {
			errs = append(errs, &ValidationError{Key: key, Reason: "symbol must be a single character", Value: s})
			return 0
		}
		return domain.Symbol(r)
	}

	spec := domain.Spec{
		Initial: domain.State(d.Initial),
		Blank:   symbol("blank", d.Blank),
		Reject:  domain.State(d.Reject),
	}
	for _, q := range d.States {
		spec.States = append(spec.States, domain.State(q))
	}
	for i, s := range d.InputAlphabet {
		spec.Input = append(spec.Input, symbol(fmt.Sprintf("input_alphabet[%d]", i), s))
	}
	for i, s := range d.TapeAlphabet {
		spec.TapeSymbols = append(spec.TapeSymbols, symbol(fmt.Sprintf("tape_alphabet[%d]", i), s))
	}
	for _, q := range d.Accepting {
		spec.Accepting = append(spec.Accepting, domain.State(q))
	}
	for i, t := range d.Transitions {
		key := fmt.Sprintf("transitions[%d]", i)
		dir, err := domain.ParseDirection(t.Move)
		if err != nil {
			errs = append(errs, &ValidationError{Key: key + ".move", Reason: err.Error(), Value: t.Move})
		}
		spec.Transitions = append(spec.Transitions, domain.Transition{
			From: domain.State(t.From),
			Read: symbol(key+".read", t.Read),
			Move: domain.Move{
				Next:  domain.State(t.To),
				Write: symbol(key+".write", t.Write),
				Dir:   dir,
			},
		})
	}

	if len(errs) > 0 {
		return domain.Spec{}, &AggregateError{Errors: errs}
	}
	return spec, nil
}

// Machine builds the machine described by the document.
func (d *Document) Machine() (*domain.Machine, error) {
	spec, err := d.Spec()
	if err != nil {
		return nil, err
	}
	return domain.NewMachine(spec)
}

// FromMachine returns the document form of m. Transitions are sorted.
func FromMachine(m *domain.Machine) *Document {
	spec := m.Spec()
	doc := &Document{
		States:        make([]string, 0, len(spec.States)),
		InputAlphabet: make([]string, 0, len(spec.Input)),
		TapeAlphabet:  make([]string, 0, len(spec.TapeSymbols)),
		Initial:       string(spec.Initial),
		Blank:         spec.Blank.String(),
		Accepting:     make([]string, 0, len(spec.Accepting)),
		Reject:        string(spec.Reject),
		Transitions:   make([]Transition, 0, len(spec.Transitions)),
	}
	for _, q := range spec.States {
		doc.States = append(doc.States, string(q))
	}
	for _, s := range spec.Input {
		doc.InputAlphabet = append(doc.InputAlphabet, s.String())
	}
	for _, s := range spec.TapeSymbols {
		doc.TapeAlphabet = append(doc.TapeAlphabet, s.String())
	}
	for _, q := range spec.Accepting {
		doc.Accepting = append(doc.Accepting, string(q))
	}
	for _, t := range m.Transitions() {
		doc.Transitions = append(doc.Transitions, Transition{
			From:  string(t.From),
			Read:  t.Read.String(),
			To:    string(t.Next),
			Write: t.Write.String(),
			Move:  t.Dir.String(),
		})
	}
	return doc
}
