package schema

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "symbol").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates non-empty string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if s == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

// SymbolType validates a single tape symbol. Single digits decoded as numbers
// are accepted because YAML and JSON read an unquoted 0 as an integer.
type SymbolType struct{}

func (t *SymbolType) Name() string { return "symbol" }

func (t *SymbolType) Validate(value any) error {
	switch v := value.(type) {
	case string:
		if utf8.RuneCountInString(v) != 1 {
			return fmt.Errorf("symbol must be a single character")
		}
		return nil
	case int, int64, uint64:
		n := reflect.ValueOf(v).Convert(reflect.TypeOf(int64(0))).Int()
		if n < 0 || n > 9 {
			return fmt.Errorf("numeric symbol must be a single digit")
		}
		return nil
	case float64:
		if v != float64(int64(v)) || v < 0 || v > 9 {
			return fmt.Errorf("numeric symbol must be a single digit")
		}
		return nil
	default:
		return fmt.Errorf("expected symbol, got %T", value)
	}
}

// DirectionType validates a head movement, L or R.
type DirectionType struct{}

func (t *DirectionType) Name() string { return "direction" }

func (t *DirectionType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected direction, got %T", value)
	}
	_, err := domain.ParseDirection(s)
	return err
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ObjectType validates a nested mapping against its own schema.
type ObjectType struct {
	schema Schema
}

func (t *ObjectType) Name() string { return "object" }

func (t *ObjectType) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}
	return Validate(t.schema, m)
}

// String creates a string type validator.
func String() Type { return &StringType{} }

// Symbol creates a tape symbol validator.
func Symbol() Type { return &SymbolType{} }

// Direction creates a head movement validator.
func Direction() Type { return &DirectionType{} }

// Slice creates a slice type validator for the given element type.
func Slice(elemType Type) Type { return &SliceType{elemType: elemType} }

// Object creates a validator for nested mappings.
func Object(s Schema) Type { return &ObjectType{schema: s} }
