package schema

import (
	"maps"
	"slices"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// MachineSchema lists the required fields of a machine document.
var MachineSchema = Schema{
	"states":         Slice(String()),
	"input_alphabet": Slice(Symbol()),
	"tape_alphabet":  Slice(Symbol()),
	"initial":        String(),
	"blank":          Symbol(),
	"accepting":      Slice(String()),
	"reject":         String(),
	"transitions": Slice(Object(Schema{
		"from":  String(),
		"read":  Symbol(),
		"to":    String(),
		"write": Symbol(),
		"move":  Direction(),
	})),
}

// Validate checks if data conforms to the schema, reporting every failure in
// field name order. Fields not named by the schema are ignored.
func Validate(schema Schema, data map[string]any) error {
	var errs []error

	for _, fieldName := range slices.Sorted(maps.Keys(schema)) {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := schema[fieldName].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
