package validation

import (
	"errors"
	"sort"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// Violation is one failed field constraint, as returned to clients.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FromError flattens an ozzo validation error into violations sorted by field.
// Nested errors (e.g. a struct field that is itself validated) are joined with ".".
// Returns nil when err is nil.
func FromError(err error) []Violation {
	if err == nil {
		return nil
	}

	var errs ozzo.Errors
	if !errors.As(err, &errs) {
		return []Violation{{Message: err.Error()}}
	}

	out := make([]Violation, 0, len(errs))
	flatten("", errs, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func flatten(prefix string, errs ozzo.Errors, out *[]Violation) {
	for field, err := range errs {
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}

		var nested ozzo.Errors
		if errors.As(err, &nested) {
			flatten(name, nested, out)
			continue
		}
		*out = append(*out, Violation{Field: name, Message: err.Error()})
	}
}
