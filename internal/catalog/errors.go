package catalog

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no book matches the requested id, or when the
// whole collection is requested while empty.
var ErrNotFound = errors.New("book not found")

// InvalidInputError is returned when a write carries unusable fields.
type InvalidInputError struct {
	// Missing lists the required fields that were absent or falsy.
	Missing []string
	// Malformed lists the fields whose value has an unusable type.
	Malformed []string
	// Reason is set for failures other than missing fields.
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Reason != "" {
		return "invalid input: " + e.Reason
	}
	if len(e.Missing) == 0 && len(e.Malformed) != 0 {
		return "malformed fields: " + strings.Join(e.Malformed, ", ")
	}
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
