package watchlist

import (
	"errors"
	"strings"
)

// ErrDuplicateID is returned when an entry with the same id already exists.
var ErrDuplicateID = errors.New("entry id already exists")

// FieldProblem names one invalid field.
type FieldProblem struct {
	Field   string
	Message string
}

// ValidationError collects every problem found in a draft or entry.
type ValidationError struct {
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+" "+p.Message)
	}
	return "invalid entry: " + strings.Join(parts, "; ")
}

// Has reports whether field has a recorded problem.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, message string) {
	e.Problems = append(e.Problems, FieldProblem{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
