// Package validation implements the per-entity rule engines consulted
// before every mutation.  A validator inspects one entity and produces
// a field → messages report; an empty report means the entity is valid.
package validation

import (
	"sort"
	"strings"
)

// Result maps field names to the validation messages collected for
// them.  An empty Result means the entity passed every rule.
type Result map[string][]string

// Valid reports whether no rule failed.
func (r Result) Valid() bool { return len(r) == 0 }

// Add appends a message to the given field's error list.
func (r Result) Add(field, message string) {
	r[field] = append(r[field], message)
}

// Field returns the messages recorded for a field.
func (r Result) Field(field string) []string { return r[field] }

// Message renders the report as a multi-line human-readable string
// with fields in stable order.
func (r Result) Message() string {
	if r.Valid() {
		return "no errors"
	}
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f)
		b.WriteString(":")
		for _, msg := range r[f] {
			b.WriteString("\n  - ")
			b.WriteString(msg)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Error wraps a failed Result so services can return it through the
// ordinary error path.  Handlers unwrap it to render the field map.
type Error struct {
	Errors Result
}

func (e *Error) Error() string { return "validation failed: " + e.Errors.Message() }

// AsError returns nil for a valid result and a *Error otherwise.
func (r Result) AsError() error {
	if r.Valid() {
		return nil
	}
	return &Error{Errors: r}
}
