// Package field holds the helpers every settings builder shares: optional
// scalars, section editing, and the serializer error type.
package field

import (
	"errors"
	"fmt"
	"strings"
)

// Ptr returns a pointer to v. Builders store optional scalars as pointers so
// an explicit zero value is still emitted.
func Ptr[T any](v T) *T {
	return &v
}

// Edit allocates the section behind p if it is absent and applies mutate to
// it. Fields of the section that mutate does not touch keep their values.
func Edit[T any](p **T, mutate func(*T)) {
	if *p == nil {
		*p = new(T)
	}
	mutate(*p)
}

// EditEntry applies mutate to the entry for key, starting from the zero
// value when the key is absent, and stores the result back.
func EditEntry[K comparable, V any](m *map[K]V, key K, mutate func(*V)) {
	if *m == nil {
		*m = make(map[K]V)
	}
	entry := (*m)[key]
	mutate(&entry)
	(*m)[key] = entry
}

// Put stores entry under key, replacing any previous entry.
func Put[K comparable, V any](m *map[K]V, key K, entry V) {
	if *m == nil {
		*m = make(map[K]V)
	}
	(*m)[key] = entry
}

// ErrSerialize matches every error produced while rendering a document.
var ErrSerialize = errors.New("serialization failed")

// SerializeError reports a value that cannot be represented in the output
// format of a document.
type SerializeError struct {
	Document string
	Field    string
	Err      error
}

func (e *SerializeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("rendering %s: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("rendering %s: field '%s': %v", e.Document, e.Field, e.Err)
}

func (e *SerializeError) Unwrap() []error {
	return []error{ErrSerialize, e.Err}
}

// SingleLine rejects values that would break a line-oriented document.
func SingleLine(document, name, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return &SerializeError{Document: document, Field: name, Err: fmt.Errorf("value %q contains a line break", value)}
	}
	return nil
}
