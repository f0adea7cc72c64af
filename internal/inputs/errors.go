// Package inputs normalizes the raw tech description, known-URL list, and
// exclusion wordlist into canonical in-memory form.
package inputs

import "fmt"

// InvalidInputError represents a malformed or unreadable input source.
type InvalidInputError struct {
	Source string
	Cause  error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("invalid input %s", e.Source)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}
