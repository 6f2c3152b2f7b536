package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyInput reports that a required input source produced no header line.
var ErrEmptyInput = errors.New("empty input: no header line found")

// SpecError reports a malformed request: bad constraint syntax, invalid field
// name characters, an unknown logical object, or conflicting options. Always
// fatal to the current operation.
type SpecError struct {
	Msg string
}

func (e *SpecError) Error() string {
	return "invalid specification: " + e.Msg
}

// Specf builds a SpecError from a format string.
func Specf(format string, args ...any) error {
	return &SpecError{Msg: fmt.Sprintf(format, args...)}
}

// IsSpecError reports whether err is (or wraps) a SpecError.
func IsSpecError(err error) bool {
	var se *SpecError
	return errors.As(err, &se)
}

// WildcardKeyError reports a wildcard character found where an exact-match key
// is required.
type WildcardKeyError struct {
	Key string
}

func (e *WildcardKeyError) Error() string {
	return fmt.Sprintf("wildcard character in exact-match key %q", e.Key)
}

// TransportError reports a non-success response from the remote service.
type TransportError struct {
	Status int
	Detail string
}

func (e *TransportError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("remote service returned status %d", e.Status)
	}
	return fmt.Sprintf("remote service returned status %d: %s", e.Status, e.Detail)
}
