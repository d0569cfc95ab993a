package model

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when there are no events to aggregate or render.
var ErrEmptyInput = errors.New("no events to plot")

// MalformedInputError identifies the first value that is not a timestamp.
type MalformedInputError struct {
	Line  int // 1-based, 0 when the value did not come from a file
	Value string
	Err   error
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: malformed timestamp %q", e.Line, e.Value)
	}
	return fmt.Sprintf("malformed timestamp %q", e.Value)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// UnsupportedConfigurationError reports a configuration value outside the
// supported set, e.g. an unknown chart kind.
type UnsupportedConfigurationError struct {
	Field string
	Value string
	Hint  string // optional, e.g. "use a coarser unit"
}

func (e *UnsupportedConfigurationError) Error() string {
	msg := fmt.Sprintf("unsupported %s %q", e.Field, e.Value)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// IsUserError reports whether err is one of the recoverable input or
// configuration errors that should be shown to the user as-is.
func IsUserError(err error) bool {
	var malformed *MalformedInputError
	var unsupported *UnsupportedConfigurationError
	return errors.Is(err, ErrEmptyInput) ||
		errors.As(err, &malformed) ||
		errors.As(err, &unsupported)
}
