package entries

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is the sentinel for unparseable date input. Wrapped by
// InvalidDateError so callers can branch with errors.Is.
var ErrInvalidDate = errors.New("invalid date format")

// InvalidDateError reports a non-blank date input that could not be parsed.
// Blank input is not an error; it falls back to the current date.
type InvalidDateError struct {
	Field string
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s: %q is not a valid date", e.Field, e.Value)
}

func (e InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}
