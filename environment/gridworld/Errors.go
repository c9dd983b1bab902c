package gridworld

import (
	"errors"
	"fmt"
)

// FormatError reports malformed map or policy text
type FormatError struct {
	Op   string
	Line int // 1-based line of the offending row, 0 if not applicable
	Err  error
}

// Error satisfies the error interface
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", e.Op, e.Line, e.Err)
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *FormatError) Unwrap() error {
	return e.Err
}

var (
	ErrEmptyMap          = errors.New("empty map")
	ErrInconsistentWidth = errors.New("inconsistent row width")
)

// IsFormatError returns whether or not an error reports malformed
// map or policy text
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}
