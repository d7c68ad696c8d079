package assertion

import (
	"errors"
	"fmt"
)

// Error is returned by an assertion whose expectation was not met. It is
// always reported to the Reporter before being returned.
type Error struct {
	Assertion string
	Params    Params
}

func (e *Error) Error() string {
	return fmt.Sprintf("assertion %s failed %v", e.Assertion, map[string]any(e.Params))
}

// IsAssertionError reports whether err is or wraps an *Error.
func IsAssertionError(err error) bool {
	var ae *Error
	return errors.As(err, &ae)
}
