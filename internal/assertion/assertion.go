// Package assertion provides checks on page and element state. Every check
// that reaches a verdict reports it exactly once to a Reporter and returns nil
// on success or an *Error on failure. Errors from the driver itself are
// returned as they are, without a verdict.
package assertion

import (
	"fmt"
	"regexp"
)

// Assertions carries the reporter shared by all checks.
type Assertions struct {
	reporter Reporter
}

// New returns Assertions reporting to r. A nil r reports through the logrus
// standard logger.
func New(r Reporter) *Assertions {
	if r == nil {
		r = NewLogReporter(nil)
	}
	return &Assertions{reporter: r}
}

// Reporter returns the sink outcomes are reported to.
func (a *Assertions) Reporter() Reporter {
	return a.reporter
}

func (a *Assertions) success(assertion string, params Params) error {
	a.reporter.Success(assertion, params)
	return nil
}

func (a *Assertions) failure(assertion string, params Params) error {
	a.reporter.Failure(assertion, params)
	return &Error{Assertion: assertion, Params: params}
}

func (a *Assertions) judge(assertion string, passed bool, params Params) error {
	if passed {
		return a.success(assertion, params)
	}
	return a.failure(assertion, params)
}

// matchesAtStart reports whether pattern matches at the beginning of s. The
// rest of s is not required to match.
func matchesAtStart(pattern, s string) (bool, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re.MatchString(s), nil
}
