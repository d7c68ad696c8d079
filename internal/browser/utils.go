package browser

import (
	"fmt"
	"net/url"
	"strings"
)

// URLHash returns the fragment of the driver's current URL, as it appears in
// the URL (not unescaped).
func URLHash(d Driver) (string, error) {
	current, err := d.CurrentURL()
	if err != nil {
		return "", err
	}
	parsed, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parse current url %q: %w", current, err)
	}
	return parsed.EscapedFragment(), nil
}

// ClassList returns the CSS classes of e. A missing class attribute yields an
// empty list.
func ClassList(e Element) ([]string, error) {
	value, _, err := e.Attribute("class")
	if err != nil {
		return nil, err
	}
	return SplitClasses(value), nil
}

// SplitClasses splits a class attribute on runs of whitespace.
func SplitClasses(value string) []string {
	return strings.Fields(value)
}
