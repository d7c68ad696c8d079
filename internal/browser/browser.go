// Package browser defines the driver capabilities the page model and the
// assertions are written against. Concrete backends live in the chrome, pw and
// htmldoc sub-packages.
package browser

import (
	"errors"
)

var (
	// ErrElementNotFound is returned by a Scope when a locator matches nothing.
	ErrElementNotFound = errors.New("element not found")
	// ErrTimeout is returned when a lookup or query did not finish in time.
	ErrTimeout = errors.New("timed out")
	// ErrUnsupported is returned by backends that cannot answer a query, such
	// as geometry on a static document.
	ErrUnsupported = errors.New("operation not supported by this driver")
)

// Scope is anything a locator can be evaluated against: the document of a
// driver or a previously resolved element.
type Scope interface {
	FindElement(locator string) (Element, error)
}

// Driver is a live browser session as seen by the assertions.
type Driver interface {
	Scope

	Title() (string, error)
	CurrentURL() (string, error)
	AlertPresent() (bool, error)
	// ElementPresent reports whether locator matches at least one element
	// right now, without waiting.
	ElementPresent(locator string) (bool, error)
}

// Session is a Driver that can also be navigated.
type Session interface {
	Driver

	Navigate(url string) error
}

// Element is a transient view of a single DOM node.
type Element interface {
	Scope

	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
	IsClickable() (bool, error)
	Text() (string, error)
	TagName() (string, error)
	// Attribute returns the attribute value and whether it is set at all.
	Attribute(name string) (string, bool, error)
	CSSProperty(name string) (string, error)
	Rect() (Rect, error)
	Parent() (Element, error)
	IsSameNode(other Element) (bool, error)
}
