package pw

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/mykulyak/pagecheck/internal/browser"
)

// Element adapts a playwright.ElementHandle.
type Element struct {
	handle  playwright.ElementHandle
	desc    string
	timeout float64
}

var _ browser.Element = (*Element)(nil)

func (e *Element) FindElement(locator string) (browser.Element, error) {
	opts := playwright.ElementHandleWaitForSelectorOptions{
		State: playwright.WaitForSelectorStateAttached,
	}
	if e.timeout > 0 {
		opts.Timeout = playwright.Float(e.timeout)
	}
	handle, err := e.handle.WaitForSelector(locator, opts)
	if err != nil {
		return nil, lookupError(locator, e.desc, err)
	}
	return &Element{handle: handle, desc: locator, timeout: e.timeout}, nil
}

func (e *Element) IsDisplayed() (bool, error) {
	return e.handle.IsVisible()
}

func (e *Element) IsEnabled() (bool, error) {
	return e.handle.IsEnabled()
}

func (e *Element) IsSelected() (bool, error) {
	v, err := e.handle.Evaluate("el => !!(el.selected || el.checked)")
	if err != nil {
		return false, err
	}
	selected, _ := v.(bool)
	return selected, nil
}

// IsClickable is visible and enabled.
func (e *Element) IsClickable() (bool, error) {
	visible, err := e.handle.IsVisible()
	if err != nil || !visible {
		return false, err
	}
	return e.handle.IsEnabled()
}

func (e *Element) Text() (string, error) {
	return e.handle.InnerText()
}

func (e *Element) TagName() (string, error) {
	return e.evalString("el => el.localName")
}

func (e *Element) Attribute(name string) (string, bool, error) {
	v, err := e.handle.Evaluate("(el, name) => el.getAttribute(name)", name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return fmt.Sprint(v), true, nil
}

func (e *Element) CSSProperty(name string) (string, error) {
	v, err := e.handle.Evaluate("(el, name) => window.getComputedStyle(el).getPropertyValue(name)", name)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

// Rect is the bounding box relative to the main frame viewport. Elements that
// are not rendered have an empty rectangle.
func (e *Element) Rect() (browser.Rect, error) {
	box, err := e.handle.BoundingBox()
	if err != nil {
		return browser.Rect{}, err
	}
	if box == nil {
		return browser.Rect{}, nil
	}
	return browser.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *Element) Parent() (browser.Element, error) {
	handle, err := e.handle.EvaluateHandle("el => el.parentElement")
	if err != nil {
		return nil, err
	}
	parent := handle.AsElement()
	if parent == nil {
		return nil, fmt.Errorf("%w: parent of %s", browser.ErrElementNotFound, e.desc)
	}
	return &Element{handle: parent, desc: "parent of " + e.desc, timeout: e.timeout}, nil
}

// IsSameNode compares DOM identity. Elements of other backends never match.
func (e *Element) IsSameNode(other browser.Element) (bool, error) {
	o, ok := other.(*Element)
	if !ok {
		return false, nil
	}
	v, err := e.handle.Evaluate("(el, other) => el === other", o.handle)
	if err != nil {
		return false, err
	}
	same, _ := v.(bool)
	return same, nil
}

func (e *Element) evalString(expr string) (string, error) {
	v, err := e.handle.Evaluate(expr)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

func (e *Element) String() string {
	return e.desc
}
