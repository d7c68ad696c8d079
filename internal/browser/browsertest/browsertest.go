// Package browsertest provides in-memory Driver and Element implementations
// for tests. Every lookup made through them is recorded in order so tests can
// check what was resolved, against which scope, and when.
package browsertest

import (
	"fmt"

	"github.com/mykulyak/pagecheck/internal/browser"
)

type recorder struct {
	lookups []string
}

func (r *recorder) record(scope, locator string) {
	if r != nil {
		r.lookups = append(r.lookups, scope+": "+locator)
	}
}

// Driver is a fake browser.Driver.
type Driver struct {
	title     string
	titleErr  error
	url       string
	urlErr    error
	alert     bool
	alertErr  error
	elements  map[string]*Element
	errs      map[string]error
	navigated []string
	rec       *recorder
}

var _ browser.Session = (*Driver)(nil)

// NewDriver returns an empty driver on about:blank.
func NewDriver() *Driver {
	return &Driver{
		url:      "about:blank",
		elements: make(map[string]*Element),
		errs:     make(map[string]error),
		rec:      &recorder{},
	}
}

func (d *Driver) WithTitle(title string) *Driver {
	d.title = title
	return d
}

func (d *Driver) WithTitleError(err error) *Driver {
	d.titleErr = err
	return d
}

func (d *Driver) WithURL(url string) *Driver {
	d.url = url
	return d
}

func (d *Driver) WithURLError(err error) *Driver {
	d.urlErr = err
	return d
}

func (d *Driver) WithAlert(open bool) *Driver {
	d.alert = open
	return d
}

func (d *Driver) WithAlertError(err error) *Driver {
	d.alertErr = err
	return d
}

// WithElement makes locator resolve to el at document level.
func (d *Driver) WithElement(locator string, el *Element) *Driver {
	el.attach(d.rec, locator)
	d.elements[locator] = el
	return d
}

// WithLookupError makes document level lookups of locator fail with err.
func (d *Driver) WithLookupError(locator string, err error) *Driver {
	d.errs[locator] = err
	return d
}

// Lookups returns every lookup made through the driver and the elements
// attached to it, as "scope: locator", in call order.
func (d *Driver) Lookups() []string {
	return append([]string(nil), d.rec.lookups...)
}

// Navigations returns the URLs passed to Navigate.
func (d *Driver) Navigations() []string {
	return append([]string(nil), d.navigated...)
}

func (d *Driver) FindElement(locator string) (browser.Element, error) {
	d.rec.record("document", locator)
	if err, ok := d.errs[locator]; ok {
		return nil, err
	}
	if el, ok := d.elements[locator]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("%w: %q in document", browser.ErrElementNotFound, locator)
}

func (d *Driver) Title() (string, error) {
	return d.title, d.titleErr
}

func (d *Driver) CurrentURL() (string, error) {
	return d.url, d.urlErr
}

func (d *Driver) AlertPresent() (bool, error) {
	return d.alert, d.alertErr
}

func (d *Driver) ElementPresent(locator string) (bool, error) {
	if err, ok := d.errs[locator]; ok {
		return false, err
	}
	_, ok := d.elements[locator]
	return ok, nil
}

func (d *Driver) Navigate(url string) error {
	d.navigated = append(d.navigated, url)
	d.url = url
	return nil
}

// Element is a fake browser.Element. Elements are displayed and enabled
// unless configured otherwise.
type Element struct {
	label    string
	tag      string
	text     string
	hidden   bool
	disabled bool
	selected bool
	attrs    map[string]string
	css      map[string]string
	rect     browser.Rect
	rectErr  error
	queryErr error
	parent   *Element
	children map[string]*Element
	errs     map[string]error
	rec      *recorder
}

var _ browser.Element = (*Element)(nil)

// NewElement returns an element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{
		label:    tag,
		tag:      tag,
		attrs:    make(map[string]string),
		css:      make(map[string]string),
		children: make(map[string]*Element),
		errs:     make(map[string]error),
	}
}

func (e *Element) attach(rec *recorder, label string) {
	e.rec = rec
	e.label = label
	for locator, child := range e.children {
		child.attach(rec, locator)
	}
}

func (e *Element) WithText(text string) *Element {
	e.text = text
	return e
}

func (e *Element) WithAttr(name, value string) *Element {
	e.attrs[name] = value
	return e
}

func (e *Element) WithCSS(property, value string) *Element {
	e.css[property] = value
	return e
}

func (e *Element) WithRect(r browser.Rect) *Element {
	e.rect = r
	return e
}

func (e *Element) WithRectError(err error) *Element {
	e.rectErr = err
	return e
}

// WithQueryError makes every state query on the element fail with err.
func (e *Element) WithQueryError(err error) *Element {
	e.queryErr = err
	return e
}

func (e *Element) Hidden() *Element {
	e.hidden = true
	return e
}

func (e *Element) Disabled() *Element {
	e.disabled = true
	return e
}

func (e *Element) Selected() *Element {
	e.selected = true
	return e
}

// WithParent sets the element returned by Parent.
func (e *Element) WithParent(p *Element) *Element {
	e.parent = p
	return e
}

// WithChild makes locator resolve to child when looked up inside e.
func (e *Element) WithChild(locator string, child *Element) *Element {
	child.attach(e.rec, locator)
	if child.parent == nil {
		child.parent = e
	}
	e.children[locator] = child
	return e
}

// WithLookupError makes lookups of locator inside e fail with err.
func (e *Element) WithLookupError(locator string, err error) *Element {
	e.errs[locator] = err
	return e
}

func (e *Element) FindElement(locator string) (browser.Element, error) {
	e.rec.record(e.label, locator)
	if err, ok := e.errs[locator]; ok {
		return nil, err
	}
	if child, ok := e.children[locator]; ok {
		return child, nil
	}
	return nil, fmt.Errorf("%w: %q in %s", browser.ErrElementNotFound, locator, e.label)
}

func (e *Element) IsDisplayed() (bool, error) {
	return !e.hidden, e.queryErr
}

func (e *Element) IsEnabled() (bool, error) {
	return !e.disabled, e.queryErr
}

func (e *Element) IsSelected() (bool, error) {
	return e.selected, e.queryErr
}

func (e *Element) IsClickable() (bool, error) {
	return !e.hidden && !e.disabled, e.queryErr
}

func (e *Element) Text() (string, error) {
	return e.text, e.queryErr
}

func (e *Element) TagName() (string, error) {
	return e.tag, e.queryErr
}

func (e *Element) Attribute(name string) (string, bool, error) {
	if e.queryErr != nil {
		return "", false, e.queryErr
	}
	value, ok := e.attrs[name]
	return value, ok, nil
}

func (e *Element) CSSProperty(name string) (string, error) {
	return e.css[name], e.queryErr
}

func (e *Element) Rect() (browser.Rect, error) {
	if e.rectErr != nil {
		return browser.Rect{}, e.rectErr
	}
	return e.rect, e.queryErr
}

func (e *Element) Parent() (browser.Element, error) {
	if e.queryErr != nil {
		return nil, e.queryErr
	}
	if e.parent == nil {
		return nil, fmt.Errorf("%w: parent of %s", browser.ErrElementNotFound, e.label)
	}
	return e.parent, nil
}

func (e *Element) IsSameNode(other browser.Element) (bool, error) {
	o, ok := other.(*Element)
	return ok && o == e, nil
}

func (e *Element) String() string {
	return "<" + e.tag + "> " + e.label
}
