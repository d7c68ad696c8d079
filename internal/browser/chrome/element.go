package chrome

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/tidwall/gjson"

	"github.com/mykulyak/pagecheck/internal/browser"
)

// JavaScript bodies run with the element bound to this.
const (
	jsDisplayed = `function() {
	if (!this.isConnected) return false;
	const style = window.getComputedStyle(this);
	if (style.display === 'none' || style.visibility === 'hidden') return false;
	return !!(this.offsetWidth || this.offsetHeight || this.getClientRects().length);
}`
	jsEnabled  = `function() { return !this.matches(':disabled'); }`
	jsSelected = `function() { return !!(this.selected || this.checked); }`
	jsText     = `function() { return this.innerText === undefined ? this.textContent : this.innerText; }`
	jsTagName  = `function() { return this.localName; }`
	jsRect     = `function() {
	const r = this.getBoundingClientRect();
	return {x: r.x + window.scrollX, y: r.y + window.scrollY, width: r.width, height: r.height};
}`
	jsParent   = `function() { return this.parentElement; }`
	jsSameNode = `function(other) { return this === other; }`
)

// Element is a handle to a DOM node held by the page's JavaScript runtime.
type Element struct {
	page *Page
	id   runtime.RemoteObjectID
	desc string
}

var _ browser.Element = (*Element)(nil)

// FindElement waits up to the page timeout for locator to match inside e.
func (e *Element) FindElement(locator string) (browser.Element, error) {
	fn := fmt.Sprintf("function() { return this.querySelector(%s); }", jsString(locator))
	return e.page.poll(e.desc, locator, func(ctx context.Context) (*runtime.RemoteObject, error) {
		return e.callOn(ctx, fn, false)
	})
}

func callParams(id runtime.RemoteObjectID, fn string, byValue bool, group string, args ...*runtime.CallArgument) *runtime.CallFunctionOnParams {
	params := runtime.CallFunctionOn(fn).WithObjectID(id).WithReturnByValue(byValue).WithObjectGroup(group)
	if len(args) > 0 {
		params = params.WithArguments(args)
	}
	return params
}

func (e *Element) callOn(ctx context.Context, fn string, byValue bool, args ...*runtime.CallArgument) (*runtime.RemoteObject, error) {
	obj, exc, err := callParams(e.id, fn, byValue, e.page.group, args...).Do(ctx)
	if err != nil {
		return nil, err
	}
	if exc != nil {
		return nil, exc
	}
	return obj, nil
}

// query calls fn on the element and decodes the returned value.
func (e *Element) query(fn string, args ...*runtime.CallArgument) (gjson.Result, error) {
	var result gjson.Result
	err := e.page.run(chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := e.callOn(ctx, fn, true, args...)
		if err != nil {
			return err
		}
		result = decode(obj)
		return nil
	}))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("query %s: %w", e.desc, err)
	}
	return result, nil
}

func decode(obj *runtime.RemoteObject) gjson.Result {
	if obj == nil || len(obj.Value) == 0 {
		return gjson.Result{}
	}
	return gjson.ParseBytes([]byte(obj.Value))
}

func (e *Element) IsDisplayed() (bool, error) {
	r, err := e.query(jsDisplayed)
	return r.Bool(), err
}

func (e *Element) IsEnabled() (bool, error) {
	r, err := e.query(jsEnabled)
	return r.Bool(), err
}

func (e *Element) IsSelected() (bool, error) {
	r, err := e.query(jsSelected)
	return r.Bool(), err
}

// IsClickable is displayed and enabled.
func (e *Element) IsClickable() (bool, error) {
	displayed, err := e.IsDisplayed()
	if err != nil || !displayed {
		return false, err
	}
	return e.IsEnabled()
}

func (e *Element) Text() (string, error) {
	r, err := e.query(jsText)
	return r.String(), err
}

func (e *Element) TagName() (string, error) {
	r, err := e.query(jsTagName)
	return r.String(), err
}

func (e *Element) Attribute(name string) (string, bool, error) {
	r, err := e.query(fmt.Sprintf("function() { return this.getAttribute(%s); }", jsString(name)))
	if err != nil {
		return "", false, err
	}
	if r.Type == gjson.Null {
		return "", false, nil
	}
	return r.String(), true, nil
}

func (e *Element) CSSProperty(name string) (string, error) {
	r, err := e.query(fmt.Sprintf("function() { return window.getComputedStyle(this).getPropertyValue(%s); }", jsString(name)))
	return r.String(), err
}

func (e *Element) Rect() (browser.Rect, error) {
	r, err := e.query(jsRect)
	if err != nil {
		return browser.Rect{}, err
	}
	return browser.Rect{
		X:      r.Get("x").Float(),
		Y:      r.Get("y").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}, nil
}

func (e *Element) Parent() (browser.Element, error) {
	var obj *runtime.RemoteObject
	err := e.page.run(chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		obj, err = e.callOn(ctx, jsParent, false)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("parent of %s: %w", e.desc, err)
	}
	if obj.ObjectID == "" {
		return nil, fmt.Errorf("%w: parent of %s", browser.ErrElementNotFound, e.desc)
	}
	return &Element{page: e.page, id: obj.ObjectID, desc: "parent of " + e.desc}, nil
}

// IsSameNode reports whether other is a handle to the same DOM node. Handles
// from other backends are never the same node.
func (e *Element) IsSameNode(other browser.Element) (bool, error) {
	o, ok := other.(*Element)
	if !ok {
		return false, nil
	}
	if o.id == e.id {
		return true, nil
	}
	r, err := e.query(jsSameNode, &runtime.CallArgument{ObjectID: o.id})
	return r.Bool(), err
}

func (e *Element) String() string {
	return e.desc
}
