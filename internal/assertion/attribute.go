package assertion

import (
	"slices"

	"github.com/mykulyak/pagecheck/internal/browser"
)

// ElementAttrEqual passes when the attribute is set and equals expected.
func (a *Assertions) ElementAttrEqual(e browser.Element, name, expected string) error {
	actual, ok, err := e.Attribute(name)
	if err != nil {
		return err
	}
	params := Params{"attr_name": name, "expected_value": expected, "actual_value": attrValue(actual, ok)}
	return a.judge("ElementAttrEqual", ok && actual == expected, params)
}

func (a *Assertions) ElementAttrNotEqual(e browser.Element, name, expected string) error {
	actual, ok, err := e.Attribute(name)
	if err != nil {
		return err
	}
	params := Params{"attr_name": name, "expected_value": expected, "actual_value": attrValue(actual, ok)}
	return a.judge("ElementAttrNotEqual", !ok || actual != expected, params)
}

// attrValue keeps unset attributes distinguishable from empty ones in params.
func attrValue(value string, ok bool) any {
	if !ok {
		return nil
	}
	return value
}

func (a *Assertions) ElementCSSClassContains(e browser.Element, class string) error {
	classes, err := browser.ClassList(e)
	if err != nil {
		return err
	}
	params := Params{"actual_class_list": classes, "expected": class}
	return a.judge("ElementCSSClassContains", slices.Contains(classes, class), params)
}

func (a *Assertions) ElementCSSClassNotContains(e browser.Element, class string) error {
	classes, err := browser.ClassList(e)
	if err != nil {
		return err
	}
	params := Params{"actual_class_list": classes, "expected": class}
	return a.judge("ElementCSSClassNotContains", !slices.Contains(classes, class), params)
}

func (a *Assertions) ElementCSSPropertyEqual(e browser.Element, property, expected string) error {
	actual, err := e.CSSProperty(property)
	if err != nil {
		return err
	}
	params := Params{"property_name": property, "actual_value": actual, "expected_value": expected}
	return a.judge("ElementCSSPropertyEqual", actual == expected, params)
}

func (a *Assertions) ElementCSSPropertyNotEqual(e browser.Element, property, expected string) error {
	actual, err := e.CSSProperty(property)
	if err != nil {
		return err
	}
	params := Params{"property_name": property, "actual_value": actual, "expected_value": expected}
	return a.judge("ElementCSSPropertyNotEqual", actual != expected, params)
}

// ElementChildOf passes when the element's parent is parent.
func (a *Assertions) ElementChildOf(e, parent browser.Element) error {
	same, err := parentIs(e, parent)
	if err != nil {
		return err
	}
	return a.judge("ElementChildOf", same, Params{})
}

func (a *Assertions) ElementNotChildOf(e, parent browser.Element) error {
	same, err := parentIs(e, parent)
	if err != nil {
		return err
	}
	return a.judge("ElementNotChildOf", !same, Params{})
}

func parentIs(e, parent browser.Element) (bool, error) {
	actual, err := e.Parent()
	if err != nil {
		return false, err
	}
	return actual.IsSameNode(parent)
}
