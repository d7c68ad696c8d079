package assertion

import (
	"github.com/mykulyak/pagecheck/internal/browser"
)

// ElementRectEmpty passes when the element's width or height is below
// browser.Epsilon.
func (a *Assertions) ElementRectEmpty(e browser.Element) error {
	rect, err := e.Rect()
	if err != nil {
		return err
	}
	return a.judge("ElementRectEmpty", rect.IsEmpty(), Params{"rect": rect})
}

func (a *Assertions) ElementRectNotEmpty(e browser.Element) error {
	rect, err := e.Rect()
	if err != nil {
		return err
	}
	return a.judge("ElementRectNotEmpty", !rect.IsEmpty(), Params{"rect": rect})
}

// ElementRectIncludesPoint uses browser.Rect.Contains: left and top edges
// inclusive, right edge exclusive, bottom edge inclusive.
func (a *Assertions) ElementRectIncludesPoint(e browser.Element, point browser.Point) error {
	rect, err := e.Rect()
	if err != nil {
		return err
	}
	return a.judge("ElementRectIncludesPoint", rect.Contains(point), Params{"rect": rect, "point": point})
}

func (a *Assertions) ElementRectNotIncludesPoint(e browser.Element, point browser.Point) error {
	rect, err := e.Rect()
	if err != nil {
		return err
	}
	return a.judge("ElementRectNotIncludesPoint", !rect.Contains(point), Params{"rect": rect, "point": point})
}
