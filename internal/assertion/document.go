package assertion

import (
	"github.com/mykulyak/pagecheck/internal/browser"
)

func (a *Assertions) AlertIsPresent(d browser.Driver) error {
	present, err := d.AlertPresent()
	if err != nil {
		return err
	}
	return a.judge("AlertIsPresent", present, Params{"alert_is_present": true})
}

func (a *Assertions) AlertIsNotPresent(d browser.Driver) error {
	present, err := d.AlertPresent()
	if err != nil {
		return err
	}
	return a.judge("AlertIsNotPresent", !present, Params{"alert_is_present": false})
}

func (a *Assertions) DocumentTitleEqual(d browser.Driver, expected string) error {
	actual, err := d.Title()
	if err != nil {
		return err
	}
	return a.judge("DocumentTitleEqual", actual == expected, Params{"expected": expected, "actual": actual})
}

func (a *Assertions) DocumentTitleNotEqual(d browser.Driver, expected string) error {
	actual, err := d.Title()
	if err != nil {
		return err
	}
	return a.judge("DocumentTitleNotEqual", actual != expected, Params{"expected": expected, "actual": actual})
}

// DocumentTitleMatches passes when pattern matches at the start of the title.
func (a *Assertions) DocumentTitleMatches(d browser.Driver, pattern string) error {
	actual, err := d.Title()
	if err != nil {
		return err
	}
	matched, err := matchesAtStart(pattern, actual)
	if err != nil {
		return err
	}
	return a.judge("DocumentTitleMatches", matched, Params{"pattern": pattern, "actual": actual})
}

func (a *Assertions) DocumentTitleNotMatches(d browser.Driver, pattern string) error {
	actual, err := d.Title()
	if err != nil {
		return err
	}
	matched, err := matchesAtStart(pattern, actual)
	if err != nil {
		return err
	}
	return a.judge("DocumentTitleNotMatches", !matched, Params{"pattern": pattern, "actual": actual})
}

func (a *Assertions) URLHashEqual(d browser.Driver, expected string) error {
	actual, err := browser.URLHash(d)
	if err != nil {
		return err
	}
	return a.judge("URLHashEqual", actual == expected, Params{"actual": actual, "expected": expected})
}

func (a *Assertions) URLHashNotEqual(d browser.Driver, expected string) error {
	actual, err := browser.URLHash(d)
	if err != nil {
		return err
	}
	return a.judge("URLHashNotEqual", actual != expected, Params{"actual": actual, "expected": expected})
}

func (a *Assertions) URLHashMatches(d browser.Driver, pattern string) error {
	actual, err := browser.URLHash(d)
	if err != nil {
		return err
	}
	matched, err := matchesAtStart(pattern, actual)
	if err != nil {
		return err
	}
	return a.judge("URLHashMatches", matched, Params{"actual": actual, "pattern": pattern})
}

func (a *Assertions) URLHashNotMatches(d browser.Driver, pattern string) error {
	actual, err := browser.URLHash(d)
	if err != nil {
		return err
	}
	matched, err := matchesAtStart(pattern, actual)
	if err != nil {
		return err
	}
	return a.judge("URLHashNotMatches", !matched, Params{"actual": actual, "pattern": pattern})
}

// ElementPresent checks that locator matches something right now. It does
// not wait for the element to appear.
func (a *Assertions) ElementPresent(d browser.Driver, locator string) error {
	present, err := d.ElementPresent(locator)
	if err != nil {
		return err
	}
	return a.judge("ElementPresent", present, Params{"locator": locator})
}

func (a *Assertions) ElementNotPresent(d browser.Driver, locator string) error {
	present, err := d.ElementPresent(locator)
	if err != nil {
		return err
	}
	return a.judge("ElementNotPresent", !present, Params{"locator": locator})
}
