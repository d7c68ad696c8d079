package assertion

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mykulyak/pagecheck/internal/browser"
	"github.com/mykulyak/pagecheck/internal/browser/browsertest"
)

func newLogged(t *testing.T) (*Assertions, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return New(NewLogReporter(logger)), hook
}

// requireOutcome checks that exactly one entry was logged for assertion and
// that it carries the expected outcome.
func requireOutcome(t *testing.T, hook *test.Hook, assertion string, passed bool) {
	t.Helper()
	entries := hook.AllEntries()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, assertion, entry.Data["assertion"])
	if passed {
		assert.Equal(t, DefaultSuccessLevel, entry.Level)
		assert.Equal(t, "succeeded", entry.Data["outcome"])
	} else {
		assert.Equal(t, DefaultFailureLevel, entry.Level)
		assert.Equal(t, "failed", entry.Data["outcome"])
	}
}

func requireFailed(t *testing.T, err error, assertion string) *Error {
	t.Helper()
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, assertion, ae.Assertion)
	return ae
}

func TestDocumentTitle(t *testing.T) {
	d := browsertest.NewDriver().WithTitle("Stack Overflow - Where Developers Learn")

	tests := []struct {
		name      string
		assertion string
		check     func(a *Assertions) error
		passed    bool
	}{
		{"equal", "DocumentTitleEqual", func(a *Assertions) error {
			return a.DocumentTitleEqual(d, "Stack Overflow - Where Developers Learn")
		}, true},
		{"equal mismatch", "DocumentTitleEqual", func(a *Assertions) error {
			return a.DocumentTitleEqual(d, "Stack Overflow")
		}, false},
		{"not equal", "DocumentTitleNotEqual", func(a *Assertions) error {
			return a.DocumentTitleNotEqual(d, "Other")
		}, true},
		{"not equal same", "DocumentTitleNotEqual", func(a *Assertions) error {
			return a.DocumentTitleNotEqual(d, "Stack Overflow - Where Developers Learn")
		}, false},
		{"matches prefix", "DocumentTitleMatches", func(a *Assertions) error {
			return a.DocumentTitleMatches(d, `Stack \w+`)
		}, true},
		{"matches only at start", "DocumentTitleMatches", func(a *Assertions) error {
			return a.DocumentTitleMatches(d, `Developers`)
		}, false},
		{"not matches", "DocumentTitleNotMatches", func(a *Assertions) error {
			return a.DocumentTitleNotMatches(d, `Developers`)
		}, true},
		{"not matches prefix", "DocumentTitleNotMatches", func(a *Assertions) error {
			return a.DocumentTitleNotMatches(d, `Stack`)
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, hook := newLogged(t)
			err := tt.check(a)
			if tt.passed {
				assert.NoError(t, err)
			} else {
				requireFailed(t, err, tt.assertion)
			}
			requireOutcome(t, hook, tt.assertion, tt.passed)
		})
	}
}

func TestFailureCarriesParams(t *testing.T) {
	d := browsertest.NewDriver().WithTitle("Actual")
	a, _ := newLogged(t)

	ae := requireFailed(t, a.DocumentTitleEqual(d, "Expected"), "DocumentTitleEqual")
	assert.Equal(t, Params{"expected": "Expected", "actual": "Actual"}, ae.Params)
	assert.True(t, IsAssertionError(ae))
	assert.Contains(t, ae.Error(), "DocumentTitleEqual")
}

func TestInvalidPatternIsNotReported(t *testing.T) {
	d := browsertest.NewDriver().WithTitle("x").WithURL("https://example.com/#x")
	a, hook := newLogged(t)

	err := a.DocumentTitleMatches(d, `(`)
	require.Error(t, err)
	assert.False(t, IsAssertionError(err))

	err = a.URLHashNotMatches(d, `[`)
	require.Error(t, err)
	assert.False(t, IsAssertionError(err))
	assert.Empty(t, hook.AllEntries())
}

func TestDriverErrorsAreReturnedUnreported(t *testing.T) {
	boom := errors.New("session closed")
	d := browsertest.NewDriver().WithTitleError(boom).WithURLError(boom).WithAlertError(boom).
		WithLookupError("#x", boom)
	a, hook := newLogged(t)

	assert.ErrorIs(t, a.DocumentTitleEqual(d, "t"), boom)
	assert.ErrorIs(t, a.URLHashEqual(d, "h"), boom)
	assert.ErrorIs(t, a.AlertIsPresent(d), boom)
	assert.ErrorIs(t, a.ElementPresent(d, "#x"), boom)
	assert.Empty(t, hook.AllEntries())
}

func TestAlert(t *testing.T) {
	open := browsertest.NewDriver().WithAlert(true)
	closed := browsertest.NewDriver()

	a, hook := newLogged(t)
	assert.NoError(t, a.AlertIsPresent(open))
	requireOutcome(t, hook, "AlertIsPresent", true)

	a, hook = newLogged(t)
	requireFailed(t, a.AlertIsPresent(closed), "AlertIsPresent")
	requireOutcome(t, hook, "AlertIsPresent", false)

	a, hook = newLogged(t)
	assert.NoError(t, a.AlertIsNotPresent(closed))
	requireOutcome(t, hook, "AlertIsNotPresent", true)

	a, hook = newLogged(t)
	requireFailed(t, a.AlertIsNotPresent(open), "AlertIsNotPresent")
	requireOutcome(t, hook, "AlertIsNotPresent", false)
}

func TestURLHash(t *testing.T) {
	d := browsertest.NewDriver().WithURL("https://stackoverflow.com/questions#answer-42")
	rec := &Recorder{}
	a := New(rec)

	assert.NoError(t, a.URLHashEqual(d, "answer-42"))
	assert.Error(t, a.URLHashEqual(d, "#answer-42"))
	assert.NoError(t, a.URLHashNotEqual(d, "answer-1"))
	assert.NoError(t, a.URLHashMatches(d, `answer-\d+`))
	assert.Error(t, a.URLHashMatches(d, `\d+`))
	assert.NoError(t, a.URLHashNotMatches(d, `question`))

	outcomes := rec.Outcomes()
	require.Len(t, outcomes, 6)
	assert.Equal(t, []bool{true, false, true, true, false, true}, passed(outcomes))
}

func TestURLHashWithoutFragment(t *testing.T) {
	d := browsertest.NewDriver().WithURL("https://stackoverflow.com/")
	a := New(Nop{})

	assert.NoError(t, a.URLHashEqual(d, ""))
	assert.NoError(t, a.URLHashMatches(d, ""))
}

func TestElementPresent(t *testing.T) {
	d := browsertest.NewDriver().WithElement("#nav-questions", browsertest.NewElement("a"))
	rec := &Recorder{}
	a := New(rec)

	assert.NoError(t, a.ElementPresent(d, "#nav-questions"))
	requireFailed(t, a.ElementPresent(d, "#missing"), "ElementPresent")
	assert.NoError(t, a.ElementNotPresent(d, "#missing"))
	requireFailed(t, a.ElementNotPresent(d, "#nav-questions"), "ElementNotPresent")

	outcomes := rec.Outcomes()
	require.Len(t, outcomes, 4)
	assert.Equal(t, Params{"locator": "#missing"}, outcomes[1].Params)
}

func TestElementState(t *testing.T) {
	plain := browsertest.NewElement("button")
	hidden := browsertest.NewElement("button").Hidden()
	disabled := browsertest.NewElement("button").Disabled()
	selected := browsertest.NewElement("option").Selected()

	tests := []struct {
		assertion string
		check     func(a *Assertions, e browser.Element) error
		pass      browser.Element
		fail      browser.Element
	}{
		{"ElementVisible", (*Assertions).ElementVisible, plain, hidden},
		{"ElementNotVisible", (*Assertions).ElementNotVisible, hidden, plain},
		{"ElementEnabled", (*Assertions).ElementEnabled, plain, disabled},
		{"ElementDisabled", (*Assertions).ElementDisabled, disabled, plain},
		{"ElementSelected", (*Assertions).ElementSelected, selected, plain},
		{"ElementNotSelected", (*Assertions).ElementNotSelected, plain, selected},
		{"ElementClickable", (*Assertions).ElementClickable, plain, disabled},
		{"ElementNotClickable", (*Assertions).ElementNotClickable, hidden, plain},
	}
	for _, tt := range tests {
		t.Run(tt.assertion, func(t *testing.T) {
			a, hook := newLogged(t)
			assert.NoError(t, tt.check(a, tt.pass))
			requireOutcome(t, hook, tt.assertion, true)

			a, hook = newLogged(t)
			requireFailed(t, tt.check(a, tt.fail), tt.assertion)
			requireOutcome(t, hook, tt.assertion, false)
		})
	}
}

func TestElementQueryErrorsAreReturnedUnreported(t *testing.T) {
	boom := errors.New("stale element")
	e := browsertest.NewElement("div").WithQueryError(boom)
	a, hook := newLogged(t)

	assert.ErrorIs(t, a.ElementVisible(e), boom)
	assert.ErrorIs(t, a.ElementTextEqual(e, "x"), boom)
	assert.ErrorIs(t, a.ElementAttrEqual(e, "id", "x"), boom)
	assert.ErrorIs(t, a.ElementCSSClassContains(e, "x"), boom)
	assert.ErrorIs(t, a.ElementRectEmpty(e), boom)
	assert.ErrorIs(t, a.ElementChildOf(e, browsertest.NewElement("body")), boom)
	assert.Empty(t, hook.AllEntries())
}

func TestElementTextAlwaysFails(t *testing.T) {
	e := browsertest.NewElement("span").WithText("© 2024")

	for _, expected := range []string{"© 2024", "other"} {
		a, hook := newLogged(t)
		ae := requireFailed(t, a.ElementTextEqual(e, expected), "ElementTextEqual")
		assert.Equal(t, Params{"actual": "© 2024", "expected": expected}, ae.Params)
		requireOutcome(t, hook, "ElementTextEqual", false)

		a, hook = newLogged(t)
		requireFailed(t, a.ElementTextNotEqual(e, expected), "ElementTextNotEqual")
		requireOutcome(t, hook, "ElementTextNotEqual", false)
	}
}

func TestElementTagName(t *testing.T) {
	e := browsertest.NewElement("input")
	a := New(Nop{})

	assert.NoError(t, a.ElementTagNameEqual(e, "input"))
	requireFailed(t, a.ElementTagNameEqual(e, "div"), "ElementTagNameEqual")
	assert.NoError(t, a.ElementTagNameNotEqual(e, "div"))
	requireFailed(t, a.ElementTagNameNotEqual(e, "input"), "ElementTagNameNotEqual")
}

func TestElementRect(t *testing.T) {
	box := browsertest.NewElement("div").WithRect(browser.Rect{X: 10, Y: 20, Width: 100, Height: 50})
	flat := browsertest.NewElement("div").WithRect(browser.Rect{X: 10, Y: 20, Width: 100, Height: 0.0005})
	a := New(Nop{})

	assert.NoError(t, a.ElementRectEmpty(flat))
	requireFailed(t, a.ElementRectEmpty(box), "ElementRectEmpty")
	assert.NoError(t, a.ElementRectNotEmpty(box))
	requireFailed(t, a.ElementRectNotEmpty(flat), "ElementRectNotEmpty")

	assert.NoError(t, a.ElementRectIncludesPoint(box, browser.Point{X: 10, Y: 20}))
	assert.NoError(t, a.ElementRectIncludesPoint(box, browser.Point{X: 50, Y: 70}))
	requireFailed(t, a.ElementRectIncludesPoint(box, browser.Point{X: 110, Y: 30}), "ElementRectIncludesPoint")
	assert.NoError(t, a.ElementRectNotIncludesPoint(box, browser.Point{X: 9, Y: 30}))
	requireFailed(t, a.ElementRectNotIncludesPoint(box, browser.Point{X: 60, Y: 40}), "ElementRectNotIncludesPoint")
}

func TestElementAttr(t *testing.T) {
	e := browsertest.NewElement("input").WithAttr("name", "q").WithAttr("placeholder", "")
	rec := &Recorder{}
	a := New(rec)

	assert.NoError(t, a.ElementAttrEqual(e, "name", "q"))
	assert.NoError(t, a.ElementAttrEqual(e, "placeholder", ""))
	requireFailed(t, a.ElementAttrEqual(e, "type", ""), "ElementAttrEqual")
	assert.NoError(t, a.ElementAttrNotEqual(e, "type", ""))
	requireFailed(t, a.ElementAttrNotEqual(e, "name", "q"), "ElementAttrNotEqual")

	outcomes := rec.Outcomes()
	require.Len(t, outcomes, 5)
	assert.Equal(t, Params{"attr_name": "type", "expected_value": "", "actual_value": nil}, outcomes[2].Params)
}

func TestElementCSSClass(t *testing.T) {
	e := browsertest.NewElement("a").WithAttr("class", "  s-topbar--item   is-selected ")
	bare := browsertest.NewElement("a")
	a := New(Nop{})

	assert.NoError(t, a.ElementCSSClassContains(e, "is-selected"))
	requireFailed(t, a.ElementCSSClassContains(e, "selected"), "ElementCSSClassContains")
	requireFailed(t, a.ElementCSSClassContains(bare, "is-selected"), "ElementCSSClassContains")
	assert.NoError(t, a.ElementCSSClassNotContains(bare, "is-selected"))
	requireFailed(t, a.ElementCSSClassNotContains(e, "s-topbar--item"), "ElementCSSClassNotContains")
}

func TestElementCSSProperty(t *testing.T) {
	e := browsertest.NewElement("div").WithCSS("display", "flex")
	a := New(Nop{})

	assert.NoError(t, a.ElementCSSPropertyEqual(e, "display", "flex"))
	ae := requireFailed(t, a.ElementCSSPropertyEqual(e, "display", "block"), "ElementCSSPropertyEqual")
	assert.Equal(t, "flex", ae.Params["actual_value"])
	assert.NoError(t, a.ElementCSSPropertyNotEqual(e, "display", "block"))
	requireFailed(t, a.ElementCSSPropertyNotEqual(e, "display", "flex"), "ElementCSSPropertyNotEqual")
}

func TestElementChildOf(t *testing.T) {
	logo := browsertest.NewElement("a")
	header := browsertest.NewElement("header").WithChild(".-logo", logo)
	footer := browsertest.NewElement("footer")
	a := New(Nop{})

	assert.NoError(t, a.ElementChildOf(logo, header))
	requireFailed(t, a.ElementChildOf(logo, footer), "ElementChildOf")
	assert.NoError(t, a.ElementNotChildOf(logo, footer))
	requireFailed(t, a.ElementNotChildOf(logo, header), "ElementNotChildOf")
}

func TestElementChildOfWithoutParent(t *testing.T) {
	orphan := browsertest.NewElement("html")
	a, hook := newLogged(t)

	err := a.ElementChildOf(orphan, browsertest.NewElement("body"))
	assert.ErrorIs(t, err, browser.ErrElementNotFound)
	assert.Empty(t, hook.AllEntries())
}

func TestNewWithNilReporterUsesStandardLogger(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	a := New(nil)
	assert.NoError(t, a.ElementVisible(browsertest.NewElement("div")))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "ElementVisible", hook.LastEntry().Data["assertion"])
}

func passed(outcomes []Outcome) []bool {
	out := make([]bool, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Passed
	}
	return out
}
