package pw

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/browser"
)

// Page adapts a playwright.Page. Element lookups wait for the selector to be
// attached, up to the page timeout.
type Page struct {
	page    playwright.Page
	timeout float64

	mu     sync.Mutex
	dialog playwright.Dialog
}

var _ browser.Session = (*Page)(nil)

// NewPage wraps page and starts tracking its dialogs.
func NewPage(page playwright.Page, timeout time.Duration) *Page {
	p := &Page{
		page:    page,
		timeout: float64(timeout.Milliseconds()),
	}
	page.SetDefaultTimeout(p.timeout)
	page.OnDialog(func(d playwright.Dialog) {
		log.Debugf("Dialog opened (%s): %s", d.Type(), d.Message())
		p.mu.Lock()
		p.dialog = d
		p.mu.Unlock()
	})
	return p
}

func (p *Page) Navigate(url string) error {
	log.Debugf("Navigating to: %s", url)
	p.mu.Lock()
	p.dialog = nil
	p.mu.Unlock()
	if _, err := p.page.Goto(url, playwright.PageGotoOptions{Timeout: playwright.Float(p.timeout)}); err != nil {
		return fmt.Errorf("could not goto %s: %w", url, wrapTimeout(err))
	}
	return nil
}

func (p *Page) Title() (string, error) {
	title, err := p.page.Title()
	return title, wrapTimeout(err)
}

func (p *Page) CurrentURL() (string, error) {
	return p.page.URL(), nil
}

// AlertPresent reports whether a dialog opened and has not been dismissed.
func (p *Page) AlertPresent() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dialog != nil, nil
}

// DismissAlert dismisses the open dialog, if any.
func (p *Page) DismissAlert() error {
	p.mu.Lock()
	d := p.dialog
	p.dialog = nil
	p.mu.Unlock()
	if d == nil {
		return nil
	}
	return d.Dismiss()
}

// ElementPresent checks the document once, without waiting.
func (p *Page) ElementPresent(locator string) (bool, error) {
	handle, err := p.page.QuerySelector(locator)
	if err != nil {
		return false, err
	}
	return handle != nil, nil
}

func (p *Page) FindElement(locator string) (browser.Element, error) {
	handle, err := p.page.WaitForSelector(locator, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(p.timeout),
	})
	if err != nil {
		return nil, lookupError(locator, "document", err)
	}
	return &Element{handle: handle, desc: locator, timeout: p.timeout}, nil
}

func (p *Page) Close() error {
	return p.page.Close()
}

func lookupError(locator, scope string, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %q in %s: %w", browser.ErrElementNotFound, locator, scope, browser.ErrTimeout)
	}
	return fmt.Errorf("find %q in %s: %w", locator, scope, err)
}

func wrapTimeout(err error) error {
	if err != nil && errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", browser.ErrTimeout, err)
	}
	return err
}
