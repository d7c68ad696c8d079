// Package chrome drives a Chrome tab through the DevTools protocol and exposes
// it as a browser.Session.
package chrome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/browser"
)

const pollInterval = 100 * time.Millisecond

// Page is a single tab. Every call made through it, element lookups included,
// is bounded by the page timeout. Remote objects handed out for elements live
// in the tab's object group until the next navigation releases them.
type Page struct {
	ctx       context.Context
	cancel    context.CancelFunc
	timeout   time.Duration
	group     string
	alertOpen atomic.Bool
}

var _ browser.Session = (*Page)(nil)

// NewPage opens a blank tab in the browser behind browserCtx.
func NewPage(browserCtx context.Context, timeout time.Duration) (*Page, error) {
	if browserCtx == nil {
		return nil, fmt.Errorf("browser context not initialized. Call LaunchBrowserAndContext first")
	}

	var newTargetID target.ID
	err := chromedp.Run(
		browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			newTargetID, err = target.CreateTarget("about:blank").Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create new target (tab): %w", err)
	}

	newPageCtx, newPageCancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(newTargetID))
	p := &Page{
		ctx:     newPageCtx,
		cancel:  newPageCancel,
		timeout: timeout,
		group:   objectGroup(newTargetID),
	}

	chromedp.ListenTarget(newPageCtx, func(ifEv interface{}) {
		switch ev := ifEv.(type) {
		case *page.EventJavascriptDialogOpening:
			log.Debugf("Dialog opened (%s): %s", ev.Type, ev.Message)
			p.alertOpen.Store(true)
		case *page.EventJavascriptDialogClosed:
			p.alertOpen.Store(false)
		}
	})

	if err = chromedp.Run(newPageCtx); err != nil {
		newPageCancel()
		return nil, fmt.Errorf("failed to attach to tab %s: %w", newTargetID, err)
	}

	log.Debugf("New Chromedp page (targetID: %s) created.", newTargetID)
	return p, nil
}

// run executes actions on the tab, bounded by the page timeout.
func (p *Page) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	return timeoutError(chromedp.Run(ctx, actions...))
}

func timeoutError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", browser.ErrTimeout, err)
	}
	return err
}

func objectGroup(id target.ID) string {
	return "pagecheck-" + string(id)
}

// Navigate loads url. Elements found before the call are released and must
// not be used afterwards.
func (p *Page) Navigate(url string) error {
	log.Debugf("Navigating to: %s", url)
	release := chromedp.ActionFunc(func(ctx context.Context) error {
		return runtime.ReleaseObjectGroup(p.group).Do(ctx)
	})
	if err := p.run(release, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (p *Page) Title() (string, error) {
	var title string
	if err := p.run(chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

func (p *Page) CurrentURL() (string, error) {
	var location string
	if err := p.run(chromedp.Location(&location)); err != nil {
		return "", err
	}
	return location, nil
}

// AlertPresent reports whether a JavaScript dialog is open on the tab.
func (p *Page) AlertPresent() (bool, error) {
	return p.alertOpen.Load(), nil
}

// DismissAlert closes an open dialog, if any.
func (p *Page) DismissAlert() error {
	if !p.alertOpen.Load() {
		return nil
	}
	return p.run(page.HandleJavaScriptDialog(false))
}

// ElementPresent checks the document once, without waiting.
func (p *Page) ElementPresent(locator string) (bool, error) {
	var present bool
	err := p.run(chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := evaluate(ctx, evaluateParams(fmt.Sprintf("document.querySelector(%s) !== null", jsString(locator)), true, p.group))
		if err != nil {
			return err
		}
		present = decode(obj).Bool()
		return nil
	}))
	return present, err
}

// FindElement waits up to the page timeout for locator to match in the
// document.
func (p *Page) FindElement(locator string) (browser.Element, error) {
	expr := fmt.Sprintf("document.querySelector(%s)", jsString(locator))
	return p.poll("document", locator, func(ctx context.Context) (*runtime.RemoteObject, error) {
		return evaluate(ctx, evaluateParams(expr, false, p.group))
	})
}

// poll repeats query until it yields an element or the page timeout expires.
func (p *Page) poll(scope, locator string, query func(ctx context.Context) (*runtime.RemoteObject, error)) (browser.Element, error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()

	for {
		var obj *runtime.RemoteObject
		err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			obj, err = query(ctx)
			return err
		}))
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %q in %s: %w", browser.ErrElementNotFound, locator, scope, browser.ErrTimeout)
			}
			return nil, fmt.Errorf("find %q in %s: %w", locator, scope, err)
		}
		if obj.ObjectID != "" {
			return &Element{page: p, id: obj.ObjectID, desc: locator}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %q in %s: %w", browser.ErrElementNotFound, locator, scope, browser.ErrTimeout)
		case <-time.After(pollInterval):
		}
	}
}

func (p *Page) Close() {
	p.cancel()
}

func evaluateParams(expr string, byValue bool, group string) *runtime.EvaluateParams {
	return runtime.Evaluate(expr).WithReturnByValue(byValue).WithObjectGroup(group)
}

func evaluate(ctx context.Context, params *runtime.EvaluateParams) (*runtime.RemoteObject, error) {
	obj, exc, err := params.Do(ctx)
	if err != nil {
		return nil, err
	}
	if exc != nil {
		return nil, exc
	}
	return obj, nil
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
