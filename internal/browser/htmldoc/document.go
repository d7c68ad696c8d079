// Package htmldoc is a browser.Session over a parsed HTML document. Nothing is
// rendered and no scripts run, so geometry queries are unsupported and
// visibility only follows markup and inline styles. Lookups never wait.
package htmldoc

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/browser"
)

// Document is a static HTML page.
type Document struct {
	doc    *goquery.Document
	url    string
	client *http.Client
}

var _ browser.Session = (*Document)(nil)

// New returns an empty document at about:blank. client fetches http and
// https URLs on Navigate; nil means http.DefaultClient.
func New(client *http.Client) *Document {
	if client == nil {
		client = http.DefaultClient
	}
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(""))
	return &Document{doc: doc, url: "about:blank", client: client}
}

// Parse reads an HTML document that is considered loaded from location.
func Parse(r io.Reader, location string) (*Document, error) {
	d := New(nil)
	if err := d.load(r, location); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseString is Parse over a string.
func ParseString(s, location string) (*Document, error) {
	return Parse(strings.NewReader(s), location)
}

func (d *Document) load(r io.Reader, location string) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("parse %s: %w", location, err)
	}
	d.doc = doc
	d.url = location
	return nil
}

// Navigate loads location. file URLs and plain paths are read from disk,
// http and https URLs are fetched.
func (d *Document) Navigate(location string) error {
	log.Debugf("Loading document: %s", location)
	u, err := url.Parse(location)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", location, err)
	}

	switch u.Scheme {
	case "http", "https":
		resp, err := d.client.Get(location)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", location, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("fetch %s: unexpected status %s", location, resp.Status)
		}
		return d.load(resp.Body, location)
	case "file", "":
		path := u.Path
		if u.Scheme == "" {
			path = location
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return d.load(f, location)
	default:
		return fmt.Errorf("unsupported url scheme %q in %s", u.Scheme, location)
	}
}

// Title is the whitespace-collapsed text of the first title element.
func (d *Document) Title() (string, error) {
	return collapse(d.doc.Find("title").First().Text()), nil
}

func (d *Document) CurrentURL() (string, error) {
	return d.url, nil
}

// AlertPresent is always false; static documents run no scripts.
func (d *Document) AlertPresent() (bool, error) {
	return false, nil
}

func (d *Document) ElementPresent(locator string) (bool, error) {
	m, err := compile(locator)
	if err != nil {
		return false, err
	}
	return d.doc.FindMatcher(m).Length() > 0, nil
}

func (d *Document) FindElement(locator string) (browser.Element, error) {
	return find(d.doc.Selection, "document", locator)
}

func find(scope *goquery.Selection, scopeDesc, locator string) (browser.Element, error) {
	m, err := compile(locator)
	if err != nil {
		return nil, err
	}
	found := scope.FindMatcher(m).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("%w: %q in %s", browser.ErrElementNotFound, locator, scopeDesc)
	}
	return &Element{sel: found, desc: locator}, nil
}

func compile(locator string) (cascadia.Selector, error) {
	m, err := cascadia.Compile(locator)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", locator, err)
	}
	return m, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
