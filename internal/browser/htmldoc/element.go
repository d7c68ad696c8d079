package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/css/scanner"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mykulyak/pagecheck/internal/browser"
)

// Element is a single node of a Document.
type Element struct {
	sel  *goquery.Selection
	desc string
}

var _ browser.Element = (*Element)(nil)

// never rendered, whatever their styles say
var hiddenTags = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
	atom.Noscript: true,
	atom.Title:    true,
	atom.Meta:     true,
	atom.Link:     true,
}

func (e *Element) node() *html.Node {
	return e.sel.Get(0)
}

func (e *Element) FindElement(locator string) (browser.Element, error) {
	return find(e.sel, e.desc, locator)
}

// IsDisplayed is false when the element or an ancestor is hidden by the
// hidden attribute, a non-rendered tag or an inline display:none /
// visibility:hidden. Hidden inputs are never displayed.
func (e *Element) IsDisplayed() (bool, error) {
	n := e.node()
	if n.DataAtom == atom.Input && strings.EqualFold(attr(n, "type"), "hidden") {
		return false, nil
	}
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if hiddenTags[n.DataAtom] || hasAttr(n, "hidden") {
			return false, nil
		}
		style := ParseStyle(attr(n, "style"))
		if style["display"] == "none" || style["visibility"] == "hidden" {
			return false, nil
		}
	}
	return true, nil
}

// IsEnabled is false for disabled controls and for controls inside a disabled
// fieldset.
func (e *Element) IsEnabled() (bool, error) {
	for n := e.node(); n != nil && n.Type == html.ElementNode; n = n.Parent {
		if hasAttr(n, "disabled") && (n == e.node() || n.DataAtom == atom.Fieldset) {
			return false, nil
		}
	}
	return true, nil
}

func (e *Element) IsSelected() (bool, error) {
	n := e.node()
	return hasAttr(n, "selected") || hasAttr(n, "checked"), nil
}

// IsClickable is displayed and enabled.
func (e *Element) IsClickable() (bool, error) {
	displayed, _ := e.IsDisplayed()
	enabled, _ := e.IsEnabled()
	return displayed && enabled, nil
}

// Text is the whitespace-collapsed text content.
func (e *Element) Text() (string, error) {
	return collapse(e.sel.Text()), nil
}

func (e *Element) TagName() (string, error) {
	return goquery.NodeName(e.sel), nil
}

func (e *Element) Attribute(name string) (string, bool, error) {
	value, ok := e.sel.Attr(name)
	return value, ok, nil
}

// CSSProperty reads the inline style only.
func (e *Element) CSSProperty(name string) (string, error) {
	return ParseStyle(attr(e.node(), "style"))[strings.ToLower(name)], nil
}

func (e *Element) Rect() (browser.Rect, error) {
	return browser.Rect{}, fmt.Errorf("rect of %s: %w", e.desc, browser.ErrUnsupported)
}

func (e *Element) Parent() (browser.Element, error) {
	parent := e.sel.Parent()
	if parent.Length() == 0 {
		return nil, fmt.Errorf("%w: parent of %s", browser.ErrElementNotFound, e.desc)
	}
	return &Element{sel: parent, desc: "parent of " + e.desc}, nil
}

func (e *Element) IsSameNode(other browser.Element) (bool, error) {
	o, ok := other.(*Element)
	return ok && o.node() == e.node(), nil
}

func (e *Element) String() string {
	return e.desc
}

// ParseStyle splits an inline style declaration into lower-cased property
// names and trimmed values. Later declarations win.
func ParseStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range splitDeclarations(style) {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		if name != "" {
			props[name] = value
		}
	}
	return props
}

// splitDeclarations cuts style at semicolons outside strings, url() and
// parentheses. Comments are dropped.
func splitDeclarations(style string) []string {
	var (
		decls []string
		b     strings.Builder
		depth int
	)
	s := scanner.New(style)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return append(decls, b.String())
		case scanner.TokenComment:
			continue
		case scanner.TokenFunction:
			depth++
		case scanner.TokenChar:
			switch tok.Value {
			case "(":
				depth++
			case ")":
				if depth > 0 {
					depth--
				}
			case ";":
				if depth == 0 {
					decls = append(decls, b.String())
					b.Reset()
					continue
				}
			}
		}
		b.WriteString(tok.Value)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
