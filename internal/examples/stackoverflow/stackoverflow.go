// Package stackoverflow models the Stack Overflow questions list as a page
// object with typed accessors over the generic page model.
package stackoverflow

import (
	"github.com/mykulyak/pagecheck/internal/browser"
	"github.com/mykulyak/pagecheck/internal/pageobject"
)

var (
	HeaderSchema = pageobject.MustSchema("Header",
		pageobject.Element("logo", ".-logo"),
		pageobject.Element("link_questions", "#nav-questions"),
		pageobject.Element("search_field", "[name=q]"),
	)

	FooterSchema = pageobject.MustSchema("Footer",
		pageobject.Element("copyright_label", "#copyright"),
	)

	QuestionsPageSchema = pageobject.MustSchema("QuestionsPage",
		pageobject.Component("header", "header.so-header", HeaderSchema),
		pageobject.Component("footer", "#footer", FooterSchema),
	)
)

// QuestionsPage is https://stackoverflow.com/questions.
type QuestionsPage struct {
	page *pageobject.Page
}

// Open binds the questions page to d without waiting for it.
func Open(d browser.Driver) *QuestionsPage {
	return &QuestionsPage{page: pageobject.New(QuestionsPageSchema, d)}
}

// Load binds the questions page to d and waits for every field.
func Load(d browser.Driver) (*QuestionsPage, error) {
	p, err := pageobject.Load(QuestionsPageSchema, d)
	if err != nil {
		return nil, err
	}
	return &QuestionsPage{page: p}, nil
}

func (p *QuestionsPage) Page() *pageobject.Page {
	return p.page
}

func (p *QuestionsPage) Header() (*Header, error) {
	c, err := p.page.Component("header")
	if err != nil {
		return nil, err
	}
	return &Header{c: c}, nil
}

func (p *QuestionsPage) Footer() (*Footer, error) {
	c, err := p.page.Component("footer")
	if err != nil {
		return nil, err
	}
	return &Footer{c: c}, nil
}

type Header struct {
	c *pageobject.Component
}

func (h *Header) Root() browser.Element {
	return h.c.Root()
}

func (h *Header) Logo() (browser.Element, error) {
	return h.c.Element("logo")
}

func (h *Header) LinkQuestions() (browser.Element, error) {
	return h.c.Element("link_questions")
}

func (h *Header) SearchField() (browser.Element, error) {
	return h.c.Element("search_field")
}

type Footer struct {
	c *pageobject.Component
}

func (f *Footer) Root() browser.Element {
	return f.c.Root()
}

func (f *Footer) CopyrightLabel() (browser.Element, error) {
	return f.c.Element("copyright_label")
}
