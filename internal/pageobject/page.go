// Package pageobject implements lazily resolved page objects. A Schema
// declares the element and component tree of a page once; a Page binds it to a
// driver and resolves declared fields against the live document on every
// access. Nothing resolved is cached.
package pageobject

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/browser"
)

// VisitFunc is called by Walk for every field once it has been resolved.
// path is the dotted path of the field from the page root.
type VisitFunc func(path string, field Field, element browser.Element) error

// node is the part shared by pages and components: a schema evaluated against
// a scope.
type node struct {
	schema *Schema
	scope  browser.Scope
	path   string
	values map[string]any
}

func newNode(schema *Schema, scope browser.Scope, path string) node {
	return node{schema: schema, scope: scope, path: path}
}

// Schema returns the declaration this instance was built from.
func (n *node) Schema() *Schema {
	return n.schema
}

func (n *node) lookup(name string, kind Kind) (Field, error) {
	f, ok := n.schema.Field(name)
	if !ok {
		return Field{}, &FieldError{Schema: n.schema.name, Field: name, Err: ErrUnknownField}
	}
	if f.Kind != kind {
		err := ErrNotElement
		if kind == KindComponent {
			err = ErrNotComponent
		}
		return Field{}, &FieldError{Schema: n.schema.name, Field: name, Err: err}
	}
	return f, nil
}

func (n *node) childPath(name string) string {
	if n.path == "" {
		return name
	}
	return n.path + "." + name
}

// Element resolves the declared element field name. Lookup failures come back
// exactly as the scope returned them.
func (n *node) Element(name string) (browser.Element, error) {
	f, err := n.lookup(name, KindElement)
	if err != nil {
		return nil, err
	}
	log.Debugf("resolving element %s (%s)", n.childPath(name), f.Locator)
	return n.scope.FindElement(f.Locator)
}

// Component resolves the declared component field name. The returned
// component is scoped to the element its locator matched.
func (n *node) Component(name string) (*Component, error) {
	f, err := n.lookup(name, KindComponent)
	if err != nil {
		return nil, err
	}
	log.Debugf("resolving component %s (%s)", n.childPath(name), f.Locator)
	root, err := n.scope.FindElement(f.Locator)
	if err != nil {
		return nil, err
	}
	return &Component{node: newNode(f.Schema, root, n.childPath(name)), root: root}, nil
}

// Resolve follows a dotted path such as "header.link_questions" through
// nested components. A path ending at a component yields its root element.
func (n *node) Resolve(path string) (browser.Element, error) {
	names := strings.Split(path, ".")
	current := n
	for i, name := range names {
		f, ok := current.schema.Field(name)
		if !ok {
			return nil, &FieldError{Schema: current.schema.name, Field: name, Err: ErrUnknownField}
		}
		last := i == len(names)-1
		if f.Kind == KindElement {
			if !last {
				return nil, &FieldError{Schema: current.schema.name, Field: name, Err: ErrNotComponent}
			}
			return current.Element(name)
		}
		comp, err := current.Component(name)
		if err != nil {
			return nil, err
		}
		if last {
			return comp.Root(), nil
		}
		current = &comp.node
	}
	return nil, &FieldError{Schema: n.schema.name, Field: path, Err: ErrUnknownField}
}

// WaitToLoad resolves every declared element and, recursively, every declared
// component depth first in declaration order. It stops at the first failure.
// Any waiting is done by the driver's own lookups.
func (n *node) WaitToLoad() error {
	return n.Walk(nil)
}

// Walk is WaitToLoad with a visitor called after each successful resolution.
func (n *node) Walk(visit VisitFunc) error {
	for _, f := range n.schema.fields {
		switch f.Kind {
		case KindElement:
			el, err := n.Element(f.Name)
			if err != nil {
				return err
			}
			if visit != nil {
				if err = visit(n.childPath(f.Name), f, el); err != nil {
					return err
				}
			}
		case KindComponent:
			comp, err := n.Component(f.Name)
			if err != nil {
				return err
			}
			if visit != nil {
				if err = visit(comp.path, f, comp.root); err != nil {
					return err
				}
			}
			if err = comp.Walk(visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// Set stores a plain per-instance value. Declared fields cannot be assigned.
func (n *node) Set(name string, value any) error {
	if n.schema.Has(name) {
		return &FieldError{Schema: n.schema.name, Field: name, Err: ErrReadOnlyField}
	}
	if n.values == nil {
		n.values = make(map[string]any)
	}
	n.values[name] = value
	return nil
}

// Value returns a value stored with Set.
func (n *node) Value(name string) (any, bool) {
	v, ok := n.values[name]
	return v, ok
}

// Page is the root of a page object, bound to a driver for its lifetime. The
// driver stays owned by the caller.
type Page struct {
	node
	driver browser.Driver
}

// New binds schema to driver without resolving anything. schema must not be
// nil; use Load to have that checked.
func New(schema *Schema, driver browser.Driver) *Page {
	return &Page{node: newNode(schema, driver, ""), driver: driver}
}

// Load binds schema to driver and waits for every declared field to resolve.
func Load(schema *Schema, driver browser.Driver) (*Page, error) {
	if schema == nil {
		return nil, ErrNilSchema
	}
	p := New(schema, driver)
	if err := p.WaitToLoad(); err != nil {
		return nil, err
	}
	log.Debugf("page %s loaded", schema.name)
	return p, nil
}

func (p *Page) Driver() browser.Driver {
	return p.driver
}

// Component is a resolved part of a page. Its fields resolve inside Root.
type Component struct {
	node
	root browser.Element
}

// Root is the element the component's locator matched.
func (c *Component) Root() browser.Element {
	return c.root
}

// Path is the dotted path of the component from the page root.
func (c *Component) Path() string {
	return c.path
}
