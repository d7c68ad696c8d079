package pageobject

import (
	"fmt"
	"strings"
)

// Kind tells elements and components apart in a Schema.
type Kind int

const (
	KindElement Kind = iota
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindComponent:
		return "component"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field is one declared entry of a Schema.
type Field struct {
	Name    string
	Locator string
	Kind    Kind
	// Schema describes the sub-tree of a component field. Nil for elements.
	Schema *Schema
}

// Element declares a field resolving to a single element.
func Element(name, locator string) Field {
	return Field{Name: name, Locator: locator, Kind: KindElement}
}

// Component declares a field whose locator scopes the nested schema.
func Component(name, locator string, schema *Schema) Field {
	return Field{Name: name, Locator: locator, Kind: KindComponent, Schema: schema}
}

// Schema is the ordered, immutable declaration of a page or component.
// Declaration order is the order WaitToLoad resolves fields in.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema validates fields and builds a Schema.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		switch {
		case f.Name == "":
			return nil, fmt.Errorf("schema %s: field with empty name", name)
		case strings.Contains(f.Name, "."):
			return nil, fmt.Errorf("schema %s: field name %q must not contain '.'", name, f.Name)
		case strings.TrimSpace(f.Locator) == "":
			return nil, fmt.Errorf("schema %s: field %q has an empty locator", name, f.Name)
		case f.Kind == KindComponent && f.Schema == nil:
			return nil, fmt.Errorf("schema %s: component %q has no schema", name, f.Name)
		case f.Kind != KindElement && f.Kind != KindComponent:
			return nil, fmt.Errorf("schema %s: field %q has unknown kind %v", name, f.Name, f.Kind)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate field %q", name, f.Name)
		}
		if f.Kind == KindElement {
			f.Schema = nil
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is NewSchema for package level declarations. It panics on an
// invalid declaration.
func MustSchema(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	return s.name
}

// Fields returns a copy of the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}
