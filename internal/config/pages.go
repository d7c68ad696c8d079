package config

import (
	"fmt"

	"github.com/mykulyak/pagecheck/internal/pageobject"
)

// PageConfig declares a page schema in YAML:
//
//	pages:
//	  - name: QuestionsPage
//	    fields:
//	      - name: header
//	        locator: header.so-header
//	        fields:
//	          - name: logo
//	            locator: .-logo
type PageConfig struct {
	Name   string        `yaml:"name"`
	Fields []FieldConfig `yaml:"fields"`
}

// FieldConfig is an element, or a component when it has nested fields or a
// schema name.
type FieldConfig struct {
	Name    string        `yaml:"name"`
	Locator string        `yaml:"locator"`
	Schema  string        `yaml:"schema,omitempty"`
	Fields  []FieldConfig `yaml:"fields,omitempty"`
}

func (f FieldConfig) isComponent() bool {
	return len(f.Fields) > 0 || f.Schema != ""
}

// Schema builds the page-object schema the declaration describes.
func (p PageConfig) Schema() (*pageobject.Schema, error) {
	return buildSchema(p.Name, p.Fields)
}

func buildSchema(name string, fields []FieldConfig) (*pageobject.Schema, error) {
	declared := make([]pageobject.Field, 0, len(fields))
	for _, f := range fields {
		if !f.isComponent() {
			declared = append(declared, pageobject.Element(f.Name, f.Locator))
			continue
		}
		schemaName := f.Schema
		if schemaName == "" {
			schemaName = name + "." + f.Name
		}
		nested, err := buildSchema(schemaName, f.Fields)
		if err != nil {
			return nil, err
		}
		declared = append(declared, pageobject.Component(f.Name, f.Locator, nested))
	}
	schema, err := pageobject.NewSchema(name, declared...)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", name, err)
	}
	return schema, nil
}

// Schemas builds every declared page schema keyed by page name.
func (c *AppConfig) Schemas() (map[string]*pageobject.Schema, error) {
	schemas := make(map[string]*pageobject.Schema, len(c.Pages))
	for _, p := range c.Pages {
		s, err := p.Schema()
		if err != nil {
			return nil, err
		}
		schemas[p.Name] = s
	}
	return schemas, nil
}
