package runner

// Suite is one YAML file of checks run against a single page.
type Suite struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Page  string `yaml:"page"`
	Steps []Step `yaml:"steps"`

	file string
}

// File is the path the suite was loaded from.
func (s Suite) File() string {
	return s.file
}

// Step calls one assertion, or one of the built-in actions, with params
// converted to the parameter types of the target.
type Step struct {
	Action      string   `yaml:"action"`
	Description string   `yaml:"description"`
	Params      []string `yaml:"params"`
}
