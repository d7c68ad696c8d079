package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// DefaultPath is where LoadConfig looks when no path is given.
const DefaultPath = "runner/main.yaml"

const (
	EngineChromedp   = "chromedp"
	EnginePlaywright = "playwright"
	// EngineStatic loads pages as plain HTML without a browser.
	EngineStatic     = "static"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultSuiteDir   = "runner/suites"
	defaultReportFile = "pagecheck-report.json"
	defaultWidth      = 1920
	defaultHeight     = 1080
)

// AppConfig holds the application configuration.
type AppConfig struct {
	Version    string           `yaml:"version"`
	Debug      bool             `yaml:"debug"`
	Headless   bool             `yaml:"headless"`
	Engine     string           `yaml:"engine"`
	TimeoutMs  int              `yaml:"timeout-ms"`
	Browser    AppConfigBrowser `yaml:"browser"`
	Pages      []PageConfig     `yaml:"pages"`
	SuiteDir   string           `yaml:"suite-dir"`
	ReportFile string           `yaml:"report-file"`
}

type AppConfigBrowser struct {
	ExecPath     string   `yaml:"exec-path"`
	Args         []string `yaml:"args"`
	UserDataDir  string   `yaml:"user-data-dir,omitempty"`
	UserAgent    string   `yaml:"user-agent,omitempty"`
	StorageState string   `yaml:"storage-state,omitempty"`
	WindowWidth  int      `yaml:"window-width"`
	WindowHeight int      `yaml:"window-height"`
}

// LoadConfig reads the YAML configuration at path, or DefaultPath when path
// is empty. A .env file in the working directory is loaded first if present.
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Debugf("Failed to load .env file: %v", err)
	}

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Parse decodes, defaults and validates a configuration document.
func Parse(data []byte) (*AppConfig, error) {
	var config AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Engine == "" {
		c.Engine = EngineChromedp
	}
	if c.SuiteDir == "" {
		c.SuiteDir = defaultSuiteDir
	}
	if c.ReportFile == "" {
		c.ReportFile = defaultReportFile
	}
	if c.Browser.WindowWidth <= 0 {
		c.Browser.WindowWidth = defaultWidth
	}
	if c.Browser.WindowHeight <= 0 {
		c.Browser.WindowHeight = defaultHeight
	}
	if c.Browser.ExecPath == "" {
		c.Browser.ExecPath = os.Getenv("PAGECHECK_CHROME_BIN")
	}
	if c.Browser.ExecPath == "" {
		c.Browser.ExecPath = os.Getenv("CHROME_BIN")
	}
}

// Validate checks the engine, the timeout and every page declaration.
func (c *AppConfig) Validate() error {
	switch c.Engine {
	case EngineChromedp, EnginePlaywright, EngineStatic:
	default:
		return fmt.Errorf("unknown engine %q, expected %q, %q or %q", c.Engine, EngineChromedp, EnginePlaywright, EngineStatic)
	}
	if c.TimeoutMs < 0 {
		return fmt.Errorf("timeout-ms must not be negative, got %d", c.TimeoutMs)
	}

	seen := make(map[string]bool, len(c.Pages))
	for _, p := range c.Pages {
		if p.Name == "" {
			return errors.New("page without a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate page %q", p.Name)
		}
		seen[p.Name] = true
		if _, err := p.Schema(); err != nil {
			return err
		}
	}
	return nil
}

// Timeout is how long a single browser call may wait, including element
// lookups.
func (c *AppConfig) Timeout() time.Duration {
	if c.TimeoutMs == 0 {
		return defaultTimeout
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Page returns the page declaration called name.
func (c *AppConfig) Page(name string) (PageConfig, bool) {
	for _, p := range c.Pages {
		if p.Name == name {
			return p, true
		}
	}
	return PageConfig{}, false
}
