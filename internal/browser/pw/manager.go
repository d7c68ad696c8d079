// Package pw exposes playwright pages as browser.Session values.
package pw

import (
	"errors"
	"os"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/config"
)

// Manager holds the Playwright instance, browser instance, and browser context.
type Manager struct {
	pw      *playwright.Playwright
	Browser playwright.Browser
	Context playwright.BrowserContext
	Cfg     *config.AppConfig
}

// Install downloads the Chromium build playwright drives.
func Install(verbose bool) error {
	return playwright.Install(&playwright.RunOptions{
		Verbose:  verbose,
		Browsers: []string{"chromium"},
	})
}

// NewManager starts the playwright driver.
func NewManager(cfg *config.AppConfig) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	return &Manager{
		pw:  pw,
		Cfg: cfg,
	}, nil
}

// LaunchBrowserAndContext launches Chromium and creates a context, loading the
// configured storage state when the file exists.
func (m *Manager) LaunchBrowserAndContext() error {
	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.Cfg.Headless),
		Args:     m.Cfg.Browser.Args,
	}
	if m.Cfg.Browser.ExecPath != "" {
		launchOptions.ExecutablePath = playwright.String(m.Cfg.Browser.ExecPath)
		log.Debugf("Attempting to launch Chromium from: %s", m.Cfg.Browser.ExecPath)
	} else {
		log.Debug("Browser path not specified, launching default Playwright Chromium.")
	}

	browser, err := m.pw.Chromium.Launch(launchOptions)
	if err != nil {
		return err
	}
	m.Browser = browser
	log.Debug("Browser launched successfully.")

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.Cfg.Browser.WindowWidth,
			Height: m.Cfg.Browser.WindowHeight,
		},
	}
	if m.Cfg.Browser.UserAgent != "" {
		contextOptions.UserAgent = playwright.String(m.Cfg.Browser.UserAgent)
	}
	if state := m.Cfg.Browser.StorageState; state != "" {
		if _, err = os.Stat(state); err == nil {
			log.Infof("Loading storage state from: %s", state)
			contextOptions.StorageStatePath = playwright.String(state)
		} else if os.IsNotExist(err) {
			log.Infof("Storage state file not found at %s. Proceeding without loading state.", state)
		} else {
			log.Infof("Error checking storage state file %s: %v. Proceeding without loading state.", state, err)
		}
	}

	context, err := m.Browser.NewContext(contextOptions)
	if err != nil {
		if bErr := m.Browser.Close(); bErr != nil {
			log.Debugf("Error closing browser after context creation failed: %v", bErr)
		}
		return err
	}
	m.Context = context
	log.Debugf("Browser context created successfully.")
	return nil
}

// NewPage opens a tab in the existing context.
func (m *Manager) NewPage() (*Page, error) {
	if m.Context == nil {
		return nil, errors.New("browser context is not initialized. Call LaunchBrowserAndContext first")
	}
	page, err := m.Context.NewPage()
	if err != nil {
		return nil, err
	}
	return NewPage(page, m.Cfg.Timeout()), nil
}

// Close stops the Playwright instance and closes the browser and context.
func (m *Manager) Close() error {
	var firstErr error
	if m.Browser != nil {
		if err := m.Browser.Close(); err != nil {
			log.Debugf("Error closing browser: %v", err)
			firstErr = err
		}
	}
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			log.Debugf("Error stopping playwright: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
