package chrome

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/config"
)

// Manager manages a Chrome browser instance and the tabs opened in it.
type Manager struct {
	appConfig     *config.AppConfig
	allocator     context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	execPath      string
}

// NewManager creates a new Chromedp Manager instance.
// It initializes the allocator context but does not launch the browser yet.
func NewManager(appConfig *config.AppConfig) (*Manager, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("appConfig cannot be nil")
	}

	execPath := appConfig.Browser.ExecPath
	if execPath == "" {
		log.Warn("Chrome path not specified in config, PAGECHECK_CHROME_BIN or CHROME_BIN, will attempt auto-detection.")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions(appConfig)...)

	return &Manager{
		appConfig:   appConfig,
		allocator:   allocCtx,
		allocCancel: allocCancel,
		execPath:    execPath,
	}, nil
}

func allocatorOptions(appConfig *config.AppConfig) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.WindowSize(appConfig.Browser.WindowWidth, appConfig.Browser.WindowHeight),
	}

	if appConfig.Browser.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(appConfig.Browser.ExecPath))
	}

	if appConfig.Headless {
		opts = append(opts, chromedp.Flag("headless", true))
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}

	if appConfig.Browser.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(appConfig.Browser.UserDataDir))
	}

	if appConfig.Browser.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(appConfig.Browser.UserAgent))
	}

	for _, arg := range appConfig.Browser.Args {
		if name, value, ok := parseFlag(arg); ok {
			opts = append(opts, chromedp.Flag(name, value))
		}
	}
	return opts
}

// parseFlag turns "--name=value" into ("name", "value") and "--name" into
// ("name", true).
func parseFlag(arg string) (string, any, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", nil, false
	}
	parts := strings.SplitN(arg, "=", 2)
	name := strings.TrimPrefix(parts[0], "--")
	if name == "" {
		return "", nil, false
	}
	if len(parts) == 2 {
		return name, parts[1], true
	}
	return name, true, true
}

// LaunchBrowserAndContext launches the browser and creates a new browser context.
func (m *Manager) LaunchBrowserAndContext() error {
	if m.allocator == nil {
		return fmt.Errorf("manager not properly initialized, allocator is nil")
	}

	browserCtx, browserCancel := chromedp.NewContext(
		m.allocator,
		chromedp.WithLogf(log.Debugf),
		chromedp.WithErrorf(log.Errorf),
	)
	m.browserCtx = browserCtx
	m.browserCancel = browserCancel

	if err := chromedp.Run(m.browserCtx); err != nil {
		_ = m.Close()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	log.Infof("Chromedp browser launched successfully with path: %s", m.execPath)
	return nil
}

// NewPage opens a new tab. The configured storage state, if any, is applied
// before the first navigation.
func (m *Manager) NewPage() (*Page, error) {
	if m.browserCtx == nil {
		return nil, fmt.Errorf("browser context not initialized. Call LaunchBrowserAndContext first")
	}

	p, err := NewPage(m.browserCtx, m.appConfig.Timeout())
	if err != nil {
		return nil, err
	}
	if m.appConfig.Browser.StorageState != "" {
		if err = p.LoadStorageState(m.appConfig.Browser.StorageState); err != nil {
			p.Close()
			return nil, err
		}
	}
	return p, nil
}

func (m *Manager) Close() error {
	if m.browserCancel != nil {
		log.Debug("Cancelling Chromedp browser context...")
		m.browserCancel()
		m.browserCancel = nil
		m.browserCtx = nil
	}

	if m.allocCancel != nil {
		log.Debug("Cancelling Chromedp allocator context...")
		m.allocCancel()
		m.allocCancel = nil
		m.allocator = nil
	}

	log.Info("Chromedp Manager closed.")
	return nil
}
