package cli

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/browser"
	"github.com/mykulyak/pagecheck/internal/browser/chrome"
	"github.com/mykulyak/pagecheck/internal/browser/htmldoc"
	"github.com/mykulyak/pagecheck/internal/browser/pw"
	"github.com/mykulyak/pagecheck/internal/config"
)

// openSession starts the configured engine. The returned func releases the
// page and the browser.
func openSession(cfg *config.AppConfig) (browser.Session, func(), error) {
	switch cfg.Engine {
	case config.EngineStatic:
		return htmldoc.New(&http.Client{Timeout: cfg.Timeout()}), func() {}, nil

	case config.EnginePlaywright:
		manager, err := pw.NewManager(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("could not start playwright: %w", err)
		}
		if err = manager.LaunchBrowserAndContext(); err != nil {
			_ = manager.Close()
			return nil, nil, fmt.Errorf("could not launch browser and context: %w", err)
		}
		page, err := manager.NewPage()
		if err != nil {
			_ = manager.Close()
			return nil, nil, fmt.Errorf("could not create page: %w", err)
		}
		return page, func() {
			if errClose := page.Close(); errClose != nil {
				log.Debugf("Error closing page: %v", errClose)
			}
			if errClose := manager.Close(); errClose != nil {
				log.Debugf("Error closing browser manager: %v", errClose)
			}
		}, nil

	default:
		manager, err := chrome.NewManager(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err = manager.LaunchBrowserAndContext(); err != nil {
			return nil, nil, err
		}
		page, err := manager.NewPage()
		if err != nil {
			_ = manager.Close()
			return nil, nil, fmt.Errorf("could not create page: %w", err)
		}
		return page, func() {
			page.Close()
			_ = manager.Close()
		}, nil
	}
}
