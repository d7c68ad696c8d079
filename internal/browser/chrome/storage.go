package chrome

import (
	"context"
	"fmt"
	"os"

	"github.com/chromedp/cdproto/domstorage"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// StorageState is the cookie and local storage snapshot applied to a tab
// before navigation. The file layout is the one playwright writes, so both
// engines can share a file.
type StorageState struct {
	Cookies []*network.CookieParam
	Origins map[string]map[string]string
}

// ParseStorageState decodes a storage state document.
func ParseStorageState(data []byte) (*StorageState, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("storage state is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	state := &StorageState{Origins: make(map[string]map[string]string)}
	doc.Get("cookies").ForEach(func(_, c gjson.Result) bool {
		state.Cookies = append(state.Cookies, &network.CookieParam{
			Name:     c.Get("name").String(),
			Value:    c.Get("value").String(),
			Domain:   c.Get("domain").String(),
			Path:     c.Get("path").String(),
			Secure:   c.Get("secure").Bool(),
			HTTPOnly: c.Get("httpOnly").Bool(),
		})
		return true
	})
	doc.Get("origins").ForEach(func(_, o gjson.Result) bool {
		items := make(map[string]string)
		o.Get("localStorage").ForEach(func(_, item gjson.Result) bool {
			items[item.Get("name").String()] = item.Get("value").String()
			return true
		})
		state.Origins[o.Get("origin").String()] = items
		return true
	})
	return state, nil
}

// LoadStorageState reads path and applies its cookies and local storage.
func (p *Page) LoadStorageState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read storage state: %w", err)
	}
	state, err := ParseStorageState(data)
	if err != nil {
		return fmt.Errorf("storage state %s: %w", path, err)
	}
	if err = p.applyStorageState(state); err != nil {
		return fmt.Errorf("apply storage state %s: %w", path, err)
	}
	log.Debugf("Loaded %d cookies and %d origins from %s", len(state.Cookies), len(state.Origins), path)
	return nil
}

func (p *Page) applyStorageState(state *StorageState) error {
	return p.run(chromedp.ActionFunc(func(ctx context.Context) error {
		if len(state.Cookies) > 0 {
			if err := network.SetCookies(state.Cookies).Do(ctx); err != nil {
				return err
			}
		}
		for origin, items := range state.Origins {
			storageID := &domstorage.StorageID{
				SecurityOrigin: origin,
				IsLocalStorage: true,
			}
			for key, value := range items {
				if err := domstorage.SetDOMStorageItem(storageID, key, value).Do(ctx); err != nil {
					return err
				}
			}
		}
		return nil
	}))
}
