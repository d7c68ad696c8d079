package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mykulyak/pagecheck/internal/browser"
	"github.com/mykulyak/pagecheck/internal/browser/htmldoc"
	"github.com/mykulyak/pagecheck/internal/pageobject"
)

func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Resolve a page schema against an HTML document",
		Long: `Load a page object from a saved HTML file or a URL without a browser and
print every field it resolves, in the order WaitToLoad visits them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pageName, _ := cmd.Flags().GetString("page")
			htmlFile, _ := cmd.Flags().GetString("html")
			url, _ := cmd.Flags().GetString("url")

			pageCfg, ok := cfg.Page(pageName)
			if !ok {
				return fmt.Errorf("unknown page %q", pageName)
			}
			schema, err := pageCfg.Schema()
			if err != nil {
				return err
			}

			doc, err := openDocument(htmlFile, url, cfg.Timeout())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n", schema.Name())
			page := pageobject.New(schema, doc)
			return page.Walk(func(path string, field pageobject.Field, el browser.Element) error {
				tag, errTag := el.TagName()
				if errTag != nil {
					return errTag
				}
				indent := strings.Repeat("  ", strings.Count(path, ".")+1)
				_, errWrite := fmt.Fprintf(out, "%s%s %s <%s> %s\n", indent, field.Name, field.Kind, tag, field.Locator)
				return errWrite
			})
		},
	}

	cmd.Flags().String("page", "", "Page declared in the configuration")
	cmd.Flags().String("html", "", "Saved HTML file to inspect")
	cmd.Flags().String("url", "", "URL to fetch, or the base URL of --html")
	_ = cmd.MarkFlagRequired("page")

	return cmd
}

func openDocument(htmlFile, url string, timeout time.Duration) (*htmldoc.Document, error) {
	if htmlFile == "" {
		if url == "" {
			return nil, errors.New("one of --html or --url is required")
		}
		doc := htmldoc.New(&http.Client{Timeout: timeout})
		if err := doc.Navigate(url); err != nil {
			return nil, err
		}
		return doc, nil
	}

	f, err := os.Open(htmlFile)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	if url == "" {
		abs, errAbs := filepath.Abs(htmlFile)
		if errAbs != nil {
			return nil, errAbs
		}
		url = "file://" + filepath.ToSlash(abs)
	}
	return htmldoc.Parse(f, url)
}
