package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mykulyak/pagecheck/internal/pageobject"
)

func NewPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the page schemas declared in the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range cfg.Pages {
				schema, errSchema := p.Schema()
				if errSchema != nil {
					return errSchema
				}
				_, _ = fmt.Fprintln(out, schema.Name())
				printFields(out, schema, 1)
			}
			return nil
		},
	}
}

func printFields(out io.Writer, schema *pageobject.Schema, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range schema.Fields() {
		if f.Kind == pageobject.KindComponent {
			_, _ = fmt.Fprintf(out, "%s%s component %s (%s)\n", indent, f.Name, f.Locator, f.Schema.Name())
			printFields(out, f.Schema, depth+1)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s element %s\n", indent, f.Name, f.Locator)
	}
}
