package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mykulyak/pagecheck/internal/browser/pw"
)

func NewInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the Playwright driver and Chromium",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if err := pw.Install(debug); err != nil {
				return err
			}
			log.Info("Playwright driver and Chromium installed")
			return nil
		},
	}
}
