// Package cli implements the pagecheck command line.
package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mykulyak/pagecheck/internal/config"
)

// NewRootCmd creates a new root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagecheck",
		Short: "Page object checks for web pages",
		Long: `pagecheck loads pages described by page-object schemas and runs
assertion suites against them in Chrome, Playwright or as static HTML.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			InitLogging(cmd.ErrOrStderr(), debug)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Path to the configuration file")

	cmd.AddCommand(
		NewRunCmd(),
		NewInspectCmd(),
		NewPagesCmd(),
		NewInstallCmd(),
	)

	return cmd
}

// loadConfig reads the file named by --config and applies its debug setting.
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}
