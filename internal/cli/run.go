package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mykulyak/pagecheck/internal/report"
	"github.com/mykulyak/pagecheck/internal/runner"
)

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run assertion suites",
		Long: `Run the suites found in the configured suite directory, or only the
suites named with --suite, and write a JSON report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			suites, err := cmd.Flags().GetStringSlice("suite")
			if err != nil {
				return err
			}
			reportFile, err := cmd.Flags().GetString("report")
			if err != nil {
				return err
			}
			if reportFile == "" {
				reportFile = cfg.ReportFile
			}

			schemas, err := cfg.Schemas()
			if err != nil {
				return err
			}

			session, closeSession, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeSession()

			rm := runner.NewRunnerManager(session, schemas, nil)
			if err = rm.LoadConfigurations(cfg.SuiteDir); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Infof("Starting pagecheck run with engine %s", cfg.Engine)
			run := report.New(cfg.Engine)
			errRun := rm.Run(ctx, run, suites...)
			run.Finish()

			if err = run.WriteFile(reportFile); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			passed, failed := run.Counts()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d suites run, %d assertions passed, %d failed, report %s\n",
				len(run.Suites), passed, failed, reportFile)
			return errRun
		},
	}

	cmd.Flags().StringSlice("suite", nil, "Run only the named suites (repeatable)")
	cmd.Flags().String("report", "", "Report file, overrides report-file from the configuration")

	return cmd
}
