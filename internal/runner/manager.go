package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/assertion"
	"github.com/mykulyak/pagecheck/internal/browser"
	"github.com/mykulyak/pagecheck/internal/pageobject"
	"github.com/mykulyak/pagecheck/internal/report"
)

// RunnerManager loads suites and runs them one after another on a single
// browser session.
type RunnerManager struct {
	session  browser.Session
	schemas  map[string]*pageobject.Schema
	reporter assertion.Reporter
	suites   []Suite
}

// NewRunnerManager runs suites on session. Page names in suites refer to
// schemas. Every assertion outcome goes to reporter as well as to the run
// report; a nil reporter logs through logrus.
func NewRunnerManager(session browser.Session, schemas map[string]*pageobject.Schema, reporter assertion.Reporter) *RunnerManager {
	if reporter == nil {
		reporter = assertion.NewLogReporter(nil)
	}
	return &RunnerManager{
		session:  session,
		schemas:  schemas,
		reporter: reporter,
	}
}

// Suites returns the loaded suites in load order.
func (rm *RunnerManager) Suites() []Suite {
	return append([]Suite(nil), rm.suites...)
}

// LoadConfiguration loads a single suite file. A suite without a name is named
// after its file.
func (rm *RunnerManager) LoadConfiguration(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var suite Suite
	if err = yaml.UnmarshalWithOptions(data, &suite, yaml.Strict()); err != nil {
		return fmt.Errorf("failed to parse suite %s: %w", path, err)
	}
	if suite.Name == "" {
		fileName := filepath.Base(path)
		suite.Name = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	}
	suite.file = path

	for _, s := range rm.suites {
		if s.Name == suite.Name {
			return fmt.Errorf("suite %q in %s is already defined in %s", suite.Name, path, s.file)
		}
	}
	if suite.Page != "" {
		if _, ok := rm.schemas[suite.Page]; !ok {
			return fmt.Errorf("suite %q in %s uses unknown page %q", suite.Name, path, suite.Page)
		}
	}

	rm.suites = append(rm.suites, suite)
	return nil
}

// LoadConfigurations loads every yaml and yml file in dir, in file name order.
func (rm *RunnerManager) LoadConfigurations(dir string) error {
	yamlFiles, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to scan yaml files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to scan yml files: %w", err)
	}

	allFiles := append(yamlFiles, ymlFiles...)
	slices.Sort(allFiles)

	for _, filePath := range allFiles {
		log.Debugf("Loading suite file: %s", filePath)
		if err = rm.LoadConfiguration(filePath); err != nil {
			return err
		}
	}

	log.Debugf("Total loaded %d suite files", len(allFiles))
	return nil
}

// Run runs the named suites, or all loaded suites when no name is given, and
// adds their results to run. A suite that does not pass does not stop the
// others; the returned error joins the errors of every such suite.
func (rm *RunnerManager) Run(ctx context.Context, run *report.Run, names ...string) error {
	selected, err := rm.selectSuites(names)
	if err != nil {
		return err
	}

	var errs []error
	for _, s := range selected {
		if err = ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		result, errSuite := rm.RunSuite(ctx, s)
		run.Add(result)
		if errSuite != nil {
			errs = append(errs, fmt.Errorf("suite %s: %w", s.Name, errSuite))
		}
	}
	return errors.Join(errs...)
}

func (rm *RunnerManager) selectSuites(names []string) ([]Suite, error) {
	if len(names) == 0 {
		return rm.Suites(), nil
	}
	selected := make([]Suite, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(rm.suites, func(s Suite) bool { return s.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown suite %q", name)
		}
		selected = append(selected, rm.suites[i])
	}
	return selected, nil
}

// RunSuite navigates to the suite URL, loads its page and runs the steps in
// order. The first step that fails ends the suite and the remaining steps are
// reported as skipped.
func (rm *RunnerManager) RunSuite(ctx context.Context, s Suite) (report.Suite, error) {
	log.Infof("Running suite %s (%d steps)", s.Name, len(s.Steps))
	recorder := &assertion.Recorder{}
	result := report.Suite{
		Name:    s.Name,
		File:    s.file,
		URL:     expandEnv(s.URL),
		Page:    s.Page,
		Started: time.Now(),
	}

	err := rm.runSuite(ctx, s, recorder, &result)

	result.Duration = time.Since(result.Started)
	result.Outcomes = recorder.Outcomes()
	switch {
	case err == nil:
		result.Status = report.StatusPassed
		log.Infof("Suite %s passed", s.Name)
	case assertion.IsAssertionError(err):
		result.Status = report.StatusFailed
		result.Error = err.Error()
		log.Errorf("Suite %s failed: %v", s.Name, err)
	default:
		result.Status = report.StatusError
		result.Error = err.Error()
		log.Errorf("Suite %s aborted: %v", s.Name, err)
	}
	return result, err
}

func (rm *RunnerManager) runSuite(ctx context.Context, s Suite, recorder *assertion.Recorder, result *report.Suite) error {
	if result.URL != "" {
		if err := rm.session.Navigate(result.URL); err != nil {
			skipSteps(result, s.Steps, 0)
			return err
		}
	}

	var page *pageobject.Page
	if s.Page != "" {
		schema, ok := rm.schemas[s.Page]
		if !ok {
			skipSteps(result, s.Steps, 0)
			return fmt.Errorf("unknown page %q", s.Page)
		}
		var err error
		if page, err = pageobject.Load(schema, rm.session); err != nil {
			skipSteps(result, s.Steps, 0)
			return fmt.Errorf("load page %s: %w", s.Page, err)
		}
	}

	ex := &executor{
		session:    rm.session,
		page:       page,
		assertions: assertion.New(assertion.Multi{rm.reporter, recorder}),
	}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			skipSteps(result, s.Steps, i)
			return err
		}

		log.Debugf("Step %d: %s %v", i, step.Action, step.Params)
		st := report.Step{Index: i, Action: step.Action, Description: step.Description, Status: report.StatusPassed}
		if err := ex.execute(step); err != nil {
			st.Status = report.StatusError
			if assertion.IsAssertionError(err) {
				st.Status = report.StatusFailed
			}
			st.Error = err.Error()
			result.Steps = append(result.Steps, st)
			skipSteps(result, s.Steps, i+1)
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
		result.Steps = append(result.Steps, st)
	}
	return nil
}

func skipSteps(result *report.Suite, steps []Step, from int) {
	for i := from; i < len(steps); i++ {
		result.Steps = append(result.Steps, report.Step{
			Index:       i,
			Action:      steps[i].Action,
			Description: steps[i].Description,
			Status:      report.StatusSkipped,
		})
	}
}
