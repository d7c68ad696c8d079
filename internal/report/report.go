// Package report collects suite results and renders them as a JSON document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/sjson"

	"github.com/mykulyak/pagecheck/internal/assertion"
)

// Status of a step or suite.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

type Step struct {
	Index       int
	Action      string
	Description string
	Status      Status
	Error       string
}

type Suite struct {
	Name     string
	File     string
	URL      string
	Page     string
	Status   Status
	Error    string
	Started  time.Time
	Duration time.Duration
	Steps    []Step
	Outcomes []assertion.Outcome
}

// Run is the result of one pagecheck invocation.
type Run struct {
	ID       uuid.UUID
	Engine   string
	Started  time.Time
	Finished time.Time
	Suites   []Suite
}

// New starts a run with a fresh id.
func New(engine string) *Run {
	return &Run{
		ID:      uuid.New(),
		Engine:  engine,
		Started: time.Now(),
	}
}

func (r *Run) Add(s Suite) {
	r.Suites = append(r.Suites, s)
}

// Finish stamps the end time.
func (r *Run) Finish() {
	r.Finished = time.Now()
}

// Passed reports whether every suite passed.
func (r *Run) Passed() bool {
	for _, s := range r.Suites {
		if s.Status != StatusPassed {
			return false
		}
	}
	return true
}

// Counts returns the number of passed and failed assertions over all suites.
func (r *Run) Counts() (passed, failed int) {
	for _, s := range r.Suites {
		for _, o := range s.Outcomes {
			if o.Passed {
				passed++
			} else {
				failed++
			}
		}
	}
	return passed, failed
}

type builder struct {
	doc []byte
	err error
}

func (b *builder) set(path string, value any) {
	if b.err != nil {
		return
	}
	b.doc, b.err = sjson.SetBytes(b.doc, path, value)
}

// JSON renders the run.
func (r *Run) JSON() ([]byte, error) {
	b := &builder{doc: []byte(`{}`)}
	b.set("id", r.ID.String())
	b.set("engine", r.Engine)
	b.set("started", r.Started.Format(time.RFC3339))
	if !r.Finished.IsZero() {
		b.set("finished", r.Finished.Format(time.RFC3339))
	}
	b.set("passed", r.Passed())

	passed, failed := r.Counts()
	b.set("summary.suites", len(r.Suites))
	b.set("summary.assertions.passed", passed)
	b.set("summary.assertions.failed", failed)

	b.set("suites", []any{})
	for i, s := range r.Suites {
		prefix := fmt.Sprintf("suites.%d", i)
		b.set(prefix+".name", s.Name)
		b.set(prefix+".file", s.File)
		b.set(prefix+".url", s.URL)
		b.set(prefix+".page", s.Page)
		b.set(prefix+".status", string(s.Status))
		if s.Error != "" {
			b.set(prefix+".error", s.Error)
		}
		b.set(prefix+".duration_ms", s.Duration.Milliseconds())

		b.set(prefix+".steps", []any{})
		for j, st := range s.Steps {
			stepPrefix := fmt.Sprintf("%s.steps.%d", prefix, j)
			b.set(stepPrefix+".index", st.Index)
			b.set(stepPrefix+".action", st.Action)
			if st.Description != "" {
				b.set(stepPrefix+".description", st.Description)
			}
			b.set(stepPrefix+".status", string(st.Status))
			if st.Error != "" {
				b.set(stepPrefix+".error", st.Error)
			}
		}

		b.set(prefix+".assertions", []any{})
		for j, o := range s.Outcomes {
			outcomePrefix := fmt.Sprintf("%s.assertions.%d", prefix, j)
			b.set(outcomePrefix+".assertion", o.Assertion)
			b.set(outcomePrefix+".passed", o.Passed)
			b.set(outcomePrefix+".params", map[string]any(o.Params))
		}
	}
	if b.err != nil {
		return nil, fmt.Errorf("render report: %w", b.err)
	}
	return b.doc, nil
}

// WriteFile renders the run to path, creating parent directories.
func (r *Run) WriteFile(path string) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Infof("Report %s written to %s", r.ID, path)
	return nil
}
