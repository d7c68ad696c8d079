package assertion

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Params are the values an assertion compared.
type Params map[string]any

// Reporter receives the outcome of every judged assertion.
type Reporter interface {
	Success(assertion string, params Params)
	Failure(assertion string, params Params)
}

const (
	// DefaultSuccessLevel and DefaultFailureLevel are used by LogReporter when
	// no levels are given. Both differ from the warning level so assertion
	// traffic can be filtered apart from ordinary warnings.
	DefaultSuccessLevel = log.InfoLevel
	DefaultFailureLevel = log.ErrorLevel
)

// LogReporter writes one logrus entry per outcome with the fields
// "assertion" and "outcome".
type LogReporter struct {
	Logger *log.Logger
	// SuccessLevel and FailureLevel must not be log.WarnLevel. A warning
	// level is replaced by the matching default when an outcome is logged.
	SuccessLevel log.Level
	FailureLevel log.Level
}

// NewLogReporter reports through logger at the default levels. A nil logger
// means the logrus standard logger.
func NewLogReporter(logger *log.Logger) *LogReporter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogReporter{
		Logger:       logger,
		SuccessLevel: DefaultSuccessLevel,
		FailureLevel: DefaultFailureLevel,
	}
}

func (r *LogReporter) Success(assertion string, params Params) {
	r.Logger.WithFields(log.Fields{"assertion": assertion, "outcome": "succeeded"}).
		Logf(outcomeLevel(r.SuccessLevel, DefaultSuccessLevel), "Assertion %s succeeded %v", assertion, map[string]any(params))
}

func (r *LogReporter) Failure(assertion string, params Params) {
	r.Logger.WithFields(log.Fields{"assertion": assertion, "outcome": "failed"}).
		Logf(outcomeLevel(r.FailureLevel, DefaultFailureLevel), "Assertion %s failed %v", assertion, map[string]any(params))
}

func outcomeLevel(level, fallback log.Level) log.Level {
	if level == log.WarnLevel {
		return fallback
	}
	return level
}

// Nop discards every outcome.
type Nop struct{}

func (Nop) Success(string, Params) {}
func (Nop) Failure(string, Params) {}

// Outcome is one recorded assertion result.
type Outcome struct {
	Assertion string
	Passed    bool
	Params    Params
}

// Recorder keeps every outcome in memory.
type Recorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *Recorder) Success(assertion string, params Params) {
	r.add(Outcome{Assertion: assertion, Passed: true, Params: params})
}

func (r *Recorder) Failure(assertion string, params Params) {
	r.add(Outcome{Assertion: assertion, Passed: false, Params: params})
}

func (r *Recorder) add(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// Outcomes returns a copy of the recorded outcomes in order.
func (r *Recorder) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outcome(nil), r.outcomes...)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = nil
}

// Multi fans every outcome out to all reporters in order.
type Multi []Reporter

func (m Multi) Success(assertion string, params Params) {
	for _, r := range m {
		r.Success(assertion, params)
	}
}

func (m Multi) Failure(assertion string, params Params) {
	for _, r := range m {
		r.Failure(assertion, params)
	}
}
