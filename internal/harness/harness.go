package harness

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fixturelab/snapcheck/internal/fixture"
	"github.com/fixturelab/snapcheck/internal/replay"
)

// Status is a fixture verdict category.
type Status string

// Verdict statuses. Skips are counted separately from pass/fail: an
// unparseable or irrelevant fixture is not a conformance failure.
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Skip reasons produced by the harness itself (the parser contributes its
// own, see the fixture package).
const (
	SkipFiltered    = "name does not match filter"
	SkipNoToolCalls = "no tool calls to validate"
)

// Verdict is the outcome for one fixture.
type Verdict struct {
	Name       string        `json:"name"`
	SourcePath string        `json:"source_path,omitempty"`
	Status     Status        `json:"status"`
	SkipReason string        `json:"skip_reason,omitempty"`
	Issues     []string      `json:"issues,omitempty"`
	Duration   time.Duration `json:"duration_ns,omitempty"`
}

// Summary is the outcome of one harness run over a fixture set.
type Summary struct {
	RunID    string    `json:"run_id"`
	Verdicts []Verdict `json:"verdicts"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Skipped  int       `json:"skipped"`
}

// Ok reports whether every executed fixture passed. Skips do not count
// against the run; the zero-discoverable-fixtures case is judged by the
// caller, which knows whether discovery found anything at all.
func (s *Summary) Ok() bool {
	return s.Failed == 0
}

// Executed returns how many fixtures actually ran (passed or failed).
func (s *Summary) Executed() int {
	return s.Passed + s.Failed
}

// Harness drives fixtures through parse, replay, and validate.
// Fixtures are strictly sequential; no state is shared between them.
type Harness struct {
	driver *replay.Driver
	filter string
	logger *slog.Logger
}

// New creates a harness around a replay driver.
// A non-empty filter restricts execution to fixtures whose name contains it.
func New(driver *replay.Driver, filter string, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Harness{driver: driver, filter: filter, logger: logger}
}

// RunAll processes fixture files one at a time and accumulates a summary.
// A failure in one fixture never affects any other. The observe callback,
// when non-nil, sees each verdict as it completes so callers can stream
// progress; it must not block.
func (h *Harness) RunAll(ctx context.Context, paths []string, observe func(Verdict)) *Summary {
	summary := &Summary{
		RunID:    uuid.Must(uuid.NewV7()).String(),
		Verdicts: make([]Verdict, 0, len(paths)),
	}

	for _, path := range paths {
		verdict := h.RunFile(ctx, path)
		if observe != nil {
			observe(verdict)
		}
		summary.Verdicts = append(summary.Verdicts, verdict)

		switch verdict.Status {
		case StatusPassed:
			summary.Passed++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}
	}

	return summary
}

// RunFile runs one fixture file through the full pipeline.
func (h *Harness) RunFile(ctx context.Context, path string) Verdict {
	result, err := fixture.Load(path)
	if err != nil {
		// The file was discovered but cannot be read; treat like an
		// unparseable fixture rather than aborting the run.
		h.logger.Warn("fixture unreadable", "path", path, "error", err)
		return Verdict{Name: path, Status: StatusSkipped, SkipReason: err.Error()}
	}

	if result.Skipped() {
		h.logger.Debug("fixture skipped", "path", path, "reason", result.Skip)
		return Verdict{Name: path, SourcePath: path, Status: StatusSkipped, SkipReason: result.Skip}
	}

	f := result.Fixture
	verdict := Verdict{Name: f.Name, SourcePath: f.SourcePath}

	if h.filter != "" && !strings.Contains(f.Name, h.filter) {
		verdict.Status = StatusSkipped
		verdict.SkipReason = SkipFiltered
		return verdict
	}

	if !f.HasToolCalls() {
		verdict.Status = StatusSkipped
		verdict.SkipReason = SkipNoToolCalls
		return verdict
	}

	h.logger.Info("running fixture", "name", f.Name, "turns", len(f.Turns), "tools", len(f.Tools))

	start := time.Now()
	trace := h.driver.Replay(ctx, f)
	verdict.Duration = time.Since(start)

	ok, issues := Validate(f, trace)
	if ok {
		verdict.Status = StatusPassed
		h.logger.Info("fixture passed", "name", f.Name, "duration", verdict.Duration)
	} else {
		verdict.Status = StatusFailed
		verdict.Issues = issues
		h.logger.Warn("fixture failed", "name", f.Name, "issues", len(issues))
	}

	return verdict
}
