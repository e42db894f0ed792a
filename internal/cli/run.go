package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fixturelab/snapcheck/internal/fixture"
	"github.com/fixturelab/snapcheck/internal/harness"
	"github.com/fixturelab/snapcheck/internal/replay"
	"github.com/fixturelab/snapcheck/internal/store"
)

// DefaultCategories are the fixture subdirectories consulted when the flag
// is not set.
const DefaultCategories = "tools,session"

// exeCandidates are probed, in order, relative to the current directory
// when --exe is not given.
var exeCandidates = []string{
	"snapshot-replay",
	filepath.Join("build", "snapshot-replay"),
	filepath.Join("bin", "snapshot-replay"),
}

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Exe        string
	Filter     string
	Categories string
	Timeout    int
	Record     string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <fixtures-dir>",
		Short: "Replay fixtures against the runtime under test",
		Long: `Run conformance fixtures against the runtime executable.

Each fixture is parsed, converted to a replay configuration, and handed to
the executable; the reported tool calls are validated against the calls the
transcript recorded.

Exit codes:
  0 - All executed fixtures passed
  1 - Failures, no fixtures found, or executable missing
  2 - Command error (invalid paths, flags)

Examples:
  snapcheck run ./fixtures --exe ./build/snapshot-replay
  snapcheck run ./fixtures --filter read --categories tools
  snapcheck run ./fixtures --record history.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtures(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Exe, "exe", "", "path to the runtime executable (default: probe common build locations)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run fixtures whose name contains this substring")
	cmd.Flags().StringVar(&opts.Categories, "categories", DefaultCategories, "comma-separated fixture category subdirectories")
	cmd.Flags().IntVar(&opts.Timeout, "timeout", 120, "per-fixture timeout in seconds")
	cmd.Flags().StringVar(&opts.Record, "record", "", "record run history to this SQLite database")

	return cmd
}

func runFixtures(opts *RunOptions, fixturesDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(fixturesDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("fixtures directory not found: %s", fixturesDir))
	}

	exePath, err := findExecutable(opts.Exe)
	if err != nil {
		return NewExitError(ExitFailure, err.Error())
	}

	categories := strings.Split(opts.Categories, ",")
	paths, err := fixture.Discover(fixturesDir, categories)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if len(paths) == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no fixtures found in categories %v under %s", categories, fixturesDir))
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	driver := replay.NewDriver(exePath, time.Duration(opts.Timeout)*time.Second, logger)
	h := harness.New(driver, opts.Filter, logger)

	startedAt := time.Now()
	w := cmd.OutOrStdout()
	textOutput := opts.Format != "json"

	// Stream verdicts as they complete in text mode; a slow runtime
	// should not leave the terminal silent.
	var observe func(harness.Verdict)
	if textOutput {
		fmt.Fprintf(w, "Using runtime executable: %s\n", exePath)
		fmt.Fprintf(w, "Found %d fixture file(s)\n\n", len(paths))
		observe = func(v harness.Verdict) {
			printVerdict(w, v, opts.Verbose)
		}
	}
	summary := h.RunAll(cmd.Context(), paths, observe)

	if opts.Record != "" {
		if err := recordRun(cmd, opts.Record, fixturesDir, exePath, startedAt, summary); err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
	}

	if textOutput {
		fmt.Fprintf(w, "\nResults: %d passed, %d failed, %d skipped\n", summary.Passed, summary.Failed, summary.Skipped)
		if !summary.Ok() {
			return NewExitError(ExitFailure, fmt.Sprintf("%d fixture(s) failed", summary.Failed))
		}
		return nil
	}

	resp := CLIResponse{Status: "ok", Data: summary}
	if !summary.Ok() {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    "E_FIXTURES_FAILED",
			Message: fmt.Sprintf("%d fixture(s) failed", summary.Failed),
		}
	}
	if err := writeJSON(w, resp); err != nil {
		return err
	}
	if !summary.Ok() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d fixture(s) failed", summary.Failed))
	}
	return nil
}

// printVerdict writes one fixture line in text mode.
func printVerdict(w io.Writer, v harness.Verdict, verbose bool) {
	switch v.Status {
	case harness.StatusPassed:
		fmt.Fprintf(w, "✓ %s\n", v.Name)
	case harness.StatusFailed:
		fmt.Fprintf(w, "✗ %s\n", v.Name)
		for _, issue := range v.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	case harness.StatusSkipped:
		if verbose {
			fmt.Fprintf(w, "- %s (skipped: %s)\n", v.Name, v.SkipReason)
		}
	}
}

// findExecutable resolves the runtime executable, probing fallback
// locations when no explicit path is given.
func findExecutable(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("runtime executable not found: %s", explicit)
		}
		return explicit, nil
	}
	for _, candidate := range exeCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("runtime executable not found; pass --exe or build one of %v", exeCandidates)
}

// recordRun persists the summary to the history database.
func recordRun(cmd *cobra.Command, dbPath, fixturesDir, exePath string, startedAt time.Time, summary *harness.Summary) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	meta := store.RunMeta{
		FixtureRoot: fixturesDir,
		ExePath:     exePath,
		StartedAt:   startedAt,
	}
	return s.RecordRun(cmd.Context(), meta, summary)
}
