package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fixturelab/snapcheck/internal/fixture"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Categories string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <fixtures-dir|transcript.yaml>",
		Short: "Lint transcript files against the schema",
		Long: `Check transcript files against the transcript schema without
running anything. Useful when authoring new fixtures; the run command stays
lenient and will replay transcripts that validate rejects.

Exit codes:
  0 - All files valid
  1 - Schema violations found
  2 - Command error (invalid paths, flags)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateFixtures(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Categories, "categories", DefaultCategories, "comma-separated fixture category subdirectories")

	return cmd
}

// lintReport is the JSON payload for a validate invocation.
type lintReport struct {
	Checked int                 `json:"checked"`
	Errors  []fixture.LintError `json:"errors"`
}

func validateFixtures(opts *ValidateOptions, target string, cmd *cobra.Command) error {
	info, err := os.Stat(target)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("path not found: %s", target))
	}

	var paths []string
	if info.IsDir() {
		categories := strings.Split(opts.Categories, ",")
		paths, err = fixture.Discover(target, categories)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
	} else {
		paths = []string{target}
	}
	if len(paths) == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no transcript files found under %s", target))
	}

	report := lintReport{Errors: []fixture.LintError{}}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("read %s: %v", path, err))
		}
		report.Checked++
		report.Errors = append(report.Errors, fixture.Lint(path, data)...)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: report}
		if len(report.Errors) > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "E_SCHEMA_VIOLATIONS",
				Message: fmt.Sprintf("%d schema violation(s)", len(report.Errors)),
			}
		}
		if err := writeJSON(w, resp); err != nil {
			return err
		}
	} else {
		for _, lintErr := range report.Errors {
			fmt.Fprintf(w, "✗ %s\n", lintErr.Error())
		}
		fmt.Fprintf(w, "Checked %d file(s), %d violation(s)\n", report.Checked, len(report.Errors))
	}

	if len(report.Errors) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d schema violation(s)", len(report.Errors)))
	}
	return nil
}
