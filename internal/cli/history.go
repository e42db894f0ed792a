package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fixturelab/snapcheck/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
	Run   string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded run history",
		Long: `List runs recorded with --record, or show the per-fixture
verdicts of a single run.

Examples:
  snapcheck history --db history.db
  snapcheck history --db history.db --run 0198f2a1-...
  snapcheck history --db history.db --limit 5 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to the history database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show verdicts for this run ID")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func showHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	s, err := store.Open(opts.DB)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("open history database: %v", err))
	}
	defer s.Close()

	w := cmd.OutOrStdout()

	if opts.Run != "" {
		verdicts, err := s.RunVerdicts(cmd.Context(), opts.Run)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		if len(verdicts) == 0 {
			return NewExitError(ExitFailure, fmt.Sprintf("no run found with ID %s", opts.Run))
		}
		if opts.Format == "json" {
			return writeJSON(w, CLIResponse{Status: "ok", Data: verdicts})
		}
		for _, v := range verdicts {
			fmt.Fprintf(w, "%-8s %s (%dms)\n", v.Status, v.Name, v.DurationMS)
			for _, issue := range v.Issues {
				fmt.Fprintf(w, "  - %s\n", issue)
			}
			if v.SkipReason != "" {
				fmt.Fprintf(w, "  skipped: %s\n", v.SkipReason)
			}
		}
		return nil
	}

	runs, err := s.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if opts.Format == "json" {
		return writeJSON(w, CLIResponse{Status: "ok", Data: runs})
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %d passed, %d failed, %d skipped  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Passed, r.Failed, r.Skipped, r.FixtureRoot)
	}
	return nil
}
