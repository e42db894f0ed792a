package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fixturelab/snapcheck/internal/harness"
)

// RunMeta identifies what one harness run executed against.
type RunMeta struct {
	FixtureRoot string
	ExePath     string
	StartedAt   time.Time
}

// RecordRun persists a run summary and all of its verdicts atomically.
func (s *Store) RecordRun(ctx context.Context, meta RunMeta, summary *harness.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, fixture_root, exe_path, passed, failed, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		summary.RunID,
		meta.StartedAt.UTC().Format(time.RFC3339),
		meta.FixtureRoot,
		meta.ExePath,
		summary.Passed,
		summary.Failed,
		summary.Skipped,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	for _, v := range summary.Verdicts {
		issuesJSON, err := json.Marshal(v.Issues)
		if err != nil {
			return fmt.Errorf("record verdict %s: %w", v.Name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO verdicts (run_id, name, status, skip_reason, issues, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			summary.RunID,
			v.Name,
			string(v.Status),
			v.SkipReason,
			string(issuesJSON),
			v.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("record verdict %s: %w", v.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
