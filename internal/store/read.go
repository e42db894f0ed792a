package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RunRecord is one persisted harness run.
type RunRecord struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FixtureRoot string    `json:"fixture_root"`
	ExePath     string    `json:"exe_path"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
}

// VerdictRecord is one persisted fixture verdict.
type VerdictRecord struct {
	RunID      string   `json:"run_id"`
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	SkipReason string   `json:"skip_reason,omitempty"`
	Issues     []string `json:"issues,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, fixture_root, exe_path, passed, failed, skipped
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r       RunRecord
			started string
		)
		if err := rows.Scan(&r.ID, &started, &r.FixtureRoot, &r.ExePath, &r.Passed, &r.Failed, &r.Skipped); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("list runs: bad started_at %q: %w", started, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunVerdicts returns the verdicts recorded for one run, in insertion order.
func (s *Store) RunVerdicts(ctx context.Context, runID string) ([]VerdictRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, name, status, skip_reason, issues, duration_ms
		FROM verdicts
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("run verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []VerdictRecord
	for rows.Next() {
		var (
			v         VerdictRecord
			issuesRaw string
		)
		if err := rows.Scan(&v.RunID, &v.Name, &v.Status, &v.SkipReason, &issuesRaw, &v.DurationMS); err != nil {
			return nil, fmt.Errorf("run verdicts: %w", err)
		}
		if err := json.Unmarshal([]byte(issuesRaw), &v.Issues); err != nil {
			return nil, fmt.Errorf("run verdicts: bad issues for %s: %w", v.Name, err)
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, rows.Err()
}
