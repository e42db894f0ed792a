package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturelab/snapcheck/internal/replay"
	"github.com/fixturelab/snapcheck/internal/testutil"
)

const readTranscript = `
conversations:
  - messages:
      - role: user
        content: "${system}"
      - role: user
        content: "Read a.txt"
      - role: assistant
        tool_calls:
          - id: call_1
            function:
              name: read_file
              arguments: '{"path": "a.txt"}'
      - role: tool
        tool_call_id: call_1
        content: "hello"
`

const chatOnlyTranscript = `
conversations:
  - messages:
      - role: user
        content: "Just say hi"
      - role: assistant
        content: "hi"
`

const matchingTrace = `{"turns": [{"tool_calls": [{"name": "read_file", "arguments": {"path": "a.txt"}}]}]}`

func writeTranscript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newHarness(t *testing.T, exe, filter string) *Harness {
	t.Helper()
	return New(replay.NewDriver(exe, 10*time.Second, nil), filter, nil)
}

func TestRunFile_Pass(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "read-basic.yaml", readTranscript)
	h := newHarness(t, testutil.FakeRuntime(t, matchingTrace), "")

	verdict := h.RunFile(context.Background(), path)

	assert.Equal(t, StatusPassed, verdict.Status)
	assert.Equal(t, "read-basic", verdict.Name)
	assert.Empty(t, verdict.Issues)
	assert.Greater(t, verdict.Duration, time.Duration(0))
}

func TestRunFile_FailOnMissingTool(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "read-basic.yaml", readTranscript)
	h := newHarness(t, testutil.FakeRuntime(t, `{"turns": [{"tool_calls": []}]}`), "")

	verdict := h.RunFile(context.Background(), path)

	assert.Equal(t, StatusFailed, verdict.Status)
	require.Len(t, verdict.Issues, 1)
	assert.Contains(t, verdict.Issues[0], "read_file")
}

func TestRunFile_SkipUnparseable(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "broken.yaml", "conversations: [unclosed")
	h := newHarness(t, testutil.FakeRuntime(t, matchingTrace), "")

	verdict := h.RunFile(context.Background(), path)

	assert.Equal(t, StatusSkipped, verdict.Status)
	assert.NotEmpty(t, verdict.SkipReason)
}

func TestRunFile_SkipNoToolCalls(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "chat.yaml", chatOnlyTranscript)
	h := newHarness(t, testutil.FakeRuntime(t, matchingTrace), "")

	verdict := h.RunFile(context.Background(), path)

	assert.Equal(t, StatusSkipped, verdict.Status)
	assert.Equal(t, SkipNoToolCalls, verdict.SkipReason)
}

func TestRunFile_SkipFiltered(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "read-basic.yaml", readTranscript)
	h := newHarness(t, testutil.FakeRuntime(t, matchingTrace), "write")

	verdict := h.RunFile(context.Background(), path)

	assert.Equal(t, StatusSkipped, verdict.Status)
	assert.Equal(t, SkipFiltered, verdict.SkipReason)
}

func TestRunFile_FilterMatchesSubstring(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "read-basic.yaml", readTranscript)
	h := newHarness(t, testutil.FakeRuntime(t, matchingTrace), "ad-bas")

	verdict := h.RunFile(context.Background(), path)
	assert.Equal(t, StatusPassed, verdict.Status)
}

func TestRunFile_ReplayErrorFails(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "read-basic.yaml", readTranscript)
	h := newHarness(t, testutil.FakeRuntimeExit(t, 2, "boom"), "")

	verdict := h.RunFile(context.Background(), path)

	assert.Equal(t, StatusFailed, verdict.Status)
	require.Len(t, verdict.Issues, 1)
	assert.Contains(t, verdict.Issues[0], "exit code 2")
}

func TestRunAll_Accounting(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTranscript(t, dir, "a-pass.yaml", readTranscript),
		writeTranscript(t, dir, "b-chat.yaml", chatOnlyTranscript),
		writeTranscript(t, dir, "c-broken.yaml", "conversations: [unclosed"),
	}
	h := newHarness(t, testutil.FakeRuntime(t, matchingTrace), "")

	summary := h.RunAll(context.Background(), paths, nil)

	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, summary.Executed())
	assert.True(t, summary.Ok())
	assert.NotEmpty(t, summary.RunID)
	assert.Len(t, summary.Verdicts, 3)
}

func TestRunAll_FailureMarksRunNotOk(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeTranscript(t, dir, "a.yaml", readTranscript)}
	h := newHarness(t, testutil.FakeRuntime(t, `{"turns": []}`), "")

	summary := h.RunAll(context.Background(), paths, nil)

	assert.Equal(t, 1, summary.Failed)
	assert.False(t, summary.Ok())
}

func TestRunAll_FailureIsolatedPerFixture(t *testing.T) {
	// One fixture failing must not affect its neighbors.
	dir := t.TempDir()
	good := writeTranscript(t, dir, "a-good.yaml", readTranscript)
	bad := writeTranscript(t, dir, "b-bad.yaml", `
conversations:
  - messages:
      - role: user
        content: "delete everything"
      - role: assistant
        tool_calls:
          - id: c1
            function:
              name: never_called_tool
              arguments: '{}'
`)
	h := newHarness(t, testutil.FakeRuntime(t, matchingTrace), "")

	summary := h.RunAll(context.Background(), []string{bad, good}, nil)

	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, StatusFailed, summary.Verdicts[0].Status)
	assert.Equal(t, StatusPassed, summary.Verdicts[1].Status)
}

func TestRunAll_DistinctRunIDs(t *testing.T) {
	h := newHarness(t, testutil.FakeRuntime(t, matchingTrace), "")

	first := h.RunAll(context.Background(), nil, nil)
	second := h.RunAll(context.Background(), nil, nil)
	assert.NotEqual(t, first.RunID, second.RunID)
}
