package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const badRoleTranscript = `
conversations:
  - messages:
      - role: narrator
        content: "once upon a time"
`

func execValidate(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestValidateNonExistentPath(t *testing.T) {
	_, err := execValidate(t, "text", "/nonexistent/path")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "path not found")
}

func TestValidateSingleCleanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "read.yaml")
	require.NoError(t, os.WriteFile(path, []byte(readTranscript), 0644))

	buf, err := execValidate(t, "text", path)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Checked 1 file(s), 0 violation(s)")
}

func TestValidateSingleBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(badRoleTranscript), 0644))

	buf, err := execValidate(t, "text", path)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗")
	assert.Contains(t, buf.String(), "bad.yaml")
}

func TestValidateDirectory(t *testing.T) {
	root := writeFixtures(t, map[string]string{
		"good.yaml": readTranscript,
		"bad.yaml":  badRoleTranscript,
	})

	buf, err := execValidate(t, "text", root)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Checked 2 file(s), 1 violation(s)")
}

func TestValidateEmptyDirectory(t *testing.T) {
	_, err := execValidate(t, "text", t.TempDir())

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "no transcript files found")
}

func TestValidateJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(badRoleTranscript), 0644))

	buf, err := execValidate(t, "json", path)

	require.Error(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_SCHEMA_VIOLATIONS", resp.Error.Code)
}
