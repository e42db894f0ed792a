// Package testutil provides deterministic test doubles for the harness.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// FakeRuntime writes an executable shell script that emits the given stdout
// and exits zero, standing in for the runtime under test. Returns the
// script's path. The script lives in its own temp directory so temp config
// artifacts written beside it never collide across tests.
func FakeRuntime(t *testing.T, stdout string) string {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\ncat <<'FAKE_TRACE'\n%s\nFAKE_TRACE\n", stdout)
	return writeScript(t, script)
}

// FakeRuntimeExit writes a runtime double that prints stderr and exits with
// the given code.
func FakeRuntimeExit(t *testing.T, code int, stderr string) string {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\necho '%s' >&2\nexit %d\n", stderr, code)
	return writeScript(t, script)
}

// FakeRuntimeHang writes a runtime double that sleeps far past any test
// timeout, for exercising the timeout path.
func FakeRuntimeHang(t *testing.T) string {
	t.Helper()
	return writeScript(t, "#!/bin/sh\nsleep 300\n")
}

// FakeRuntimeCapture writes a runtime double that copies its config file
// argument to capturePath before emitting stdout, so tests can inspect the
// configuration the driver produced.
func FakeRuntimeCapture(t *testing.T, capturePath, stdout string) string {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\ncp \"$1\" %q\ncat <<'FAKE_TRACE'\n%s\nFAKE_TRACE\n", capturePath, stdout)
	return writeScript(t, script)
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-runtime")
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}
