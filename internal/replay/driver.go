package replay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fixturelab/snapcheck/internal/fixture"
)

// DefaultTimeout bounds one runtime invocation when the caller does not
// configure one.
const DefaultTimeout = 120 * time.Second

// Driver invokes the runtime under test, one fixture per invocation.
// No retries: a fixture gets exactly one replay attempt.
type Driver struct {
	exePath string
	timeout time.Duration
	logger  *slog.Logger
}

// NewDriver creates a driver for the given runtime executable.
// A zero timeout falls back to DefaultTimeout; a nil logger discards.
func NewDriver(exePath string, timeout time.Duration, logger *slog.Logger) *Driver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{exePath: exePath, timeout: timeout, logger: logger}
}

// Replay runs the runtime under test against one fixture.
//
// The configuration is written to a temporary file beside the executable
// (the runtime takes a file path argument, not stdin) with the harness pid
// in its name so concurrent harness processes never clobber each other.
// The file is removed on every exit path, timeout included. All invocation
// failures come back as error traces, never as panics or raw errors.
func (d *Driver) Replay(ctx context.Context, f *fixture.Fixture) *Trace {
	cfg := NewConfig(f)
	data, err := cfg.Marshal()
	if err != nil {
		return errorTrace("failed to serialize replay config: %v", err)
	}

	exePath, err := filepath.Abs(d.exePath)
	if err != nil {
		return errorTrace("failed to resolve executable path: %v", err)
	}
	exeDir := filepath.Dir(exePath)

	configPath := filepath.Join(exeDir, fmt.Sprintf("_replay_config_%d.json", os.Getpid()))
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errorTrace("failed to write replay config: %v", err)
	}
	defer os.Remove(configPath)

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, exePath, configPath)
	cmd.Dir = exeDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.logger.Debug("invoking runtime",
		"fixture", f.Name,
		"exe", exePath,
		"config", configPath,
		"timeout", d.timeout,
	)

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		d.logger.Warn("runtime timed out", "fixture", f.Name, "timeout", d.timeout)
		return errorTrace("timeout after %s", d.timeout)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			detail := strings.TrimSpace(stderr.String())
			if detail == "" {
				detail = strings.TrimSpace(stdout.String())
			}
			return errorTrace("exit code %d: %s", exitErr.ExitCode(), detail)
		}
		return errorTrace("failed to invoke runtime: %v", runErr)
	}

	return decodeTrace(stdout.Bytes())
}
