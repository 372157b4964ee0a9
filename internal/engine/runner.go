// Package engine invokes the external crop simulation binary as a
// subprocess and maps its exit status onto the run's error taxonomy.
package engine

import (
	"context"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mishagrol/dscsm/internal/ctxlog"
)

// ErrorLogName is the engine's own detailed error report, written into the
// workspace when a run fails.
const ErrorLogName = "ERROR.OUT"

// DefaultTimeout bounds the engine's wall-clock runtime when the caller does
// not configure one.
const DefaultTimeout = 30 * time.Minute

// Runner executes the engine binary against a compiled workspace.
type Runner struct {
	// Binary is the engine binary's file name inside the workspace.
	Binary    string
	Workspace string
	// Timeout bounds one invocation; zero means DefaultTimeout. On expiry
	// the subprocess is killed and the run fails.
	Timeout time.Duration
}

// Execute runs `<binary> C <experimentFile> 1` with the workspace as working
// directory and blocks until the engine exits. Mode "C" runs the single
// treatment 1. A nonzero exit or an expired timeout yields an ExecError.
func (r *Runner) Execute(ctx context.Context, experimentFile string) error {
	logger := ctxlog.FromContext(ctx)

	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	binary := filepath.Join(r.Workspace, r.Binary)
	cmd := exec.CommandContext(ctx, binary, "C", experimentFile, "1")
	cmd.Dir = r.Workspace
	// Do not wait on inherited pipes once the engine itself is gone.
	cmd.WaitDelay = 5 * time.Second

	logger.Debug("Starting engine subprocess.",
		"binary", binary,
		"experiment_file", experimentFile,
		"timeout", timeout,
	)
	start := time.Now()
	output, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		logger.Error("Engine subprocess killed after timeout.", "timeout", timeout)
		return &ExecError{
			LogPath:  filepath.Join(r.Workspace, ErrorLogName),
			TimedOut: true,
			Timeout:  timeout,
		}
	}
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		logger.Error("Engine subprocess failed.", "exit_code", exitCode, "elapsed", elapsed)
		return &ExecError{
			ExitCode: exitCode,
			LogPath:  filepath.Join(r.Workspace, ErrorLogName),
			Err:      err,
		}
	}

	logger.Debug("Engine subprocess finished.", "elapsed", elapsed, "output_bytes", len(output))
	return nil
}
