package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrEngine marks a failed engine invocation, whether by nonzero exit or by
// an expired timeout.
var ErrEngine = errors.New("engine execution failed")

// ExecError reports a failed engine invocation. LogPath names the engine's
// own detailed error report for diagnosis.
type ExecError struct {
	ExitCode int
	LogPath  string
	TimedOut bool
	Timeout  time.Duration
	Err      error
}

func (e *ExecError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("%s: killed after %s timeout, check %s for a detailed report",
			ErrEngine.Error(), e.Timeout, e.LogPath)
	}
	return fmt.Sprintf("%s: exit code %d, check %s for a detailed report",
		ErrEngine.Error(), e.ExitCode, e.LogPath)
}

func (e *ExecError) Unwrap() error { return ErrEngine }
