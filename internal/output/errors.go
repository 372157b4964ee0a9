package output

import (
	"errors"
	"fmt"
)

// ErrMissingOutput marks an expected output file that the engine did not
// produce. A match via errors.Is means the run cannot be trusted even though
// the engine exited successfully.
var ErrMissingOutput = errors.New("expected output file missing")

// MissingOutputError reports which output was requested and where it was
// expected to be found.
type MissingOutputError struct {
	Name      string
	Workspace string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("%s: %s%s does not exist in %s", ErrMissingOutput.Error(), e.Name, FileSuffix, e.Workspace)
}

func (e *MissingOutputError) Unwrap() error { return ErrMissingOutput }
