package sim

import (
	"errors"
	"fmt"
)

// ErrNotReady marks a lifecycle violation: an operation was invoked on an
// environment that is not in the state it requires.
var ErrNotReady = errors.New("simulation environment not ready")

// PreconditionError reports which operation was attempted in which state.
type PreconditionError struct {
	Op    string
	State State
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: cannot %s while environment is %s",
		ErrNotReady.Error(), e.Op, e.State)
}

func (e *PreconditionError) Unwrap() error { return ErrNotReady }
