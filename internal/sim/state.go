package sim

// State is the lifecycle phase of an Environment.
type State int

const (
	// StateUninitialized is the phase before Setup has staged a workspace.
	StateUninitialized State = iota
	// StateReady means the workspace is staged and runs may be invoked,
	// repeatedly.
	StateReady
	// StateClosed is terminal: the workspace has been removed.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
