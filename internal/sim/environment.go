package sim

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mishagrol/dscsm/internal/compiler"
	"github.com/mishagrol/dscsm/internal/ctxlog"
	"github.com/mishagrol/dscsm/internal/engine"
	"github.com/mishagrol/dscsm/internal/output"
	"github.com/mishagrol/dscsm/internal/workspace"
)

// DefaultBinary is the engine binary's conventional file name.
const DefaultBinary = "dscsm048"

// DefaultOutputs is the output list requested when the config leaves it empty.
var DefaultOutputs = []string{"PlantGro"}

// Config is the immutable-after-construction configuration of an Environment.
type Config struct {
	// StaticDir is the shared read-only asset root holding the engine
	// binary (under bin/), the reference .CDE files and the Genotype, Pest,
	// Soil and StandardData directories.
	StaticDir string

	// Binary is the engine binary's file name; empty means DefaultBinary.
	Binary string

	// WorkspacePath is the run directory. Empty allocates a unique temp
	// directory at Setup.
	WorkspacePath string

	// Overwrite wipes and recreates an existing WorkspacePath at Setup.
	Overwrite bool

	// Outputs names the output categories to parse after each run; empty
	// means DefaultOutputs.
	Outputs []string

	// Timeout bounds one engine invocation; zero means engine.DefaultTimeout.
	Timeout time.Duration

	// Format describes the engine's output file layout; the zero value
	// means the built-in default descriptor.
	Format output.FormatDescriptor
}

func (c Config) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

func (c Config) outputs() []string {
	if len(c.Outputs) == 0 {
		return DefaultOutputs
	}
	return c.Outputs
}

func (c Config) format() output.FormatDescriptor {
	if c.Format == (output.FormatDescriptor{}) {
		return output.DefaultFormat()
	}
	return c.Format
}

// Environment orchestrates one simulation workspace through its lifecycle:
// Setup stages it, Run compiles inputs / executes the engine / reads outputs
// (repeatable), Close removes it. Not safe for concurrent use.
type Environment struct {
	cfg   Config
	state State
	dir   string

	outputs map[string]*output.Table
}

// New returns an uninitialized Environment for the given configuration.
func New(cfg Config) *Environment {
	return &Environment{cfg: cfg, outputs: map[string]*output.Table{}}
}

// State returns the environment's lifecycle phase.
func (e *Environment) State() State { return e.state }

// Workspace returns the staged run directory; empty before Setup.
func (e *Environment) Workspace() string { return e.dir }

// Setup stages the workspace: creates or reuses the run directory and copies
// the engine binary and the static reference files into it. Calling Setup
// again on a ready environment re-stages the same directory idempotently.
func (e *Environment) Setup(ctx context.Context) error {
	if e.state == StateClosed {
		return &PreconditionError{Op: "Setup", State: e.state}
	}
	logger := ctxlog.FromContext(ctx)

	mgr := &workspace.Manager{
		BinaryPath: filepath.Join(e.cfg.StaticDir, "bin", e.cfg.binary()),
		StaticDir:  e.cfg.StaticDir,
	}
	path := e.cfg.WorkspacePath
	if e.dir != "" {
		// Re-setup targets the directory staged the first time, also when
		// the original path was an allocated temp directory.
		path = e.dir
	}
	dir, err := mgr.Setup(ctx, path, e.cfg.Overwrite && e.dir == "")
	if err != nil {
		return err
	}
	e.dir = dir
	e.state = StateReady
	logger.Info("Simulation environment ready.", "workspace", dir)
	return nil
}

// Run executes one simulation: compile the four domain inputs into the
// workspace, invoke the engine, then parse the requested outputs into the
// result cache. It requires a prior successful Setup and may be called
// repeatedly; stale outputs of a previous run are cleared before each run.
func (e *Environment) Run(ctx context.Context, soil compiler.SoilProfile, weather compiler.WeatherStation, crop compiler.Crop, management compiler.Management) error {
	if e.state != StateReady {
		return &PreconditionError{Op: "Run", State: e.state}
	}
	logger := ctxlog.FromContext(ctx)

	comp := &compiler.Compiler{
		Workspace: e.dir,
		Binary:    e.cfg.binary(),
		Assets:    compiler.DefaultAssetPaths(e.cfg.StaticDir),
	}
	compiled, err := comp.Compile(ctx, soil, weather, crop, management)
	if err != nil {
		return fmt.Errorf("compiling inputs: %w", err)
	}
	logger.Info("Inputs compiled.", "experiment_file", compiled.ExperimentFile)

	runner := &engine.Runner{
		Binary:    e.cfg.binary(),
		Workspace: e.dir,
		Timeout:   e.cfg.Timeout,
	}
	if err := runner.Execute(ctx, compiled.ExperimentFile); err != nil {
		return err
	}

	reader := output.NewReader(e.dir, e.cfg.format())
	tables, err := reader.Read(ctx, e.cfg.outputs())
	if err != nil {
		return err
	}
	e.outputs = tables
	logger.Info("Run finished.", "tables", len(tables))
	return nil
}

// Outputs returns the result tables of the most recent successful run,
// keyed by output name.
func (e *Environment) Outputs() map[string]*output.Table {
	return e.outputs
}

// Output returns one result table of the most recent successful run.
func (e *Environment) Output(name string) (*output.Table, bool) {
	t, ok := e.outputs[name]
	return t, ok
}

// Close removes the workspace recursively and leaves the environment in its
// terminal state. The result cache stays readable after Close.
func (e *Environment) Close() error {
	if e.state != StateReady {
		return &PreconditionError{Op: "Close", State: e.state}
	}
	mgr := &workspace.Manager{}
	if err := mgr.Remove(e.dir); err != nil {
		return err
	}
	e.state = StateClosed
	return nil
}
