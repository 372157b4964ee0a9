// Package workspace manages the isolated run directory of a simulation:
// creation, staging of the engine binary and static reference files, and
// removal.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mishagrol/dscsm/internal/ctxlog"
	"github.com/mishagrol/dscsm/internal/fsutil"
)

// ReferenceSuffix filters which files are staged from the static asset root
// into the workspace.
const ReferenceSuffix = ".CDE"

// ErrSetup marks a failure to create or stage the workspace directory.
var ErrSetup = errors.New("workspace setup failed")

// SetupError wraps the underlying cause of a workspace setup failure.
type SetupError struct {
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSetup.Error(), e.Path, e.Err)
}

func (e *SetupError) Unwrap() error { return ErrSetup }

// Manager stages workspaces from a shared static asset root.
type Manager struct {
	// BinaryPath is the location of the engine binary to copy in.
	BinaryPath string
	// StaticDir is the root holding the ReferenceSuffix files to copy in.
	StaticDir string
}

// Setup creates or reuses the workspace directory and stages the engine
// assets into it. An empty path allocates a uniquely named directory under
// the system temp root. With overwrite set, an existing directory is removed
// and recreated empty; by default it is reused in place. Staging is
// idempotent: a binary already present in the workspace is not copied again.
func (m *Manager) Setup(ctx context.Context, path string, overwrite bool) (string, error) {
	logger := ctxlog.FromContext(ctx)

	dir, err := m.ensureDir(path, overwrite)
	if err != nil {
		return "", &SetupError{Path: path, Err: err}
	}
	logger.Debug("Workspace directory ready.", "path", dir, "overwrite", overwrite)

	binary := filepath.Join(dir, filepath.Base(m.BinaryPath))
	if _, err := os.Stat(binary); os.IsNotExist(err) {
		if err := fsutil.CopyFile(m.BinaryPath, binary, 0o755); err != nil {
			return "", &SetupError{Path: dir, Err: err}
		}
		logger.Debug("Engine binary staged.", "binary", binary)
	}

	refs, err := fsutil.ListByExtension(m.StaticDir, ReferenceSuffix)
	if err != nil {
		return "", &SetupError{Path: dir, Err: err}
	}
	for _, ref := range refs {
		if err := fsutil.CopyFile(ref, filepath.Join(dir, filepath.Base(ref)), 0o644); err != nil {
			return "", &SetupError{Path: dir, Err: err}
		}
	}
	logger.Debug("Static reference files staged.", "count", len(refs))

	return dir, nil
}

// ensureDir resolves, and if needed creates, the workspace directory.
func (m *Manager) ensureDir(path string, overwrite bool) (string, error) {
	if path == "" {
		dir, err := os.MkdirTemp("", "dscsm-")
		if err != nil {
			return "", fmt.Errorf("allocating temp workspace: %w", err)
		}
		return dir, nil
	}

	if overwrite {
		if err := os.RemoveAll(path); err != nil {
			return "", fmt.Errorf("removing existing workspace: %w", err)
		}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating workspace: %w", err)
	}
	return path, nil
}

// Remove deletes the workspace directory and everything in it.
func (m *Manager) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing workspace %s: %w", path, err)
	}
	return nil
}
