package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "PlantGro.OUT"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SOIL.SOL"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Weather"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Weather", "nested.OUT"), nil, 0o644))

	files, err := ListByExtension(dir, ".OUT")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "PlantGro.OUT")}, files,
		"listing is extension-filtered and does not recurse")
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))
	dst := filepath.Join(t.TempDir(), "dst")

	require.NoError(t, CopyFile(src, dst, 0o755))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100)
}

func TestCopyDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.WTH"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.WTH"), []byte("b"), 0o644))

	dst := filepath.Join(t.TempDir(), "Weather")
	require.NoError(t, CopyDir(src, dst, 0o644))

	assert.FileExists(t, filepath.Join(dst, "a.WTH"))
	assert.FileExists(t, filepath.Join(dst, "b.WTH"))
}
