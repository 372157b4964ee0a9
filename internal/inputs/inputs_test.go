package inputs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishagrol/dscsm/internal/compiler"
)

func TestSoil_WriteStagesSourceFile(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "SOIL.SOL")
	require.NoError(t, os.WriteFile(src, []byte("*SOILS\n"), 0o644))
	soil := &Soil{SourceFile: src, ProfileID: "IBMZ910014", Depth: 210}

	dst := filepath.Join(t.TempDir(), "SOIL.SOL")
	require.NoError(t, soil.Write(dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "*SOILS\n", string(data))
}

func TestWeather_WriteStagesDirectory(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "UAFL2301.WTH"), []byte("*WEATHER\n"), 0o644))
	w := &Weather{SourceDir: srcDir, Code: "UAFL"}

	dstDir := filepath.Join(t.TempDir(), "Weather")
	require.NoError(t, w.Write(dstDir))

	assert.FileExists(t, filepath.Join(dstDir, "UAFL2301.WTH"))
	assert.Equal(t, "UAFL", w.StationCode())
}

func TestCrop_WriteStagesAllFiles(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	cul := filepath.Join(src, "MZCER048.CUL")
	eco := filepath.Join(src, "MZCER048.ECO")
	require.NoError(t, os.WriteFile(cul, []byte("*CUL\n"), 0o644))
	require.NoError(t, os.WriteFile(eco, []byte("*ECO\n"), 0o644))

	crop := &Crop{
		Files:     []string{cul, eco},
		CropCode:  "MZ",
		ModelID:   "MZCER048",
		Cultivars: map[string]string{"IB0001": "PC0001"},
	}

	dst := t.TempDir()
	require.NoError(t, crop.Write(dst))
	assert.FileExists(t, filepath.Join(dst, "MZCER048.CUL"))
	assert.FileExists(t, filepath.Join(dst, "MZCER048.ECO"))

	name, ok := crop.CultivarName("IB0001")
	require.True(t, ok)
	assert.Equal(t, "PC0001", name)
	_, ok = crop.CultivarName("IB0002")
	assert.False(t, ok)
}

func TestManagement(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "UAFL2301.MZX")
	require.NoError(t, os.WriteFile(src, []byte("*EXP\n"), 0o644))

	m := &Management{
		SourceFile:    src,
		Cultivar:      "IB0001",
		Start:         time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		WaterFraction: 0.5,
	}

	// IC date defaults until set explicitly.
	_, ok := m.InitialConditionsDate()
	assert.False(t, ok)
	ic := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)
	m.ICDate = &ic
	got, ok := m.InitialConditionsDate()
	require.True(t, ok)
	assert.Equal(t, ic, got)

	dst := filepath.Join(t.TempDir(), "UAFL2301.MZX")
	require.NoError(t, m.Write(dst, compiler.Derived{}))
	assert.FileExists(t, dst)
}

func TestManagement_WriteWithoutSourceFails(t *testing.T) {
	t.Parallel()

	m := &Management{}
	err := m.Write(filepath.Join(t.TempDir(), "X.MZX"), compiler.Derived{})
	require.Error(t, err)
}
