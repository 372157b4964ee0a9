package inputs

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mishagrol/dscsm/internal/compiler"
	"github.com/mishagrol/dscsm/internal/fsutil"
)

// Soil is a soil profile backed by a pre-built soil file.
type Soil struct {
	// SourceFile is the engine-ready soil file staged into the workspace.
	SourceFile string
	ProfileID  string
	Depth      float64
	Profile    []compiler.SoilLayer
}

func (s *Soil) ID() string { return s.ProfileID }

func (s *Soil) TotalDepth() float64 { return s.Depth }

func (s *Soil) Layers() []compiler.SoilLayer { return s.Profile }

func (s *Soil) Write(path string) error {
	return fsutil.CopyFile(s.SourceFile, path, 0o644)
}

// Weather is a weather station backed by a directory of pre-built daily
// series files.
type Weather struct {
	SourceDir string
	Code      string
}

func (w *Weather) StationCode() string { return w.Code }

func (w *Weather) Write(dir string) error {
	return fsutil.CopyDir(w.SourceDir, dir, 0o644)
}

// Crop is a crop backed by pre-built definition files (cultivar, ecotype,
// species) and a cultivar-id → cultivar-name table.
type Crop struct {
	Files     []string
	CropCode  string
	ModelID   string
	Cultivars map[string]string
}

func (c *Crop) Code() string { return c.CropCode }

func (c *Crop) Model() string { return c.ModelID }

func (c *Crop) CultivarName(id string) (string, bool) {
	name, ok := c.Cultivars[id]
	return name, ok
}

func (c *Crop) Write(dir string) error {
	for _, f := range c.Files {
		if err := fsutil.CopyFile(f, filepath.Join(dir, filepath.Base(f)), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// Management is a field-management plan backed by a pre-built experiment
// file. The derived fields are assumed already baked into the source file;
// Write stages it verbatim.
type Management struct {
	SourceFile    string
	Cultivar      string
	Start         time.Time
	WaterFraction float64
	// ICDate is the explicit initial-conditions date; nil defaults it to
	// the simulation start.
	ICDate *time.Time
}

func (m *Management) CultivarID() string { return m.Cultivar }

func (m *Management) SimStart() time.Time { return m.Start }

func (m *Management) InitialWaterFraction() float64 { return m.WaterFraction }

func (m *Management) InitialConditionsDate() (time.Time, bool) {
	if m.ICDate == nil {
		return time.Time{}, false
	}
	return *m.ICDate, true
}

func (m *Management) Write(path string, _ compiler.Derived) error {
	if m.SourceFile == "" {
		return fmt.Errorf("management plan has no source file")
	}
	return fsutil.CopyFile(m.SourceFile, path, 0o644)
}
