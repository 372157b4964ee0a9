package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mishagrol/dscsm/internal/ctxlog"
	"github.com/mishagrol/dscsm/internal/fsutil"
	"github.com/mishagrol/dscsm/internal/output"
)

const (
	// SoilFileName is the fixed name of the workspace soil file.
	SoilFileName = "SOIL.SOL"
	// WeatherDirName is the workspace subdirectory holding the weather series.
	WeatherDirName = "Weather"
	// ControlFileName is the registry file the engine reads at startup to
	// locate every input subsystem.
	ControlFileName = "DSSATPRO.L48"
)

// AssetPaths locates the shared read-only reference directories the engine
// resolves through the control file.
type AssetPaths struct {
	Genotype     string
	Pest         string
	Soil         string
	StandardData string
}

// DefaultAssetPaths returns the conventional reference layout under a static
// asset root.
func DefaultAssetPaths(staticDir string) AssetPaths {
	return AssetPaths{
		Genotype:     filepath.Join(staticDir, "Genotype"),
		Pest:         filepath.Join(staticDir, "Pest"),
		Soil:         filepath.Join(staticDir, "Soil"),
		StandardData: filepath.Join(staticDir, "StandardData"),
	}
}

// CompiledRun is the result of input compilation: the experiment file the
// engine must be pointed at, plus the derived fields that went into it.
type CompiledRun struct {
	// ExperimentFile is the experiment file name relative to the workspace.
	ExperimentFile string
	Derived        Derived
}

// Compiler stages the domain inputs of one run into a workspace.
type Compiler struct {
	Workspace string
	// Binary is the engine binary's file name inside the workspace.
	Binary string
	Assets AssetPaths
}

// Compile clears stale outputs, computes the derived management fields,
// delegates file writing to each domain input, and emits the control file.
// Delegate write failures propagate wrapped and abort compilation.
func (c *Compiler) Compile(ctx context.Context, soil SoilProfile, weather WeatherStation, crop Crop, management Management) (*CompiledRun, error) {
	logger := ctxlog.FromContext(ctx)

	if err := c.clearStaleOutputs(); err != nil {
		return nil, err
	}

	derived, err := BuildDerived(soil, weather, crop, management)
	if err != nil {
		return nil, fmt.Errorf("deriving management fields: %w", err)
	}
	logger.Debug("Derived management fields computed.",
		"weather_station_id", derived.WeatherStationID,
		"soil_id", derived.SoilID,
		"model", derived.Model,
	)

	experimentFile := ExperimentFileName(weather, crop, management.SimStart())
	if err := management.Write(filepath.Join(c.Workspace, experimentFile), derived); err != nil {
		return nil, fmt.Errorf("writing experiment file %s: %w", experimentFile, err)
	}
	if err := crop.Write(c.Workspace); err != nil {
		return nil, fmt.Errorf("writing crop definition: %w", err)
	}
	if err := soil.Write(filepath.Join(c.Workspace, SoilFileName)); err != nil {
		return nil, fmt.Errorf("writing soil file: %w", err)
	}
	weatherDir := filepath.Join(c.Workspace, WeatherDirName)
	if err := weather.Write(weatherDir); err != nil {
		return nil, fmt.Errorf("writing weather series: %w", err)
	}
	logger.Debug("Domain inputs staged.", "experiment_file", experimentFile)

	if err := c.writeControlFile(crop.Code(), derived.Model, weatherDir); err != nil {
		return nil, err
	}

	return &CompiledRun{ExperimentFile: experimentFile, Derived: derived}, nil
}

// clearStaleOutputs removes output files left behind by a previous run so a
// repeated run never reports residue from its predecessor.
func (c *Compiler) clearStaleOutputs() error {
	stale, err := fsutil.ListByExtension(c.Workspace, output.FileSuffix)
	if err != nil {
		return fmt.Errorf("listing stale outputs: %w", err)
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing stale output %s: %w", path, err)
		}
	}
	return nil
}
