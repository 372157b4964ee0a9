package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/mishagrol/dscsm/internal/compiler"
	"github.com/mishagrol/dscsm/internal/ctxlog"
	"github.com/mishagrol/dscsm/internal/inputs"
	"github.com/mishagrol/dscsm/internal/output"
	"github.com/mishagrol/dscsm/internal/sim"
)

// dateLayout is the calendar-date form used by scenario files.
const dateLayout = "2006-01-02"

// Scenario is the translated, HCL-agnostic model of one simulation run.
type Scenario struct {
	Environment sim.Config
	Soil        *inputs.Soil
	Weather     *inputs.Weather
	Crop        *inputs.Crop
	Management  *inputs.Management
}

// Load parses and translates a scenario file. Relative paths inside the
// scenario resolve against the scenario file's directory.
func Load(ctx context.Context, path string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding scenario %s: %w", path, diags)
	}
	logger.Debug("Scenario file decoded.", "path", path)

	baseDir := filepath.Dir(path)
	scenario, err := translate(&root, baseDir)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return scenario, nil
}

// translate converts the HCL schema structs into the agnostic model,
// validating along the way.
func translate(root *fileRoot, baseDir string) (*Scenario, error) {
	if root.Environment == nil {
		return nil, fmt.Errorf("missing required environment block")
	}
	if root.Soil == nil || root.Weather == nil || root.Crop == nil || root.Management == nil {
		return nil, fmt.Errorf("scenario must declare soil, weather, crop and management blocks")
	}

	env := sim.Config{
		StaticDir: resolve(baseDir, root.Environment.StaticDir),
		Binary:    root.Environment.Binary,
		Overwrite: root.Environment.Overwrite,
		Outputs:   root.Outputs,
	}
	if root.Environment.Workspace != "" {
		env.WorkspacePath = resolve(baseDir, root.Environment.Workspace)
	}
	if root.Environment.Timeout != "" {
		timeout, err := time.ParseDuration(root.Environment.Timeout)
		if err != nil {
			return nil, fmt.Errorf("environment timeout %q: %w", root.Environment.Timeout, err)
		}
		env.Timeout = timeout
	}
	if root.Environment.FormatFile != "" {
		format, err := output.LoadFormatFile(resolve(baseDir, root.Environment.FormatFile))
		if err != nil {
			return nil, err
		}
		env.Format = format
	}

	soil := &inputs.Soil{
		SourceFile: resolve(baseDir, root.Soil.File),
		ProfileID:  root.Soil.ID,
		Depth:      root.Soil.Depth,
	}
	if len(root.Soil.Layers) == 0 {
		return nil, fmt.Errorf("soil block must declare at least one layer")
	}
	for _, l := range root.Soil.Layers {
		if l.Upper < l.Lower {
			return nil, fmt.Errorf("soil layer at %gcm: upper limit %g below lower limit %g", l.Base, l.Upper, l.Lower)
		}
		soil.Profile = append(soil.Profile, compiler.SoilLayer{
			Base:       l.Base,
			LowerLimit: l.Lower,
			UpperLimit: l.Upper,
		})
	}

	weather := &inputs.Weather{
		SourceDir: resolve(baseDir, root.Weather.Dir),
		Code:      root.Weather.Station,
	}

	cultivars, err := decodeCultivars(root.Crop.Cultivars)
	if err != nil {
		return nil, err
	}
	crop := &inputs.Crop{
		CropCode:  root.Crop.Code,
		ModelID:   root.Crop.Model,
		Cultivars: cultivars,
	}
	for _, f := range root.Crop.Files {
		crop.Files = append(crop.Files, resolve(baseDir, f))
	}

	start, err := time.Parse(dateLayout, root.Management.Start)
	if err != nil {
		return nil, fmt.Errorf("management start %q: %w", root.Management.Start, err)
	}
	fraction := root.Management.WaterFraction
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("management water_fraction %g outside [0, 1]", fraction)
	}
	management := &inputs.Management{
		SourceFile:    resolve(baseDir, root.Management.File),
		Cultivar:      root.Management.Cultivar,
		Start:         start,
		WaterFraction: fraction,
	}
	if root.Management.ICDate != "" {
		icDate, err := time.Parse(dateLayout, root.Management.ICDate)
		if err != nil {
			return nil, fmt.Errorf("management ic_date %q: %w", root.Management.ICDate, err)
		}
		management.ICDate = &icDate
	}

	return &Scenario{
		Environment: env,
		Soil:        soil,
		Weather:     weather,
		Crop:        crop,
		Management:  management,
	}, nil
}

// decodeCultivars evaluates the cultivars attribute into an id → name map.
// The attribute is an object with arbitrary keys, so it is evaluated as a
// cty value instead of decoding into a fixed struct.
func decodeCultivars(expr hcl.Expression) (map[string]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("crop cultivars: %w", diags)
	}
	if val.IsNull() {
		return nil, fmt.Errorf("crop cultivars must not be null")
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("crop cultivars must be an object of id = name pairs")
	}
	cultivars := make(map[string]string)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		if v.Type() != cty.String {
			return nil, fmt.Errorf("crop cultivar %s: name must be a string", k.AsString())
		}
		cultivars[k.AsString()] = v.AsString()
	}
	return cultivars, nil
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
