package config

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a scenario file.
type fileRoot struct {
	Environment *environmentBlock `hcl:"environment,block"`
	Soil        *soilBlock        `hcl:"soil,block"`
	Weather     *weatherBlock     `hcl:"weather,block"`
	Crop        *cropBlock        `hcl:"crop,block"`
	Management  *managementBlock  `hcl:"management,block"`
	Outputs     []string          `hcl:"outputs,optional"`
	Remain      hcl.Body          `hcl:",remain"`
}

type environmentBlock struct {
	StaticDir  string `hcl:"static_dir"`
	Binary     string `hcl:"binary,optional"`
	Workspace  string `hcl:"workspace,optional"`
	Overwrite  bool   `hcl:"overwrite,optional"`
	Timeout    string `hcl:"timeout,optional"`
	FormatFile string `hcl:"format_file,optional"`
}

type soilBlock struct {
	File   string        `hcl:"file"`
	ID     string        `hcl:"id"`
	Depth  float64       `hcl:"depth"`
	Layers []*layerBlock `hcl:"layer,block"`
}

type layerBlock struct {
	Base  float64 `hcl:"base"`
	Lower float64 `hcl:"lower"`
	Upper float64 `hcl:"upper"`
}

type weatherBlock struct {
	Dir     string `hcl:"dir"`
	Station string `hcl:"station"`
}

type cropBlock struct {
	Files []string `hcl:"files"`
	Code  string   `hcl:"code"`
	Model string   `hcl:"model"`
	// Cultivars maps cultivar id to cultivar name. Kept as a raw expression
	// so arbitrary keys decode without a fixed schema.
	Cultivars hcl.Expression `hcl:"cultivars"`
}

type managementBlock struct {
	File          string  `hcl:"file"`
	Cultivar      string  `hcl:"cultivar"`
	Start         string  `hcl:"start"`
	WaterFraction float64 `hcl:"water_fraction,optional"`
	ICDate        string  `hcl:"ic_date,optional"`
}
