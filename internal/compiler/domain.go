package compiler

import "time"

// SoilLayer is one horizon of a soil profile. Base is the depth of the
// layer's lower boundary in centimeters; LowerLimit and UpperLimit are the
// volumetric water limits of the layer.
type SoilLayer struct {
	Base       float64
	LowerLimit float64
	UpperLimit float64
}

// SoilProfile is the read/write contract a soil input must satisfy. The
// profile owns its own fixed-format encoding; the compiler only consumes the
// typed attributes it derives management fields from.
type SoilProfile interface {
	// ID returns the engine's soil profile identifier.
	ID() string
	// TotalDepth returns the profile depth in centimeters.
	TotalDepth() float64
	// Layers returns the profile's horizons ordered by ascending base depth.
	Layers() []SoilLayer
	// Write serializes the profile to the given file path.
	Write(path string) error
}

// WeatherStation is the contract a weather input must satisfy.
type WeatherStation interface {
	// StationCode returns the four-character station identifier.
	StationCode() string
	// Write serializes the station's daily series into the given directory.
	Write(dir string) error
}

// Crop is the contract a crop input must satisfy.
type Crop interface {
	// Code returns the two-letter crop code, e.g. "MZ".
	Code() string
	// Model returns the simulation model identifier, e.g. "MZCER048".
	Model() string
	// CultivarName looks up the display name of a cultivar id.
	CultivarName(id string) (string, bool)
	// Write serializes the crop definition files into the given directory.
	Write(dir string) error
}

// Management is the contract a field-management plan must satisfy. Write
// receives the Derived values computed from the other three inputs.
type Management interface {
	// CultivarID returns the selected cultivar id.
	CultivarID() string
	// SimStart returns the simulation start date.
	SimStart() time.Time
	// InitialWaterFraction returns the configured initial saturation
	// fraction in [0, 1].
	InitialWaterFraction() float64
	// InitialConditionsDate returns the explicit initial-conditions date,
	// or false when it should default to the simulation start.
	InitialConditionsDate() (time.Time, bool)
	// Write serializes the experiment file to path with the derived fields
	// applied.
	Write(path string, d Derived) error
}
