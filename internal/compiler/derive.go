package compiler

import (
	"fmt"
	"sort"
	"time"
)

// yearMonthLayout renders a date as two-digit year + two-digit month,
// e.g. "2301" for January 2023.
const yearMonthLayout = "0601"

// dayOfYearLayout renders a date as two-digit year + day of year,
// e.g. "23015" for Jan 15 2023.
const dayOfYearLayout = "06002"

// InitialWaterRow is one layer of the initial-conditions soil water table.
type InitialWaterRow struct {
	Base     float64 // ICBL, layer base depth in cm
	Water    float64 // SH2O, initial volumetric water content
	Ammonium float64 // SNH4
	Nitrate  float64 // SNO3
}

// Derived holds every management-plan field that is computed from the other
// domain inputs rather than supplied directly. It is the compiler's output
// contract toward the management writer; the source inputs stay untouched.
type Derived struct {
	CropCode     string
	CultivarName string

	// WeatherStationID is the field's weather identifier: station code
	// concatenated with the run's start year and month.
	WeatherStationID string

	SoilDepth float64
	SoilID    string

	// InitialConditionsDate is the IC date in two-digit-year/day-of-year
	// form, defaulted to the simulation start when the plan leaves it unset.
	InitialConditionsDate string

	InitialWater []InitialWaterRow

	// Model is the simulation-controls model identifier, from the crop.
	Model string
}

// BuildDerived computes the derived management fields from the four domain
// inputs without mutating any of them.
func BuildDerived(soil SoilProfile, weather WeatherStation, crop Crop, management Management) (Derived, error) {
	cultivarID := management.CultivarID()
	cultivarName, ok := crop.CultivarName(cultivarID)
	if !ok {
		return Derived{}, fmt.Errorf("crop %s has no cultivar %q", crop.Code(), cultivarID)
	}

	start := management.SimStart()
	icDate, ok := management.InitialConditionsDate()
	if !ok {
		icDate = start
	}

	return Derived{
		CropCode:              crop.Code(),
		CultivarName:          cultivarName,
		WeatherStationID:      weather.StationCode() + start.Format(yearMonthLayout),
		SoilDepth:             soil.TotalDepth(),
		SoilID:                soil.ID(),
		InitialConditionsDate: icDate.Format(dayOfYearLayout),
		InitialWater:          buildInitialWater(soil.Layers(), management.InitialWaterFraction()),
		Model:                 crop.Model(),
	}, nil
}

// buildInitialWater computes the per-layer initial soil water table. Water
// content interpolates between the layer's limits by the plan's saturation
// fraction; ammonium is zero everywhere and nitrate is seeded only in the
// topmost layer.
func buildInitialWater(layers []SoilLayer, fraction float64) []InitialWaterRow {
	rows := make([]InitialWaterRow, len(layers))
	for i, layer := range layers {
		rows[i] = InitialWaterRow{
			Base:  layer.Base,
			Water: layer.LowerLimit + fraction*(layer.UpperLimit-layer.LowerLimit),
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Base < rows[j].Base })
	if len(rows) > 0 {
		rows[0].Nitrate = 1.0
	}
	return rows
}

// ExperimentFileName derives the experiment file name from the weather
// station, the simulation start and the crop code, e.g. "UAFL2301.MZX".
func ExperimentFileName(weather WeatherStation, crop Crop, start time.Time) string {
	return fmt.Sprintf("%s%s.%sX", weather.StationCode(), start.Format(yearMonthLayout), crop.Code())
}
