package compiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSoil, fakeWeather, fakeCrop and fakeManagement are minimal in-memory
// collaborators for exercising the compiler without any real input files.

type fakeSoil struct {
	id     string
	depth  float64
	layers []SoilLayer
	writes []string
}

func (s *fakeSoil) ID() string { return s.id }
func (s *fakeSoil) TotalDepth() float64 { return s.depth }
func (s *fakeSoil) Layers() []SoilLayer { return s.layers }
func (s *fakeSoil) Write(path string) error {
	s.writes = append(s.writes, path)
	return nil
}

type fakeWeather struct {
	code   string
	writes []string
}

func (w *fakeWeather) StationCode() string { return w.code }
func (w *fakeWeather) Write(dir string) error {
	w.writes = append(w.writes, dir)
	return nil
}

type fakeCrop struct {
	code      string
	model     string
	cultivars map[string]string
	writes    []string
}

func (c *fakeCrop) Code() string { return c.code }
func (c *fakeCrop) Model() string { return c.model }
func (c *fakeCrop) CultivarName(id string) (string, bool) {
	name, ok := c.cultivars[id]
	return name, ok
}
func (c *fakeCrop) Write(dir string) error {
	c.writes = append(c.writes, dir)
	return nil
}

type fakeManagement struct {
	cultivar string
	start    time.Time
	fraction float64
	icDate   *time.Time

	writes  []string
	derived []Derived
}

func (m *fakeManagement) CultivarID() string { return m.cultivar }
func (m *fakeManagement) SimStart() time.Time { return m.start }
func (m *fakeManagement) InitialWaterFraction() float64 { return m.fraction }
func (m *fakeManagement) InitialConditionsDate() (time.Time, bool) {
	if m.icDate == nil {
		return time.Time{}, false
	}
	return *m.icDate, true
}
func (m *fakeManagement) Write(path string, d Derived) error {
	m.writes = append(m.writes, path)
	m.derived = append(m.derived, d)
	return nil
}

func testInputs() (*fakeSoil, *fakeWeather, *fakeCrop, *fakeManagement) {
	soil := &fakeSoil{
		id:    "IBMZ910014",
		depth: 210,
		layers: []SoilLayer{
			{Base: 20, LowerLimit: 0.10, UpperLimit: 0.30},
			{Base: 50, LowerLimit: 0.12, UpperLimit: 0.32},
		},
	}
	weather := &fakeWeather{code: "UAFL"}
	crop := &fakeCrop{
		code:      "MZ",
		model:     "MZCER048",
		cultivars: map[string]string{"IB0001": "PC0001"},
	}
	management := &fakeManagement{
		cultivar: "IB0001",
		start:    time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		fraction: 0.5,
	}
	return soil, weather, crop, management
}

func TestBuildDerived(t *testing.T) {
	t.Parallel()

	soil, weather, crop, management := testInputs()

	d, err := BuildDerived(soil, weather, crop, management)
	require.NoError(t, err)

	assert.Equal(t, "MZ", d.CropCode)
	assert.Equal(t, "PC0001", d.CultivarName)
	assert.Equal(t, "UAFL2301", d.WeatherStationID, "station code concatenated with start year+month")
	assert.Equal(t, 210.0, d.SoilDepth)
	assert.Equal(t, "IBMZ910014", d.SoilID)
	assert.Equal(t, "MZCER048", d.Model)
}

func TestBuildDerived_InitialWaterContent(t *testing.T) {
	t.Parallel()

	soil, weather, crop, management := testInputs()

	d, err := BuildDerived(soil, weather, crop, management)
	require.NoError(t, err)

	require.Len(t, d.InitialWater, 2)
	// lower 0.10, upper 0.30, fraction 0.5 -> exactly 0.20.
	assert.Equal(t, 0.20, d.InitialWater[0].Water)
}

func TestBuildDerived_TopLayerNitrateSeeding(t *testing.T) {
	t.Parallel()

	soil, weather, crop, management := testInputs()
	// Hand the layers over unsorted to prove the table is ordered by depth.
	soil.layers = []SoilLayer{
		{Base: 90, LowerLimit: 0.14, UpperLimit: 0.34},
		{Base: 20, LowerLimit: 0.10, UpperLimit: 0.30},
		{Base: 50, LowerLimit: 0.12, UpperLimit: 0.32},
	}

	d, err := BuildDerived(soil, weather, crop, management)
	require.NoError(t, err)

	require.Len(t, d.InitialWater, 3)
	assert.Equal(t, []float64{20, 50, 90}, []float64{
		d.InitialWater[0].Base, d.InitialWater[1].Base, d.InitialWater[2].Base,
	}, "rows must be sorted ascending by layer depth")

	for i, row := range d.InitialWater {
		assert.Equal(t, 0.0, row.Ammonium, "ammonium must be zero in every row")
		if i == 0 {
			assert.Equal(t, 1.0, row.Nitrate, "topmost layer carries the nitrate seed")
		} else {
			assert.Equal(t, 0.0, row.Nitrate, "only the topmost layer carries nitrate")
		}
	}
}

func TestBuildDerived_InitialConditionsDate(t *testing.T) {
	t.Parallel()

	t.Run("defaults to simulation start", func(t *testing.T) {
		soil, weather, crop, management := testInputs()

		d, err := BuildDerived(soil, weather, crop, management)
		require.NoError(t, err)

		assert.Equal(t, "23015", d.InitialConditionsDate, "Jan 15 is day of year 15")
	})

	t.Run("explicit date wins", func(t *testing.T) {
		soil, weather, crop, management := testInputs()
		ic := time.Date(2023, time.February, 14, 0, 0, 0, 0, time.UTC)
		management.icDate = &ic

		d, err := BuildDerived(soil, weather, crop, management)
		require.NoError(t, err)

		assert.Equal(t, "23045", d.InitialConditionsDate)
	})
}

func TestBuildDerived_UnknownCultivar(t *testing.T) {
	t.Parallel()

	soil, weather, crop, management := testInputs()
	management.cultivar = "IB9999"

	_, err := BuildDerived(soil, weather, crop, management)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IB9999")
}

func TestExperimentFileName(t *testing.T) {
	t.Parallel()

	_, weather, crop, management := testInputs()

	name := ExperimentFileName(weather, crop, management.start)
	assert.Equal(t, "UAFL2301.MZX", name)
}
