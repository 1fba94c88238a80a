package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechniqueFromTag(t *testing.T) {
	for _, tag := range []string{"EISPOT", "EISMON", "CV", "CPC", "CHRONOA"} {
		tech, ok := TechniqueFromTag(tag)
		assert.True(t, ok, tag)
		assert.Equal(t, Technique(tag), tech)
	}

	_, ok := TechniqueFromTag("OCP")
	assert.False(t, ok)
	_, ok = TechniqueFromTag("")
	assert.False(t, ok)
}

func TestResolveArea(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]any
		expected float64
	}{
		{
			name:     "explicit area wins over other geometry keys",
			params:   map[string]any{"area": 1.0, "radius": 5.0, "diameter": 9.0},
			expected: 1.0,
		},
		{
			name:     "radius",
			params:   map[string]any{"radius": 0.1},
			expected: math.Pi * 0.01,
		},
		{
			name:     "diameter",
			params:   map[string]any{"diameter": 0.2},
			expected: math.Pi * 0.1 * 0.1,
		},
		{
			name:     "no geometry keys falls back to 1mm electrode",
			params:   map[string]any{"label": "S1"},
			expected: DefaultArea,
		},
		{
			name:     "non-numeric area value is ignored",
			params:   map[string]any{"area": "big"},
			expected: DefaultArea,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ResolveArea(tt.params), 1e-12)
		})
	}
}

func TestSetAreaRecomputesDerived(t *testing.T) {
	rs := 100.0
	freq := 5000.0
	c := 1 / (2 * math.Pi * rs * freq)

	sig := &Signal{
		Technique: TechniqueImpedanceSweep,
		Area:      1.0,
		Derived: &DerivedMetrics{
			SeriesResistance: rs,
			DBCorner: &CornerParams{
				Freq: freq, Cap: c, CapArea: c, Factor: c / ReferenceCapArea,
			},
			PhaseCorner: &CornerParams{
				Freq: freq * 2, Cap: c / 2, CapArea: c / 2, Factor: c / 2 / ReferenceCapArea,
			},
		},
	}

	require.NoError(t, sig.SetArea(2.0))

	assert.Equal(t, 2.0, sig.Area)
	// Frequency depends only on the curve shape, never on area.
	assert.Equal(t, freq, sig.Derived.DBCorner.Freq)
	assert.Equal(t, freq*2, sig.Derived.PhaseCorner.Freq)
	assert.InDelta(t, c/2, sig.Derived.DBCorner.CapArea, 1e-18)
	assert.InDelta(t, c/2/ReferenceCapArea, sig.Derived.DBCorner.Factor, 1e-12)
	assert.InDelta(t, c/4, sig.Derived.PhaseCorner.CapArea, 1e-18)
}

func TestSetAreaRejectsOtherTechniques(t *testing.T) {
	for _, tech := range []Technique{
		TechniqueImpedanceAtFreq,
		TechniqueCyclicVoltammetry,
		TechniqueCoulometry,
		TechniqueChronoamperometry,
	} {
		sig := &Signal{Technique: tech, Area: 1.0}
		assert.Error(t, sig.SetArea(2.0), string(tech))
		assert.Equal(t, 1.0, sig.Area)
	}
}

func TestSetAreaRejectsInvalidValues(t *testing.T) {
	sig := &Signal{Technique: TechniqueImpedanceSweep, Area: 1.0}
	assert.Error(t, sig.SetArea(0))
	assert.Error(t, sig.SetArea(-1))
	assert.Error(t, sig.SetArea(math.NaN()))
	assert.Equal(t, 1.0, sig.Area)
}

func TestSetAreaWithAbsentCorners(t *testing.T) {
	sig := &Signal{
		Technique: TechniqueImpedanceSweep,
		Area:      1.0,
		Derived:   &DerivedMetrics{SeriesResistance: 50},
	}
	require.NoError(t, sig.SetArea(3.0))
	assert.Nil(t, sig.Derived.DBCorner)
	assert.Nil(t, sig.Derived.PhaseCorner)
}

func TestTableHelpers(t *testing.T) {
	table := Table{
		Columns: []string{ColTime, ColCurrent},
		Rows: []Row{
			{Values: map[string]float64{ColTime: 0.1, ColCurrent: 1}, Curve: 1},
			{Values: map[string]float64{ColTime: 0.2, ColCurrent: 2}, Curve: 2},
		},
	}

	assert.True(t, table.HasColumn(ColTime))
	assert.False(t, table.HasColumn(ColFreq))
	assert.Equal(t, []float64{1, 2}, table.Column(ColCurrent))
	assert.Equal(t, 2, table.CurveCount())
}
