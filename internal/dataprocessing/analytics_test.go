package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtacli/internal/errors"
	"dtacli/pkg/contracts/domain"
)

func TestInterpolate(t *testing.T) {
	xs := []float64{0, 10, 20}
	ys := []float64{100, 200, 400}

	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"midpoint of first segment", 5, 150},
		{"midpoint of second segment", 15, 300},
		{"exact sample", 10, 200},
		{"lower bound", 0, 100},
		{"upper bound", 20, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interpolate(xs, ys, tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestInterpolateOutOfRange(t *testing.T) {
	xs := []float64{0, 10}
	ys := []float64{1, 2}

	_, err := interpolate(xs, ys, -1)
	assert.True(t, errors.Is(err, errors.ErrOutOfRange))
	_, err = interpolate(xs, ys, 11)
	assert.True(t, errors.Is(err, errors.ErrOutOfRange))
}

func TestInterpolateUnsortedInput(t *testing.T) {
	// Noisy sweeps are not monotonic in the metric column; points are
	// sorted by abscissa before interpolating.
	xs := []float64{20, 0, 10}
	ys := []float64{400, 100, 200}

	got, err := interpolate(xs, ys, 15)
	require.NoError(t, err)
	assert.InDelta(t, 300, got, 1e-12)
}

func TestInterpolateDuplicateAbscissae(t *testing.T) {
	xs := []float64{0, 10, 10, 20}
	ys := []float64{100, 200, 999, 400}

	got, err := interpolate(xs, ys, 10)
	require.NoError(t, err)
	assert.InDelta(t, 200, got, 1e-12)
}

func TestInterpolateDegenerateInput(t *testing.T) {
	_, err := interpolate(nil, nil, 0)
	assert.True(t, errors.Is(err, errors.ErrOutOfRange))

	// A single distinct abscissa cannot span any range.
	_, err = interpolate([]float64{5, 5}, []float64{1, 2}, 5)
	assert.True(t, errors.Is(err, errors.ErrOutOfRange))
}

func TestComputeDerivedRequiresMagnitude(t *testing.T) {
	table := domain.Table{
		Columns: []string{domain.ColTime},
		Rows:    []domain.Row{{Values: map[string]float64{domain.ColTime: 1}}},
	}
	_, err := computeDerived("x.DTA", &table, 1.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTableReadFailure))

	empty := domain.Table{Columns: []string{domain.ColZMod}}
	_, err = computeDerived("x.DTA", &empty, 1.0)
	assert.Error(t, err)
}

func TestCornerParamsMissingMetricColumn(t *testing.T) {
	table := domain.Table{
		Columns: []string{domain.ColFreq, domain.ColZMod},
		Rows: []domain.Row{
			{Values: map[string]float64{domain.ColFreq: 100, domain.ColZMod: 10}},
			{Values: map[string]float64{domain.ColFreq: 10, domain.ColZMod: 40}},
		},
	}
	// No Phase column: the phase corner is absent, not an error.
	assert.Nil(t, cornerParams(&table, domain.ColPhase, phaseCornerTarget, 10, 1.0))
}
