package domain

import (
	"fmt"
	"math"
)

// Technique identifies the measurement technique that produced a signal file.
// The value matches the TAG token written by the instrument.
type Technique string

const (
	// TechniqueImpedanceSweep is impedance spectroscopy over a frequency sweep.
	TechniqueImpedanceSweep Technique = "EISPOT"
	// TechniqueImpedanceAtFreq is impedance monitored at a fixed frequency over time.
	TechniqueImpedanceAtFreq Technique = "EISMON"
	// TechniqueCyclicVoltammetry is a multi-cycle voltage sweep measurement.
	TechniqueCyclicVoltammetry Technique = "CV"
	// TechniqueCoulometry is controlled-potential coulometry.
	TechniqueCoulometry Technique = "CPC"
	// TechniqueChronoamperometry is current monitored at a fixed potential.
	TechniqueChronoamperometry Technique = "CHRONOA"
)

// TechniqueFromTag maps an instrument TAG token to its technique.
// The second return is false for tokens outside the known set.
func TechniqueFromTag(tag string) (Technique, bool) {
	switch Technique(tag) {
	case TechniqueImpedanceSweep, TechniqueImpedanceAtFreq,
		TechniqueCyclicVoltammetry, TechniqueCoulometry,
		TechniqueChronoamperometry:
		return Technique(tag), true
	}
	return "", false
}

// Canonical column names used in signal tables. Instrument-native column
// codes are renamed to these during table reading and never leak past it.
const (
	ColFreq      = "Freq"
	ColPhase     = "Phase"
	ColImZ       = "Im(Z)"
	ColReZ       = "Re(Z)"
	ColZMod      = "|Z|"
	ColZModDB    = "|Z| dB"
	ColTime      = "Time"
	ColPotential = "E"
	ColCurrent   = "I"
)

// DefaultArea is the electrode area assumed when no geometry metadata is
// present: a 1 mm diameter electrode, pi * (0.05 cm)^2.
const DefaultArea = math.Pi * 0.05 * 0.05

// ReferenceCapArea is the fixed reference capacitance density (20 uF/cm2)
// that normalized corner-frequency factors are reported against.
const ReferenceCapArea = 20e-6

// Row is a single measurement point. Curve is the 1-based sweep segment
// index for cyclic voltammetry tables and zero for every other technique.
type Row struct {
	Values map[string]float64 `json:"values"`
	Curve  int                `json:"curve,omitempty"`
}

// Table is an ordered measurement data table with canonical column names.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) []float64 {
	vals := make([]float64, 0, len(t.Rows))
	for _, r := range t.Rows {
		vals = append(vals, r.Values[name])
	}
	return vals
}

// CurveCount returns the highest Curve index in the table.
func (t *Table) CurveCount() int {
	max := 0
	for _, r := range t.Rows {
		if r.Curve > max {
			max = r.Curve
		}
	}
	return max
}

// CornerParams holds one corner-frequency estimate. A nil *CornerParams on
// DerivedMetrics means the interpolation target was outside the sampled
// range and no estimate exists.
type CornerParams struct {
	Freq    float64 `json:"freq"`     // Hz
	Cap     float64 `json:"cap"`      // F
	CapArea float64 `json:"cap_area"` // F/cm2
	Factor  float64 `json:"factor"`   // relative to ReferenceCapArea
}

// DerivedMetrics carries the quantities computed from an impedance sweep.
type DerivedMetrics struct {
	SeriesResistance float64       `json:"series_resistance"` // Ohm, min |Z|
	DBCorner         *CornerParams `json:"db_corner,omitempty"`
	PhaseCorner      *CornerParams `json:"phase_corner,omitempty"`
}

// Signal is one parsed instrument export. Signals are produced only by the
// classification and parse pipeline; Technique, Label and Params are fixed
// once construction completes.
type Signal struct {
	Technique  Technique       `json:"technique"`
	Label      string          `json:"label"`
	Area       float64         `json:"area"` // cm2
	Params     map[string]any  `json:"params,omitempty"`
	Table      Table           `json:"table"`
	Derived    *DerivedMetrics `json:"derived,omitempty"`
	SourceFile string          `json:"source_file"`
}

// ResolveArea determines the electrode area from metadata in priority order
// area, radius, diameter, falling back to DefaultArea. Only values the unit
// converter recognized as numeric participate.
func ResolveArea(params map[string]any) float64 {
	if v, ok := numericParam(params, "area"); ok {
		return v
	}
	if r, ok := numericParam(params, "radius"); ok {
		return math.Pi * r * r
	}
	if d, ok := numericParam(params, "diameter"); ok {
		return math.Pi * (d / 2) * (d / 2)
	}
	return DefaultArea
}

func numericParam(params map[string]any, key string) (float64, bool) {
	v, ok := params[key].(float64)
	return v, ok
}

// SetArea updates the electrode area and recomputes the area-dependent
// derived quantities in place. The corner frequency depends only on the
// curve shape and is left untouched. Area is only meaningful to adjust on
// impedance-sweep signals; any other technique is rejected.
func (s *Signal) SetArea(area float64) error {
	if s.Technique != TechniqueImpedanceSweep {
		return fmt.Errorf("area is not adjustable for technique %s", s.Technique)
	}
	if area <= 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return fmt.Errorf("invalid electrode area %v", area)
	}

	s.Area = area
	if s.Derived != nil {
		s.Derived.rescaleArea(area)
	}
	return nil
}

func (d *DerivedMetrics) rescaleArea(area float64) {
	for _, cp := range []*CornerParams{d.DBCorner, d.PhaseCorner} {
		if cp == nil {
			continue
		}
		cp.Cap = 1 / (2 * math.Pi * d.SeriesResistance * cp.Freq)
		cp.CapArea = cp.Cap / area
		cp.Factor = cp.CapArea / ReferenceCapArea
	}
}
