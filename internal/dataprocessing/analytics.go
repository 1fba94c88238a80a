package dataprocessing

import (
	"math"
	"sort"

	"dtacli/internal/errors"
	"dtacli/pkg/contracts/domain"
)

const (
	// dbCornerTarget is the dB-magnitude value defining the corner frequency.
	dbCornerTarget = 3.0
	// phaseCornerTarget is the phase angle (degrees) defining the corner frequency.
	phaseCornerTarget = -45.0
)

// computeDerived appends the dB-magnitude column to an impedance-sweep
// table and estimates the series resistance and both corner-frequency
// metrics. An interpolation target outside the sampled range leaves that
// corner absent; it is never an error.
func computeDerived(file string, table *domain.Table, area float64) (*domain.DerivedMetrics, error) {
	if len(table.Rows) == 0 || !table.HasColumn(domain.ColZMod) {
		return nil, errors.TableReadFailure(file, "impedance table has no |Z| data")
	}

	rs := math.Inf(1)
	for _, r := range table.Rows {
		if v := r.Values[domain.ColZMod]; v < rs {
			rs = v
		}
	}

	for i := range table.Rows {
		zmod := table.Rows[i].Values[domain.ColZMod]
		table.Rows[i].Values[domain.ColZModDB] = 20 * math.Log10(zmod/rs)
	}
	table.Columns = append(table.Columns, domain.ColZModDB)

	return &domain.DerivedMetrics{
		SeriesResistance: rs,
		DBCorner:         cornerParams(table, domain.ColZModDB, dbCornerTarget, rs, area),
		PhaseCorner:      cornerParams(table, domain.ColPhase, phaseCornerTarget, rs, area),
	}, nil
}

// cornerParams interpolates frequency over the metric column at the target
// value and derives the interfacial capacitance estimates from it. Returns
// nil when the metric column is missing or the target is out of range.
func cornerParams(table *domain.Table, metric string, target, rs, area float64) *domain.CornerParams {
	if !table.HasColumn(metric) || !table.HasColumn(domain.ColFreq) {
		return nil
	}

	freq, err := interpolate(table.Column(metric), table.Column(domain.ColFreq), target)
	if err != nil {
		return nil
	}

	c := 1 / (2 * math.Pi * rs * freq)
	capArea := c / area
	return &domain.CornerParams{
		Freq:    freq,
		Cap:     c,
		CapArea: capArea,
		Factor:  capArea / domain.ReferenceCapArea,
	}
}

type point struct {
	x, y float64
}

// interpolate evaluates the piecewise-linear interpolation of ys over xs at
// x. Points are sorted by abscissa and duplicates dropped first, since real
// sweeps are not guaranteed monotonic in the metric column; results on
// noisy data are best effort. Out-of-range targets return ErrOutOfRange.
func interpolate(xs, ys []float64, x float64) (float64, error) {
	pts := make([]point, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) ||
			math.IsInf(xs[i], 0) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, point{xs[i], ys[i]})
	}

	sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	uniq := pts[:0]
	for _, p := range pts {
		if len(uniq) > 0 && uniq[len(uniq)-1].x == p.x {
			continue
		}
		uniq = append(uniq, p)
	}

	if len(uniq) < 2 || x < uniq[0].x || x > uniq[len(uniq)-1].x {
		return 0, errors.ErrOutOfRange
	}

	hi := sort.Search(len(uniq), func(i int) bool { return uniq[i].x >= x })
	if uniq[hi].x == x {
		return uniq[hi].y, nil
	}

	lo := hi - 1
	t := (x - uniq[lo].x) / (uniq[hi].x - uniq[lo].x)
	return uniq[lo].y + t*(uniq[hi].y-uniq[lo].y), nil
}
