package dataprocessing

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"dtacli/internal/errors"
	"dtacli/pkg/contracts/domain"
)

const (
	// markerImpedance introduces the data table of EISPOT/EISMON exports.
	markerImpedance = "ZCURVE"
	// markerCurve introduces the data table of CPC/CHRONOA exports and,
	// suffixed with the segment number, each CV sweep segment.
	markerCurve = "CURVE"

	// microampsPerAmp rescales instrument currents (A) to microamps.
	microampsPerAmp = 1e6
)

// tagPattern extracts the technique token from the TAG line.
var tagPattern = regexp.MustCompile(`TAG\t(\w+)`)

// Classify reads line 2 of a .DTA export and maps its TAG token to a
// technique. Unknown tokens return ErrUnrecognizedTechnique so batch
// enumeration can skip the file.
func Classify(path string) (domain.Technique, error) {
	lines, err := decodeLines(path)
	if err != nil {
		return "", err
	}
	return classifyLines(path, lines)
}

func classifyLines(file string, lines []string) (domain.Technique, error) {
	if len(lines) < 2 {
		return "", errors.UnrecognizedTechnique(file, "")
	}
	m := tagPattern.FindStringSubmatch(lines[1])
	if m == nil {
		return "", errors.UnrecognizedTechnique(file, lines[1])
	}
	tech, ok := domain.TechniqueFromTag(m[1])
	if !ok {
		return "", errors.UnrecognizedTechnique(file, m[1])
	}
	return tech, nil
}

// ParseFile classifies a .DTA export and parses it into a Signal: header
// metadata with unit normalization, the technique's data table(s), and for
// impedance sweeps the derived corner-frequency metrics.
func ParseFile(path string) (*domain.Signal, error) {
	lines, err := decodeLines(path)
	if err != nil {
		return nil, err
	}

	tech, err := classifyLines(path, lines)
	if err != nil {
		return nil, err
	}

	params, err := parseHeader(path, lines)
	if err != nil {
		return nil, err
	}

	sig := &domain.Signal{
		Technique:  tech,
		Label:      resolveLabel(path, params),
		Area:       domain.ResolveArea(params),
		Params:     params,
		SourceFile: path,
	}

	var table domain.Table
	switch tech {
	case domain.TechniqueImpedanceSweep, domain.TechniqueImpedanceAtFreq:
		table, err = readMarkedTable(path, lines, markerImpedance)
	case domain.TechniqueCyclicVoltammetry:
		table, err = readCurveSegments(path, lines)
	case domain.TechniqueCoulometry, domain.TechniqueChronoamperometry:
		table, err = readMarkedTable(path, lines, markerCurve)
	}
	if err != nil {
		return nil, err
	}

	switch tech {
	case domain.TechniqueImpedanceSweep:
		derived, err := computeDerived(path, &table, sig.Area)
		if err != nil {
			return nil, err
		}
		sig.Derived = derived
	case domain.TechniqueCyclicVoltammetry,
		domain.TechniqueCoulometry, domain.TechniqueChronoamperometry:
		scaleColumn(&table, domain.ColCurrent, microampsPerAmp)
	}

	sig.Table = table
	slog.Debug("parsed signal file",
		slog.String("file", filepath.Base(path)),
		slog.String("technique", string(tech)),
		slog.Int("rows", len(table.Rows)))
	return sig, nil
}

// readMarkedTable locates the table marker and reads the single table that
// follows it: the next line is the column header, the line beneath that the
// units row.
func readMarkedTable(file string, lines []string, marker string) (domain.Table, error) {
	idx := findMarker(lines, marker)
	if idx < 0 {
		return domain.Table{}, errors.TableReadFailure(file,
			fmt.Sprintf("marker %q not found", marker))
	}
	return readTableRange(file, lines, idx+1, len(lines))
}

// readCurveSegments re-assembles a cyclic voltammetry file from its
// CURVE1..CURVEn sub-tables. Each segment carries its own header and units
// rows beneath its marker and runs to the next marker (exclusive) or EOF;
// rows are tagged with the 1-based segment index and concatenated in curve
// order, so Curve values come out contiguous with no gaps.
func readCurveSegments(file string, lines []string) (domain.Table, error) {
	markers := findCurveMarkers(lines)
	if len(markers) == 0 {
		return domain.Table{}, errors.TableReadFailure(file,
			fmt.Sprintf("marker %q not found", markerCurve+"1"))
	}

	var table domain.Table
	for k, idx := range markers {
		end := len(lines)
		if k+1 < len(markers) {
			end = markers[k+1]
		}

		segment, err := readTableRange(file, lines, idx+1, end)
		if err != nil {
			return domain.Table{}, err
		}

		for i := range segment.Rows {
			segment.Rows[i].Curve = k + 1
		}
		if k == 0 {
			table.Columns = segment.Columns
		}
		table.Rows = append(table.Rows, segment.Rows...)
	}

	return table, nil
}

// findCurveMarkers returns the line indices of CURVE1, CURVE2, ... in
// sequence. Searching for the next number only after the previous match
// keeps CURVE1 from also claiming CURVE10.
func findCurveMarkers(lines []string) []int {
	var idxs []int
	next := 1
	for i, line := range lines {
		if strings.Contains(line, fmt.Sprintf("%s%d", markerCurve, next)) {
			idxs = append(idxs, i)
			next++
		}
	}
	return idxs
}

// resolveLabel prefers the label metadata key and falls back to the file
// name without its extension.
func resolveLabel(path string, params map[string]any) string {
	if v, ok := params["label"]; ok {
		return fmt.Sprint(v)
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
