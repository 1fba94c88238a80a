package dataprocessing

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"dtacli/internal/errors"
	"dtacli/pkg/contracts/domain"
)

// noiseColumns are instrument bookkeeping columns dropped from every table.
// The empty name covers the unnamed leading row-index column.
var noiseColumns = map[string]bool{
	"":        true,
	"Pt":      true,
	"IERange": true,
	"Over":    true,
}

// columnRenames maps instrument column codes to canonical names. Renaming
// is best effort; unrecognized columns pass through unchanged.
var columnRenames = map[string]string{
	"Zphz":  domain.ColPhase,
	"Zimag": domain.ColImZ,
	"Zreal": domain.ColReZ,
	"Zmod":  domain.ColZMod,
	"T":     domain.ColTime,
	"Vf":    domain.ColPotential,
	"Im":    domain.ColCurrent,
}

// decodeLines reads a .DTA export and splits it into lines. Gamry exports
// are Windows-1252 encoded, not UTF-8; decoding up front keeps non-ASCII
// header text intact.
func decodeLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}

	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// findMarker returns the index of the first line containing token, or -1.
func findMarker(lines []string, token string) int {
	for i, line := range lines {
		if strings.Contains(line, token) {
			return i
		}
	}
	return -1
}

// readTableRange reads one tab-delimited table. The row at headerIdx is the
// column header, the row beneath it is the units row and is always skipped,
// and data runs until end (exclusive), a blank line, or EOF. Noise columns
// are dropped and instrument codes renamed before rows are materialized.
func readTableRange(file string, lines []string, headerIdx, end int) (domain.Table, error) {
	if headerIdx < 0 || headerIdx >= len(lines) {
		return domain.Table{}, errors.TableReadFailure(file, "table header row not found")
	}
	if end < 0 || end > len(lines) {
		end = len(lines)
	}

	rawCols := strings.Split(lines[headerIdx], "\t")
	var keep []int
	var cols []string
	for i, c := range rawCols {
		name := strings.TrimSpace(c)
		if noiseColumns[name] {
			continue
		}
		if canon, ok := columnRenames[name]; ok {
			name = canon
		}
		keep = append(keep, i)
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return domain.Table{}, errors.TableReadFailure(file, "table header row has no data columns")
	}

	var rows []domain.Row
	for i := headerIdx + 2; i < end; i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			break
		}

		fields := strings.Split(line, "\t")
		vals := make(map[string]float64, len(cols))
		for j, idx := range keep {
			if idx >= len(fields) {
				return domain.Table{}, errors.TableReadFailure(file,
					fmt.Sprintf("line %d: truncated row, missing column %q", i+1, cols[j]))
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
			if err != nil {
				return domain.Table{}, errors.TableReadFailure(file,
					fmt.Sprintf("line %d: column %q: non-numeric value %q", i+1, cols[j], fields[idx]))
			}
			vals[cols[j]] = v
		}
		rows = append(rows, domain.Row{Values: vals})
	}

	return domain.Table{Columns: cols, Rows: rows}, nil
}

// scaleColumn multiplies every value of the named column in place. Missing
// columns are a no-op, matching the best-effort renaming contract.
func scaleColumn(table *domain.Table, name string, factor float64) {
	if !table.HasColumn(name) {
		return
	}
	for i := range table.Rows {
		table.Rows[i].Values[name] *= factor
	}
}
