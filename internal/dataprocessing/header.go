package dataprocessing

import (
	"strings"

	"dtacli/internal/errors"
)

const (
	// preambleLines is the fixed instrument preamble at the top of every
	// export, skipped unconditionally before the note block.
	preambleLines = 6

	// settingsSentinel marks the start of the instrument settings block and
	// the end of user metadata.
	settingsSentinel = "PSTAT"
)

// parseHeader reads the free-form note block into a lower-cased key map.
// Values that the unit converter recognizes are stored as normalized
// floats, everything else as the raw string. A blank first note line means
// the file carries no metadata; the settings sentinel terminates the block.
func parseHeader(file string, lines []string) (map[string]any, error) {
	params := make(map[string]any)

	for i := preambleLines; i < len(lines); i++ {
		line := lines[i]
		if i == preambleLines && strings.TrimSpace(line) == "" {
			return params, nil
		}
		if strings.HasPrefix(line, settingsSentinel) {
			break
		}

		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			return nil, errors.MalformedHeader(file, i+1, line)
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		raw := strings.TrimSpace(parts[1])
		if v, ok := ConvertValue(raw); ok {
			params[key] = v
		} else {
			params[key] = raw
		}
	}

	return params, nil
}
