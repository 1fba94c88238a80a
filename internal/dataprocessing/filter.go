package dataprocessing

import (
	"strings"

	"dtacli/pkg/contracts/domain"
)

// Filter selects a subset of a signal collection. Zero-valued fields are
// not applied; supplied predicates are ANDed.
type Filter struct {
	// Technique, when non-empty, requires an exact technique match.
	Technique domain.Technique
	// LabelContains, when non-empty, requires the label to contain it.
	LabelContains string
	// Params requires each key (matched case-insensitively) to be present
	// in the signal's metadata with an equal value. An absent key excludes
	// the signal.
	Params map[string]any
}

// FilterSignals returns the ordered subsequence of signals satisfying every
// supplied predicate. The input is never mutated.
func FilterSignals(signals []*domain.Signal, f Filter) []*domain.Signal {
	var filtered []*domain.Signal
	for _, sig := range signals {
		if f.Technique != "" && sig.Technique != f.Technique {
			continue
		}
		if f.LabelContains != "" && !strings.Contains(sig.Label, f.LabelContains) {
			continue
		}
		if !matchParams(sig.Params, f.Params) {
			continue
		}
		filtered = append(filtered, sig)
	}
	return filtered
}

func matchParams(params, want map[string]any) bool {
	for key, val := range want {
		got, ok := params[strings.ToLower(key)]
		if !ok || got != val {
			return false
		}
	}
	return true
}
