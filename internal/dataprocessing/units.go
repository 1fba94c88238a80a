package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// unitFactor maps SI prefixes to powers of ten. The empty prefix maps to 1.
var unitFactor = map[string]float64{
	"T": 1e12,
	"G": 1e9,
	"M": 1e6,
	"k": 1e3,
	"":  1,
	"c": 1e-2,
	"m": 1e-3,
	"u": 1e-6,
	"µ": 1e-6,
	"n": 1e-9,
	"p": 1e-12,
	"f": 1e-15,
}

// factorDefault maps a base unit to the prefix its normalized form assumes.
// Currents normalize to microamps, lengths to centimeters, everything else
// to the unprefixed unit.
var factorDefault = map[string]string{
	"v":   "",
	"a":   "u",
	"ohm": "",
	"m":   "c",
	"s":   "",
	"min": "",
}

// valuePattern matches <number><optional SI prefix><unit letters><optional exponent>.
var valuePattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([TGMkcmuµnpf]?)([a-zA-Z]+)(\d*)$`)

// bareNumber matches a plain unsigned decimal.
var bareNumber = regexp.MustCompile(`^\d+\.?\d*$`)

// ConvertValue normalizes a metadata value token such as "500mV" or "10kOhm"
// to a float in the unit's canonical scale. The second return is false when
// the token is neither a recognized quantity nor a bare number; the caller
// keeps the raw string in that case.
func ConvertValue(token string) (float64, bool) {
	if m := valuePattern.FindStringSubmatch(token); m != nil {
		num, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}

		prefix := m[2]
		unit := strings.ToLower(m[3])
		exponent := 1.0
		if m[4] != "" {
			exponent, _ = strconv.ParseFloat(m[4], 64)
		}

		defPrefix, ok := factorDefault[unit]
		if !ok {
			return 0, false
		}

		factor := unitFactor[prefix] / unitFactor[defPrefix]
		return num * math.Pow(factor, exponent), true
	}

	if bareNumber.MatchString(token) {
		num, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, false
		}
		return num, true
	}

	return 0, false
}
