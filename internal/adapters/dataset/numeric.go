package dataset

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// sentinels are the spreadsheet missing-data markers that must never be
// treated as numbers.
var sentinels = map[string]struct{}{
	"not applicable": {},
	"not available":  {},
	"na":             {},
	"n/a":            {},
	"nan":            {},
	"":               {},
}

// IsSentinel reports whether a raw cell value is a missing-data marker.
func IsSentinel(raw string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ToNum coerces a raw cell value to a finite float. Sentinel markers and
// anything unparseable report ok=false; the function never fails hard.
func ToNum(raw string) (float64, bool) {
	if IsSentinel(raw) {
		return 0, false
	}
	v, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
