// Package helpers provides small conversion and clamping utilities shared
// by the HTTP handlers.
package helpers

import (
	"math"
	"strconv"
	"strings"
)

// ClampInt restricts v to the range [lowerLimit, upperLimit].
func ClampInt(v, lowerLimit, upperLimit int) int {
	if v < lowerLimit {
		return lowerLimit
	}
	if v > upperLimit {
		return upperLimit
	}
	return v
}

// ClampUint64ToInt64 converts v to int64, saturating at math.MaxInt64.
func ClampUint64ToInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v) //nolint:gosec // clamped to valid range
}

// IntParam parses s as an int clamped to [lowerLimit, upperLimit],
// returning def when s is empty or malformed.
func IntParam(s string, def, lowerLimit, upperLimit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return ClampInt(def, lowerLimit, upperLimit)
	}
	return ClampInt(n, lowerLimit, upperLimit)
}

// FlagParam reports whether a query flag is set: "true" or "1", case
// insensitive.
func FlagParam(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "true") || s == "1"
}
