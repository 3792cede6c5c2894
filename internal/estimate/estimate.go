// Package estimate holds the pure numeric helpers the analytics are built on:
// lenient number parsing, one-rep-max estimation, durations and plate loading.
// None of these functions return errors; malformed input evaluates to zero.
package estimate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts a user-entered number to float64.
// Accepts a comma as the decimal separator ("102,5" -> 102.5).
// Empty, non-numeric or non-finite input returns 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseInt parses an integer field, falling back to def when the field is not
// a whole number.
func ParseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// OneRepMax returns the unrounded Wathen estimate for a set.
// A single rep returns the weight unchanged. A non-positive weight or rep
// count, including a blank or malformed field, returns 0.
func OneRepMax(weight, reps float64) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps <= 1 {
		return weight
	}
	return weight * 100 / (48.8 + 53.8*math.Exp(-0.075*reps))
}

// Estimate1RM parses weight and reps and returns the estimate for display.
// The curve is rounded to a whole unit; a single is the logged weight as is.
func Estimate1RM(weight, reps string) float64 {
	w, r := ParseNumber(weight), ParseNumber(reps)
	if r <= 1 {
		return OneRepMax(w, r)
	}
	return math.Round(OneRepMax(w, r))
}

// ParseDuration converts "mm:ss" or a plain number of seconds to seconds.
// Malformed input returns 0.
func ParseDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ":") {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 0 {
		return 0
	}
	sec, err := strconv.Atoi(parts[1])
	if err != nil || sec < 0 || sec > 59 {
		return 0
	}
	return m*60 + sec
}

// FormatDuration renders seconds as "mm:ss". Negative input renders as "00:00".
func FormatDuration(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// DefaultBarWeight is a standard olympic bar.
const DefaultBarWeight = 20.0

// PlateDenominations are the plates available per side, largest first.
var PlateDenominations = []float64{20, 10, 5, 2.5, 1.25}

// Plates returns the plates to load on each side of the bar to reach target,
// largest first. Whatever cannot be loaded with the smallest plate is left
// over rather than reported as an error.
func Plates(target, bar float64) []float64 {
	if target <= 0 || bar <= 0 || target <= bar {
		return []float64{}
	}
	remaining := (target - bar) / 2
	smallest := PlateDenominations[len(PlateDenominations)-1]
	plates := []float64{}
	for _, p := range PlateDenominations {
		if remaining+1e-9 < smallest {
			break
		}
		// float drift on values like 2.5 + 1.25
		for remaining+1e-9 >= p {
			plates = append(plates, p)
			remaining -= p
		}
	}
	return plates
}

// PlatesFromStrings is Plates over user-entered values.
func PlatesFromStrings(target, bar string) []float64 {
	return Plates(ParseNumber(target), ParseNumber(bar))
}
