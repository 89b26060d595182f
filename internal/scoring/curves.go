// Package scoring maps body measurements to 0-10 trait scores against breed
// reference curves and folds them into one weighted final score and verdict.
package scoring

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// CurvePoint is one breakpoint of a reference curve: the score awarded at a
// given measurement value.
type CurvePoint struct {
	Value float64 `toml:"value"`
	Score float64 `toml:"score"`
}

// Curve is an ordered piecewise-linear reference curve. Values outside the
// table clamp to the nearest endpoint score; the curve never extrapolates.
type Curve []CurvePoint

// Score interpolates the 0-10 trait score for a measurement value.
func (c Curve) Score(value float64) float64 {
	if len(c) == 0 {
		return 0
	}
	if value <= c[0].Value {
		return c[0].Score
	}
	last := c[len(c)-1]
	if value >= last.Value {
		return last.Score
	}
	for i := 1; i < len(c); i++ {
		if value > c[i].Value {
			continue
		}
		lo, hi := c[i-1], c[i]
		span := hi.Value - lo.Value
		if span <= 0 {
			return hi.Score
		}
		frac := (value - lo.Value) / span
		return lo.Score + frac*(hi.Score-lo.Score)
	}
	return last.Score
}

// valid reports whether the curve breakpoints are strictly ordered by value.
func (c Curve) valid() bool {
	if len(c) < 2 {
		return false
	}
	return sort.SliceIsSorted(c, func(i, j int) bool { return c[i].Value < c[j].Value })
}

// Table maps trait name to its reference curve for one breed class.
type Table map[string]Curve

// defaultTable is the generic reference used when the breed is unrecognized.
// Ranges derive from the field calibration the upstream pose backend shipped
// with: height 100-150 cm, body length 120-180 cm, rump optimum 25 degrees
// +/- 10, rear leg set optimum 155 degrees +/- 20.
var defaultTable = Table{
	"height":      {{100, 0}, {150, 10}},
	"body_length": {{120, 0}, {180, 10}},
	"rump":        {{15, 0}, {25, 10}, {35, 0}},
	"rear_leg":    {{135, 0}, {155, 10}, {175, 0}},
}

// breedTables holds breed-class specific reference curves, keyed by folded
// breed label. Unlisted breeds fall back to the generic table.
var breedTables = map[string]Table{
	"holstein_friesian": {
		"height":      {{120, 0}, {160, 10}},
		"body_length": {{140, 0}, {190, 10}},
		"rump":        {{15, 0}, {25, 10}, {35, 0}},
		"rear_leg":    {{135, 0}, {155, 10}, {175, 0}},
	},
	"jersey": {
		"height":      {{100, 0}, {135, 10}},
		"body_length": {{110, 0}, {160, 10}},
		"rump":        {{15, 0}, {25, 10}, {35, 0}},
		"rear_leg":    {{135, 0}, {155, 10}, {175, 0}},
	},
}

// breedAliases maps common label spellings to their breed class.
var breedAliases = map[string]string{
	"holstein":          "holstein_friesian",
	"friesian":          "holstein_friesian",
	"holstein friesian": "holstein_friesian",
	"hf":                "holstein_friesian",
}

var foldCaser = cases.Fold()

// foldBreed normalizes a breed label for table lookup.
func foldBreed(breed string) string {
	folded := foldCaser.String(strings.TrimSpace(breed))
	if alias, ok := breedAliases[folded]; ok {
		return alias
	}
	return strings.ReplaceAll(folded, " ", "_")
}

// TableFor returns the reference table for a breed, falling back to the
// generic default when the breed is unrecognized.
func TableFor(breed string) Table {
	if table, ok := breedTables[foldBreed(breed)]; ok {
		return table
	}
	return defaultTable
}

// DefaultTable returns the generic reference table.
func DefaultTable() Table {
	return defaultTable
}
