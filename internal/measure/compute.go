package measure

import (
	"math"

	"herdscore/internal/geometry"
	"herdscore/internal/keypoint"
)

// Measurement is one computed body measurement.
type Measurement struct {
	Name  string
	Trait string
	Value float64
	Unit  Unit
}

// Compute evaluates every definition against the keypoint set. Linear
// measurements additionally need scaleCmPerPx > 0; a measurement whose
// prerequisites are missing, or whose geometry is degenerate, is omitted
// from the result rather than reported as zero or null.
func Compute(set keypoint.Set, scaleCmPerPx float64) map[string]Measurement {
	out := make(map[string]Measurement, len(Definitions))
	for _, def := range Definitions {
		value, ok := evaluate(def, set, scaleCmPerPx)
		if !ok {
			continue
		}
		out[def.Name] = Measurement{
			Name:  def.Name,
			Trait: def.Trait,
			Value: round2(value),
			Unit:  def.Unit(),
		}
	}
	return out
}

func evaluate(def Definition, set keypoint.Set, scale float64) (float64, bool) {
	a, okA := def.A.resolve(set)
	b, okB := def.B.resolve(set)
	if !okA || !okB {
		return 0, false
	}

	switch def.Kind {
	case Linear:
		if scale <= 0 {
			return 0, false
		}
		return a.Distance(b) * scale, true
	case Angular:
		vertex, ok := def.Vertex.resolve(set)
		if !ok {
			return 0, false
		}
		angle, ok := geometry.AngleAt(vertex, a, b)
		if !ok || math.IsNaN(angle) || math.IsInf(angle, 0) {
			return 0, false
		}
		return angle, true
	}
	return 0, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
