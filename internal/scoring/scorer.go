package scoring

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"herdscore/internal/measure"
)

// DefaultWeights is the fixed per-trait weight table used for the final
// score unless the configuration overrides it.
var DefaultWeights = map[string]float64{
	"height":      0.30,
	"body_length": 0.30,
	"rump":        0.20,
	"rear_leg":    0.20,
}

// Scorer converts measurements to trait scores against one breed's
// reference table and aggregates them with the trait weights.
type Scorer struct {
	weights map[string]float64
}

// NewScorer builds a Scorer. A nil or empty weight map falls back to the
// defaults.
func NewScorer(weights map[string]float64) Scorer {
	if len(weights) == 0 {
		weights = DefaultWeights
	}
	return Scorer{weights: weights}
}

// ScoreTraits produces a trait score for every measurement that has a
// well-formed curve in the table. Missing measurements and malformed curves
// (fewer than two breakpoints, or breakpoints out of order) simply produce
// no entry.
func (s Scorer) ScoreTraits(measurements map[string]measure.Measurement, table Table) map[string]float64 {
	scores := make(map[string]float64, len(measurements))
	for _, m := range measurements {
		curve, ok := table[m.Trait]
		if !ok || !curve.valid() {
			continue
		}
		scores[m.Trait] = round2(curve.Score(m.Value))
	}
	return scores
}

// FinalScore computes the weighted mean of the present trait scores. The
// boolean is false when no trait score is present (final score is null).
// Traits without a configured weight contribute nothing.
func (s Scorer) FinalScore(traitScores map[string]float64) (float64, bool) {
	var values, weights []float64
	for trait, weight := range s.weights {
		score, ok := traitScores[trait]
		if !ok || weight <= 0 {
			continue
		}
		values = append(values, score)
		weights = append(weights, weight)
	}
	if len(values) == 0 {
		return 0, false
	}
	return round2(stat.Mean(values, weights)), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
