package record

import (
	"time"

	"herdscore/internal/scoring"
)

// AnimalRecord aggregates every uploaded view of one animal plus the
// derived top-level measurements, score and verdict copied from the scoring
// view. Views keep upload order and are never deduplicated by view type.
type AnimalRecord struct {
	AnimalID     string             `json:"animal_id"`
	Breed        string             `json:"breed"`
	Weight       float64            `json:"weight"`
	FarmerID     *string            `json:"farmer_id"`
	Views        []ViewResult       `json:"views"`
	Measurements map[string]float64 `json:"measurements"`
	Score        *float64           `json:"score"`
	Verdict      scoring.Verdict    `json:"verdict"`
	UpdatedAt    time.Time          `json:"timestamp"`
}

// Recompute derives the animal-level measurements, score and verdict from
// the scoring view. With no side view on record everything is empty, null
// and "N/A". Measurements are copied verbatim from the one scoring view,
// never merged across views.
func (r *AnimalRecord) Recompute() {
	view, ok := ScoringView(r.Views)
	if !ok {
		r.Measurements = map[string]float64{}
		r.Score = nil
		r.Verdict = scoring.VerdictNA
		return
	}

	copied := make(map[string]float64, len(view.Measurements))
	for name, value := range view.Measurements {
		copied[name] = value
	}
	r.Measurements = copied

	if view.FinalScore != nil {
		score := *view.FinalScore
		r.Score = &score
	} else {
		r.Score = nil
	}
	r.Verdict = view.Verdict
}
