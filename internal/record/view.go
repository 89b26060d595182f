// Package record defines the per-view and per-animal result models and the
// two scoring-policy predicates: only side views score, and the most recent
// side view is the one that counts.
package record

import (
	"fmt"
	"time"

	"herdscore/internal/keypoint"
	"herdscore/internal/scoring"
)

// ViewType is the photographed viewpoint.
type ViewType string

const (
	ViewFront ViewType = "front"
	ViewSide  ViewType = "side"
	ViewRear  ViewType = "rear"
)

// ParseViewType validates a view type label.
func ParseViewType(s string) (ViewType, error) {
	switch ViewType(s) {
	case ViewFront, ViewSide, ViewRear:
		return ViewType(s), nil
	}
	return "", fmt.Errorf("unknown view type %q (want front, side or rear)", s)
}

// MarkerSize is the detected fiducial's pixel geometry. Serialized as a
// null object when the marker was not detected.
type MarkerSize struct {
	WidthPx   float64 `json:"width_px"`
	HeightPx  float64 `json:"height_px"`
	AvgSidePx float64 `json:"avg_side_px"`
}

// ViewResult is the engine's output for one uploaded image. Created once
// per upload and immutable afterwards; a re-upload appends a new one. Nulls
// are serialized explicitly, never omitted.
type ViewResult struct {
	ViewType       ViewType            `json:"view_type"`
	Filename       string              `json:"filename"`
	UploadedAt     time.Time           `json:"uploaded_at"`
	Confidence     float64             `json:"confidence"`
	ArucoDetected  bool                `json:"aruco_detected"`
	CmPerPx        *float64            `json:"cm_per_px"`
	MarkerSizePx   *MarkerSize         `json:"marker_size_px"`
	Keypoints      []keypoint.Keypoint `json:"keypoints"`
	Measurements   map[string]float64  `json:"measurements"`
	TraitScores    map[string]float64  `json:"trait_scores"`
	FinalScore     *float64            `json:"final_score"`
	Score          *float64            `json:"score"`
	Verdict        scoring.Verdict     `json:"verdict"`
	DebugImagePath *string             `json:"debug_image_path"`
	ErrorMessage   *string             `json:"error_message"`
}

// IsScoringViewType reports whether views of this type are authoritative
// for scoring. Front and rear views never score; this is a business rule,
// not a detector limitation.
func IsScoringViewType(vt ViewType) bool {
	return vt == ViewSide
}

// ScoringView returns the most recently appended side view, the single view
// whose measurements populate the animal-level record. A user who re-uploads
// a side view to correct a bad capture expects the newer one to win.
func ScoringView(views []ViewResult) (ViewResult, bool) {
	for i := len(views) - 1; i >= 0; i-- {
		if IsScoringViewType(views[i].ViewType) {
			return views[i], true
		}
	}
	return ViewResult{}, false
}
