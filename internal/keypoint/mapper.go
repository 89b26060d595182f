package keypoint

// RawLandmark is one detection as emitted by the underlying pose model, in
// whatever vocabulary that model speaks.
type RawLandmark struct {
	Label      string  `json:"label"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// labelTable translates vendor labels to canonical names. Native cattle
// labels map onto themselves; the COCO-17 rows cover the generic pose model
// the backend falls back to when no cattle weights are available. Labels
// without a row are dropped.
var labelTable = map[string]Name{
	// Native cattle vocabulary.
	"muzzle":           Muzzle,
	"left_eye":         LeftEye,
	"right_eye":        RightEye,
	"neck":             Neck,
	"front_left_hoof":  FrontLeftHoof,
	"front_right_hoof": FrontRightHoof,
	"rear_left_hoof":   RearLeftHoof,
	"rear_right_hoof":  RearRightHoof,
	"backbone":         Backbone,
	"tail_root":        TailRoot,
	"back_center":      BackCenter,
	"tail_tip":         TailTip,

	// COCO-17 fallback vocabulary.
	"nose":           Muzzle,
	"left_shoulder":  Neck,
	"right_shoulder": Backbone,
	"left_elbow":     BackCenter,
	"right_elbow":    TailRoot,
	"right_wrist":    TailTip,
	"left_hip":       FrontLeftHoof,
	"right_hip":      FrontRightHoof,
	"left_knee":      RearLeftHoof,
	"right_knee":     RearRightHoof,
}

// Mapper normalizes raw detector output into the canonical keypoint set.
type Mapper struct {
	threshold float64
}

// NewMapper builds a Mapper with the given presence threshold.
func NewMapper(threshold float64) Mapper {
	return Mapper{threshold: threshold}
}

// Map translates raw landmarks into a canonical Set. When two raw
// detections translate to the same canonical name the higher-confidence one
// wins; on a tie the first seen stays. Confidences pass through unmodified.
func (m Mapper) Map(raw []RawLandmark) Set {
	points := make(map[Name]Keypoint, len(raw))
	for _, lm := range raw {
		name, ok := labelTable[lm.Label]
		if !ok {
			continue
		}
		candidate := Keypoint{Name: name, X: lm.X, Y: lm.Y, Confidence: lm.Confidence}
		if existing, ok := points[name]; ok && existing.Confidence >= candidate.Confidence {
			continue
		}
		points[name] = candidate
	}

	ordered := make([]Keypoint, 0, len(points))
	for _, name := range CanonicalNames {
		if kp, ok := points[name]; ok {
			ordered = append(ordered, kp)
		}
	}
	return NewSet(ordered, m.threshold)
}
