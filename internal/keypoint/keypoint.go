// Package keypoint defines the canonical anatomical landmark taxonomy and
// the mapper that translates raw detector output into it. The translation
// table is the only place vendor vocabulary is allowed to appear; everything
// downstream works in canonical names.
package keypoint

import (
	"gonum.org/v1/gonum/stat"
)

// Name identifies a canonical anatomical landmark.
type Name string

// The canonical 12-point cattle landmark set, in skeleton order.
const (
	Muzzle         Name = "muzzle"
	LeftEye        Name = "left_eye"
	RightEye       Name = "right_eye"
	Neck           Name = "neck"
	FrontLeftHoof  Name = "front_left_hoof"
	FrontRightHoof Name = "front_right_hoof"
	RearLeftHoof   Name = "rear_left_hoof"
	RearRightHoof  Name = "rear_right_hoof"
	Backbone       Name = "backbone"
	TailRoot       Name = "tail_root"
	BackCenter     Name = "back_center"
	TailTip        Name = "tail_tip"
)

// CanonicalNames lists every canonical landmark in taxonomy order.
var CanonicalNames = []Name{
	Muzzle, LeftEye, RightEye, Neck,
	FrontLeftHoof, FrontRightHoof, RearLeftHoof, RearRightHoof,
	Backbone, TailRoot, BackCenter, TailTip,
}

// SkeletonConnections lists the landmark pairs joined when rendering a
// debug overlay.
var SkeletonConnections = [][2]Name{
	{Neck, FrontLeftHoof},
	{Neck, FrontRightHoof},
	{Neck, Backbone},
	{Backbone, TailRoot},
	{TailRoot, TailTip},
	{TailRoot, RearLeftHoof},
	{TailRoot, RearRightHoof},
	{Backbone, RearLeftHoof},
	{Backbone, RearRightHoof},
	{Backbone, BackCenter},
	{BackCenter, TailRoot},
}

// Keypoint is a named landmark position with its detection confidence.
type Keypoint struct {
	Name       Name    `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// Set holds the canonical keypoints detected on one image. Keypoints below
// the confidence threshold stay in the set for diagnostics but are not
// Present for measurement purposes.
type Set struct {
	points    map[Name]Keypoint
	threshold float64
}

// NewSet builds a Set from canonical keypoints using the given confidence
// threshold for presence.
func NewSet(points []Keypoint, threshold float64) Set {
	m := make(map[Name]Keypoint, len(points))
	for _, kp := range points {
		m[kp.Name] = kp
	}
	return Set{points: m, threshold: threshold}
}

// Get returns the keypoint for name whether or not it passes the threshold.
func (s Set) Get(name Name) (Keypoint, bool) {
	kp, ok := s.points[name]
	return kp, ok
}

// Present reports whether name was detected with confidence at or above the
// threshold. Absent keypoints never contribute to measurements.
func (s Set) Present(name Name) bool {
	kp, ok := s.points[name]
	return ok && kp.Confidence >= s.threshold
}

// Points returns all keypoints in canonical taxonomy order, including
// below-threshold ones.
func (s Set) Points() []Keypoint {
	out := make([]Keypoint, 0, len(s.points))
	for _, name := range CanonicalNames {
		if kp, ok := s.points[name]; ok {
			out = append(out, kp)
		}
	}
	return out
}

// Len returns the number of keypoints in the set.
func (s Set) Len() int {
	return len(s.points)
}

// OverallConfidence is the mean confidence over present keypoints, 0 when
// none are present.
func (s Set) OverallConfidence() float64 {
	var confidences []float64
	for _, name := range CanonicalNames {
		if kp, ok := s.points[name]; ok && kp.Confidence >= s.threshold {
			confidences = append(confidences, kp.Confidence)
		}
	}
	if len(confidences) == 0 {
		return 0
	}
	return stat.Mean(confidences, nil)
}
