// Package measure turns canonical keypoints plus a pixel scale into named
// linear (cm) and angular (degree) body measurements.
package measure

import (
	"herdscore/internal/geometry"
	"herdscore/internal/keypoint"
)

// Unit is the unit a measurement is expressed in.
type Unit string

const (
	// UnitCentimeters marks linear measurements.
	UnitCentimeters Unit = "cm"
	// UnitDegrees marks angular measurements.
	UnitDegrees Unit = "deg"
)

// Kind distinguishes distance measurements from vertex angles.
type Kind int

const (
	// Linear is the Euclidean pixel distance between two keypoints scaled
	// to centimeters. Requires a valid scale factor.
	Linear Kind = iota
	// Angular is the angle at a vertex between rays to two keypoints, in
	// degrees. Scale-invariant: computable without a detected marker.
	Angular
)

// Endpoint names the keypoint(s) a measurement leg resolves to. With
// multiple candidates the highest-confidence present one wins. A midpoint
// endpoint synthesizes the point halfway between two present keypoints.
type Endpoint struct {
	Candidates []keypoint.Name
	Midpoint   [2]keypoint.Name
}

func point(name keypoint.Name) Endpoint {
	return Endpoint{Candidates: []keypoint.Name{name}}
}

func anyOf(names ...keypoint.Name) Endpoint {
	return Endpoint{Candidates: names}
}

func midpoint(a, b keypoint.Name) Endpoint {
	return Endpoint{Midpoint: [2]keypoint.Name{a, b}}
}

// resolve picks the concrete image point for this endpoint, or reports that
// a prerequisite keypoint is absent.
func (e Endpoint) resolve(set keypoint.Set) (geometry.Point, bool) {
	if len(e.Candidates) > 0 {
		best := keypoint.Keypoint{Confidence: -1}
		for _, name := range e.Candidates {
			if !set.Present(name) {
				continue
			}
			if kp, ok := set.Get(name); ok && kp.Confidence > best.Confidence {
				best = kp
			}
		}
		if best.Confidence < 0 {
			return geometry.Point{}, false
		}
		return geometry.Pt(best.X, best.Y), true
	}

	a, okA := set.Get(e.Midpoint[0])
	b, okB := set.Get(e.Midpoint[1])
	if !okA || !okB || !set.Present(e.Midpoint[0]) || !set.Present(e.Midpoint[1]) {
		return geometry.Point{}, false
	}
	return geometry.Midpoint(geometry.Pt(a.X, a.Y), geometry.Pt(b.X, b.Y)), true
}

// Definition describes one named measurement: which keypoints it needs and
// how to combine them. Linear definitions use A and B; angular ones measure
// the angle at Vertex between the rays to A and B.
type Definition struct {
	Name   string
	Trait  string
	Kind   Kind
	A      Endpoint
	B      Endpoint
	Vertex Endpoint
}

// Unit returns the unit this definition's values carry.
func (d Definition) Unit() Unit {
	if d.Kind == Angular {
		return UnitDegrees
	}
	return UnitCentimeters
}

// Definitions is the fixed measurement table. The withers height falls back
// to whichever front hoof the detector saw more confidently; the rear leg
// set angle uses a synthetic hock halfway between backbone and rear hoof.
var Definitions = []Definition{
	{
		Name:  "withers_height_cm",
		Trait: "height",
		Kind:  Linear,
		A:     point(keypoint.Neck),
		B:     anyOf(keypoint.FrontLeftHoof, keypoint.FrontRightHoof),
	},
	{
		Name:  "body_length_cm",
		Trait: "body_length",
		Kind:  Linear,
		A:     point(keypoint.Neck),
		B:     point(keypoint.Backbone),
	},
	{
		Name:   "rump_angle_deg",
		Trait:  "rump",
		Kind:   Angular,
		Vertex: point(keypoint.BackCenter),
		A:      point(keypoint.Backbone),
		B:      point(keypoint.TailRoot),
	},
	{
		Name:   "rear_leg_set_angle_deg",
		Trait:  "rear_leg",
		Kind:   Angular,
		Vertex: midpoint(keypoint.Backbone, keypoint.RearLeftHoof),
		A:      point(keypoint.Backbone),
		B:      point(keypoint.TailRoot),
	},
}

// TraitFor maps a measurement name to its trait, or "" when unknown.
func TraitFor(name string) string {
	for _, def := range Definitions {
		if def.Name == name {
			return def.Trait
		}
	}
	return ""
}
