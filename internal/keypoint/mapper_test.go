package keypoint_test

import (
	"math"
	"testing"

	"herdscore/internal/keypoint"
)

func TestMapTranslatesNativeLabels(t *testing.T) {
	mapper := keypoint.NewMapper(0.1)
	set := mapper.Map([]keypoint.RawLandmark{
		{Label: "neck", X: 100, Y: 50, Confidence: 0.9},
		{Label: "backbone", X: 250, Y: 60, Confidence: 0.8},
	})

	if set.Len() != 2 {
		t.Fatalf("expected 2 keypoints, got %d", set.Len())
	}
	neck, ok := set.Get(keypoint.Neck)
	if !ok || neck.X != 100 || neck.Y != 50 {
		t.Fatalf("unexpected neck keypoint: %#v", neck)
	}
}

func TestMapTranslatesCOCOFallbackLabels(t *testing.T) {
	mapper := keypoint.NewMapper(0.1)
	set := mapper.Map([]keypoint.RawLandmark{
		{Label: "left_shoulder", X: 10, Y: 20, Confidence: 0.7},
		{Label: "right_elbow", X: 30, Y: 40, Confidence: 0.6},
	})

	if !set.Present(keypoint.Neck) {
		t.Fatal("left_shoulder should map to neck")
	}
	if !set.Present(keypoint.TailRoot) {
		t.Fatal("right_elbow should map to tail_root")
	}
}

func TestMapDropsUnknownLabels(t *testing.T) {
	mapper := keypoint.NewMapper(0.1)
	set := mapper.Map([]keypoint.RawLandmark{
		{Label: "antenna", X: 1, Y: 2, Confidence: 0.99},
	})
	if set.Len() != 0 {
		t.Fatalf("unknown label should be dropped, got %d keypoints", set.Len())
	}
}

func TestMapHigherConfidenceWins(t *testing.T) {
	mapper := keypoint.NewMapper(0.1)
	set := mapper.Map([]keypoint.RawLandmark{
		{Label: "neck", X: 1, Y: 1, Confidence: 0.4},
		{Label: "neck", X: 2, Y: 2, Confidence: 0.8},
		{Label: "neck", X: 3, Y: 3, Confidence: 0.8},
	})

	neck, _ := set.Get(keypoint.Neck)
	// 0.8 beats 0.4; the later 0.8 ties and loses to the first seen.
	if neck.X != 2 || neck.Confidence != 0.8 {
		t.Fatalf("expected first 0.8-confidence detection to win, got %#v", neck)
	}
}

func TestPresenceThreshold(t *testing.T) {
	set := keypoint.NewSet([]keypoint.Keypoint{
		{Name: keypoint.Neck, X: 1, Y: 1, Confidence: 0.05},
		{Name: keypoint.Backbone, X: 2, Y: 2, Confidence: 0.5},
	}, 0.1)

	if set.Present(keypoint.Neck) {
		t.Fatal("below-threshold keypoint must not be present")
	}
	if !set.Present(keypoint.Backbone) {
		t.Fatal("above-threshold keypoint must be present")
	}
	// Retained for diagnostics even though absent.
	if _, ok := set.Get(keypoint.Neck); !ok {
		t.Fatal("below-threshold keypoint must stay in the set")
	}
}

func TestOverallConfidence(t *testing.T) {
	set := keypoint.NewSet([]keypoint.Keypoint{
		{Name: keypoint.Neck, Confidence: 0.6},
		{Name: keypoint.Backbone, Confidence: 0.8},
		{Name: keypoint.TailRoot, Confidence: 0.01}, // absent, excluded from the mean
	}, 0.1)

	if got := set.OverallConfidence(); math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("expected mean 0.7 over present keypoints, got %v", got)
	}
}

func TestOverallConfidenceEmpty(t *testing.T) {
	set := keypoint.NewSet(nil, 0.1)
	if got := set.OverallConfidence(); got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
}
