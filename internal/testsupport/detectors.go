package testsupport

import (
	"context"

	"herdscore/internal/keypoint"
	"herdscore/internal/marker"
)

// FakeMarkerDetector returns a fixed calibration (or error) for every image.
type FakeMarkerDetector struct {
	Calibration marker.Calibration
	Err         error
}

// DetectMarker implements the engine's MarkerDetector boundary.
func (f FakeMarkerDetector) DetectMarker(ctx context.Context, image []byte) (marker.Calibration, error) {
	if err := ctx.Err(); err != nil {
		return marker.Calibration{}, err
	}
	return f.Calibration, f.Err
}

// FakeLandmarkDetector returns fixed raw landmarks (or error) for every image.
type FakeLandmarkDetector struct {
	Landmarks []keypoint.RawLandmark
	Err       error
}

// DetectLandmarks implements the engine's LandmarkDetector boundary.
func (f FakeLandmarkDetector) DetectLandmarks(ctx context.Context, image []byte) ([]keypoint.RawLandmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.Landmarks, f.Err
}

// FakeOverlayRenderer records overlay render requests and returns a fixed
// path (or error).
type FakeOverlayRenderer struct {
	Path  string
	Err   error
	Names []string
}

// Render implements the engine's OverlayRenderer boundary.
func (f *FakeOverlayRenderer) Render(image []byte, set keypoint.Set, name string) (string, error) {
	f.Names = append(f.Names, name)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Path, nil
}

// DetectedMarker builds a detected calibration with the given average side
// and marker size.
func DetectedMarker(avgSidePx, sizeCm float64) marker.Calibration {
	return marker.Calibration{
		Detected:     true,
		WidthPx:      avgSidePx,
		HeightPx:     avgSidePx,
		AvgSidePx:    avgSidePx,
		ScaleCmPerPx: sizeCm / avgSidePx,
	}
}
