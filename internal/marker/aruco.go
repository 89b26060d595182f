package marker

import (
	"context"

	"gocv.io/x/gocv"

	"herdscore/internal/geometry"
	"herdscore/internal/services"
)

// Detector locates an ArUco fiducial (4x4, 50-symbol dictionary) in raw
// image bytes. It owns the underlying OpenCV detector: construct once,
// Close when done. Detection itself is a pure function of the image bytes.
type Detector struct {
	sizeCm   float64
	detector gocv.ArucoDetector
}

// NewDetector builds a Detector for markers with the given physical side
// length in centimeters.
func NewDetector(sizeCm float64) *Detector {
	dict := gocv.GetPredefinedDictionary(gocv.ArucoDict4x4_50)
	params := gocv.NewArucoDetectorParameters()
	return &Detector{
		sizeCm:   sizeCm,
		detector: gocv.NewArucoDetectorWithParams(dict, params),
	}
}

// Close releases the OpenCV detector.
func (d *Detector) Close() error {
	return d.detector.Close()
}

// DetectMarker finds the fiducial and derives the scale factor. An
// undecodable image is an input error; an image without a marker is a
// normal Calibration with Detected=false.
func (d *Detector) DetectMarker(ctx context.Context, image []byte) (Calibration, error) {
	if err := ctx.Err(); err != nil {
		return Calibration{}, services.Wrap(services.ErrTimeout, "marker", "detect", "context done", err)
	}

	img, err := gocv.IMDecode(image, gocv.IMReadColor)
	if err != nil {
		return Calibration{}, services.Wrap(services.ErrInput, "marker", "decode", "image bytes unreadable", err)
	}
	defer img.Close()
	if img.Empty() {
		return Calibration{}, services.Wrap(services.ErrInput, "marker", "decode", "image decoded empty", nil)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	corners, ids, _ := d.detector.DetectMarkers(gray)
	if len(ids) == 0 {
		return Calibration{}, nil
	}

	candidates := make([][4]geometry.Point, 0, len(corners))
	for _, quad := range corners {
		if len(quad) != 4 {
			continue
		}
		var pts [4]geometry.Point
		for i, p := range quad {
			pts[i] = geometry.Pt(float64(p.X), float64(p.Y))
		}
		candidates = append(candidates, pts)
	}
	idx := SelectLargest(candidates)
	if idx < 0 {
		return Calibration{}, nil
	}

	return FromCorners(candidates[idx], d.sizeCm), nil
}
