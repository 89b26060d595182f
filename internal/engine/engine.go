// Package engine runs the per-upload measurement pipeline: calibrate scale
// from the fiducial, map detected landmarks into canonical keypoints,
// compute measurements, score traits, and classify the verdict.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"herdscore/internal/keypoint"
	"herdscore/internal/marker"
	"herdscore/internal/measure"
	"herdscore/internal/record"
	"herdscore/internal/scoring"
	"herdscore/internal/services"
)

// ErrorMarkerNotDetected is the explicit error signal set on a side view
// when no marker was found and nothing could be measured. Deliberately
// pessimistic: a side view is expected to score.
const ErrorMarkerNotDetected = "marker not detected – measurements unavailable"

// MarkerDetector locates the calibration fiducial in raw image bytes.
type MarkerDetector interface {
	DetectMarker(ctx context.Context, image []byte) (marker.Calibration, error)
}

// LandmarkDetector returns raw anatomical landmarks in the detector's own
// vocabulary. The keypoint mapper is the only consumer of that vocabulary.
type LandmarkDetector interface {
	DetectLandmarks(ctx context.Context, image []byte) ([]keypoint.RawLandmark, error)
}

// OverlayRenderer writes the keypoint debug image for one upload and
// returns the written path.
type OverlayRenderer interface {
	Render(image []byte, set keypoint.Set, name string) (string, error)
}

// Options tunes engine behavior.
type Options struct {
	ConfidenceThreshold float64
	Weights             map[string]float64
	// Overlay enables debug overlay rendering when non-nil.
	Overlay OverlayRenderer
	Logger  *slog.Logger
}

// Engine processes uploads. Stateless across calls: every upload is an
// independent unit of work.
type Engine struct {
	markers   MarkerDetector
	landmarks LandmarkDetector
	mapper    keypoint.Mapper
	scorer    scoring.Scorer
	overlay   OverlayRenderer
	logger    *slog.Logger
}

// New builds an Engine around the two detectors.
func New(markers MarkerDetector, landmarks LandmarkDetector, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		markers:   markers,
		landmarks: landmarks,
		mapper:    keypoint.NewMapper(opts.ConfidenceThreshold),
		scorer:    scoring.NewScorer(opts.Weights),
		overlay:   opts.Overlay,
		logger:    logger,
	}
}

// Request is one upload.
type Request struct {
	AnimalID string
	Image    []byte
	ViewType record.ViewType
	Breed    string
}

// ProcessView runs the pipeline for one uploaded image and returns its
// immutable ViewResult. Marker calibration and landmark detection run
// concurrently; measurement waits on both. Detector absence flows into the
// result as empty/null fields; only malformed input, detector failures and
// timeouts surface as errors, in which case no partial result is returned.
func (e *Engine) ProcessView(ctx context.Context, req Request) (record.ViewResult, error) {
	if len(req.Image) == 0 {
		return record.ViewResult{}, services.Wrap(services.ErrInput, "engine", "process", "empty image payload", nil)
	}

	var (
		wg     sync.WaitGroup
		cal    marker.Calibration
		calErr error
		raw    []keypoint.RawLandmark
		rawErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cal, calErr = e.markers.DetectMarker(ctx, req.Image)
	}()
	go func() {
		defer wg.Done()
		raw, rawErr = e.landmarks.DetectLandmarks(ctx, req.Image)
	}()
	wg.Wait()

	if calErr != nil {
		return record.ViewResult{}, calErr
	}
	if rawErr != nil {
		return record.ViewResult{}, rawErr
	}

	set := e.mapper.Map(raw)
	view := e.baseView(req, cal, set)
	// Every upload with detections gets a debug overlay, including the
	// error-signal views below: a capture that failed to calibrate is the
	// one an operator most wants to inspect.
	e.renderOverlay(req, set, &view)

	if !record.IsScoringViewType(req.ViewType) {
		// Front and rear views keep their detections for diagnostics but
		// never contribute measurements or scores. Business rule, not a
		// detector limitation.
		e.logView(req, view, set)
		return view, nil
	}

	scale := 0.0
	if cal.Detected {
		scale = cal.ScaleCmPerPx
	}
	measurements := measure.Compute(set, scale)

	if !cal.Detected && len(measurements) == 0 {
		// Nothing measurable and no marker: explicit pessimistic signal.
		msg := ErrorMarkerNotDetected
		view.ErrorMessage = &msg
		view.Confidence = 0
		view.Verdict = scoring.VerdictPoor
		e.logView(req, view, set)
		return view, nil
	}

	for name, m := range measurements {
		view.Measurements[name] = m.Value
	}
	view.TraitScores = e.scorer.ScoreTraits(measurements, scoring.TableFor(req.Breed))
	if final, ok := e.scorer.FinalScore(view.TraitScores); ok {
		score := final
		view.FinalScore = &score
		alias := final
		view.Score = &alias
	}
	view.Verdict = scoring.ClassifyNullable(view.FinalScore)

	e.logView(req, view, set)
	return view, nil
}

func (e *Engine) baseView(req Request, cal marker.Calibration, set keypoint.Set) record.ViewResult {
	view := record.ViewResult{
		ViewType:      req.ViewType,
		Filename:      fmt.Sprintf("%s_%s.jpg", req.ViewType, uuid.New()),
		UploadedAt:    time.Now().UTC(),
		Confidence:    set.OverallConfidence(),
		ArucoDetected: cal.Detected,
		Keypoints:     set.Points(),
		Measurements:  map[string]float64{},
		TraitScores:   map[string]float64{},
		Verdict:       scoring.VerdictNA,
	}
	if view.Keypoints == nil {
		view.Keypoints = []keypoint.Keypoint{}
	}
	if cal.Detected {
		scale := cal.ScaleCmPerPx
		view.CmPerPx = &scale
		view.MarkerSizePx = &record.MarkerSize{
			WidthPx:   cal.WidthPx,
			HeightPx:  cal.HeightPx,
			AvgSidePx: cal.AvgSidePx,
		}
	}
	return view
}

func (e *Engine) renderOverlay(req Request, set keypoint.Set, view *record.ViewResult) {
	if e.overlay == nil || set.Len() == 0 {
		return
	}
	name := fmt.Sprintf("%s_%s.png", req.AnimalID, req.ViewType)
	path, err := e.overlay.Render(req.Image, set, name)
	if err != nil {
		// Overlay rendering is diagnostics only; a failure must never
		// fail the upload.
		e.logger.Warn("overlay rendering failed", "animal", req.AnimalID, "view", req.ViewType, "error", err)
		return
	}
	if path != "" {
		view.DebugImagePath = &path
	}
}

func (e *Engine) logView(req Request, view record.ViewResult, set keypoint.Set) {
	e.logger.Info("view processed",
		"animal", req.AnimalID,
		"view", req.ViewType,
		"marker_detected", view.ArucoDetected,
		"keypoints", set.Len(),
		"measurements", len(view.Measurements),
		"verdict", view.Verdict)
}
