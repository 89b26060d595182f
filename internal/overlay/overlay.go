// Package overlay renders detected keypoints and the skeleton onto an
// upload for operator debugging.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"herdscore/internal/keypoint"
	"herdscore/internal/services"
)

var (
	jointColor = color.RGBA{G: 255}
	labelColor = color.RGBA{G: 255, B: 255}
	boneColor  = color.RGBA{R: 255, G: 165}
)

// Writer renders overlays into a fixed directory, one file per upload.
type Writer struct {
	Dir string
}

// Render draws the overlay and writes it under the writer's directory as
// the given file name.
func (w Writer) Render(image []byte, set keypoint.Set, name string) (string, error) {
	return Render(image, set, filepath.Join(w.Dir, name))
}

// Render draws present keypoints and skeleton connections onto the image
// and writes it to outputPath as PNG. Returns the written path, or "" when
// there was nothing to draw.
func Render(imageBytes []byte, set keypoint.Set, outputPath string) (string, error) {
	if set.Len() == 0 {
		return "", nil
	}

	img, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return "", services.Wrap(services.ErrInput, "overlay", "decode", "image bytes unreadable", err)
	}
	defer img.Close()
	if img.Empty() {
		return "", services.Wrap(services.ErrInput, "overlay", "decode", "image decoded empty", nil)
	}

	for _, kp := range set.Points() {
		if !set.Present(kp.Name) {
			continue
		}
		center := image.Pt(int(math.Round(kp.X)), int(math.Round(kp.Y)))
		gocv.Circle(&img, center, 5, jointColor, -1)
		gocv.PutText(&img, string(kp.Name), image.Pt(center.X+5, center.Y-5),
			gocv.FontHersheySimplex, 0.4, labelColor, 1)
	}

	for _, conn := range keypoint.SkeletonConnections {
		if !set.Present(conn[0]) || !set.Present(conn[1]) {
			continue
		}
		a, _ := set.Get(conn[0])
		b, _ := set.Get(conn[1])
		gocv.Line(&img,
			image.Pt(int(math.Round(a.X)), int(math.Round(a.Y))),
			image.Pt(int(math.Round(b.X)), int(math.Round(b.Y))),
			boneColor, 2)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("ensure overlay directory: %w", err)
	}
	if ok := gocv.IMWrite(outputPath, img); !ok {
		return "", fmt.Errorf("write overlay image %s", outputPath)
	}
	return outputPath, nil
}
