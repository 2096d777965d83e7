//go:build opencv

package detect

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"gocv.io/x/gocv"
)

func init() {
	register("opencv", func() Detector { return &OpenCVDetector{} })
}

// OpenCVDetector runs OpenCV cascade classifiers (Haar or LBP XML files)
// through gocv. Preprocessing uses OpenCV's own color conversion, resize and
// histogram equalization.
type OpenCVDetector struct{}

type cvClassifier struct {
	path    string
	cascade gocv.CascadeClassifier
	closed  bool
}

func (c *cvClassifier) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.cascade.Close()
}

// LoadClassifier loads a serialized OpenCV cascade.
func (d *OpenCVDetector) LoadClassifier(path string) (Classifier, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrClassifierLoad, path, err)
	}

	cascade := gocv.NewCascadeClassifier()
	if !cascade.Load(path) {
		cascade.Close()
		return nil, fmt.Errorf("%w %q: not a valid cascade file", ErrClassifierLoad, path)
	}

	return &cvClassifier{path: path, cascade: cascade}, nil
}

// Detect classifies img with a cascade loaded by LoadClassifier.
func (d *OpenCVDetector) Detect(img *Image, c Classifier, p Params) (Result, error) {
	cc, ok := c.(*cvClassifier)
	if !ok || cc.closed {
		return Result{}, errors.New("opencv: classifier not loaded by this detector")
	}
	if img.Released() {
		return Result{}, errors.New("opencv: image already released")
	}

	matType := gocv.MatTypeCV8UC3
	if img.Channels == 1 {
		matType = gocv.MatTypeCV8UC1
	}
	src, err := gocv.NewMatFromBytes(img.Height, img.Width, matType, img.Pix)
	if err != nil {
		return Result{}, fmt.Errorf("opencv: wrap image: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	if img.Channels == 1 {
		src.CopyTo(&gray)
	} else {
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	}

	// Detector rows are bottom-up; cascades are trained on upright images.
	gocv.Flip(gray, &gray, 0)

	scale := 1.0
	work := gray
	if p.Downscale > 1 {
		w := max(int(math.Round(float64(img.Width)/p.Downscale)), 1)
		h := max(int(math.Round(float64(img.Height)/p.Downscale)), 1)
		small := gocv.NewMat()
		defer small.Close()
		gocv.Resize(gray, &small, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)
		work = small
		scale = float64(w) / float64(img.Width)
	}
	gocv.EqualizeHist(work, &work)

	found := cc.cascade.DetectMultiScaleWithParams(work, p.ScaleFactor, p.MinNeighbors, 0,
		image.Pt(p.MinSize, p.MinSize), image.Pt(0, 0))

	rows := work.Rows()
	rects := make([]Rect, 0, len(found))
	for _, r := range found {
		rects = append(rects, toDetectorSpace(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), rows))
	}

	return Result{Rects: rects, Scale: scale}, nil
}
