package detect

import (
	"errors"
	"fmt"
	"os"

	pigo "github.com/esimov/pigo/core"
)

const (
	pigoShiftFactor = 0.1
	pigoIoU         = 0.2

	// An 8-byte preamble, the tree depth and the tree count precede the trees.
	pigoHeaderSize = 16
)

// PigoDetector runs pigo binary cascades. It holds no state; all per-frame
// state lives in the Classifier and the Detect call.
type PigoDetector struct{}

type pigoClassifier struct {
	path    string
	cascade *pigo.Pigo
}

func (c *pigoClassifier) Close() error {
	c.cascade = nil
	return nil
}

// LoadClassifier reads and unpacks a pigo cascade file.
func (d *PigoDetector) LoadClassifier(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrClassifierLoad, path, err)
	}
	if len(data) < pigoHeaderSize {
		return nil, fmt.Errorf("%w %q: malformed cascade: %d bytes", ErrClassifierLoad, path, len(data))
	}

	cascade, err := unpackCascade(data)
	if err != nil {
		return nil, fmt.Errorf("%w %q: malformed cascade: %w", ErrClassifierLoad, path, err)
	}

	return &pigoClassifier{path: path, cascade: cascade}, nil
}

// unpackCascade converts the index panics pigo raises on truncated input into
// errors.
func unpackCascade(data []byte) (cascade *pigo.Pigo, err error) {
	defer func() {
		if r := recover(); r != nil {
			cascade, err = nil, fmt.Errorf("truncated cascade data: %v", r)
		}
	}()
	return pigo.NewPigo().Unpack(data)
}

// Detect classifies img with a cascade loaded by LoadClassifier.
//
// The working image is flipped upright before classification and each square
// pigo detection (center row/column and side length) is converted back to a
// bottom-origin Rect. Detections scoring below p.MinQuality are dropped after
// overlapping hits are clustered.
func (d *PigoDetector) Detect(img *Image, c Classifier, p Params) (Result, error) {
	pc, ok := c.(*pigoClassifier)
	if !ok || pc.cascade == nil {
		return Result{}, errors.New("pigo: classifier not loaded by this detector")
	}
	if img.Released() {
		return Result{}, errors.New("pigo: image already released")
	}

	gray, scale := Prepare(img, p)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()

	maxSize := w
	if h < maxSize {
		maxSize = h
	}
	if p.MinSize > maxSize {
		return Result{Rects: []Rect{}, Scale: scale}, nil
	}

	params := pigo.CascadeParams{
		MinSize:     p.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: p.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: uprightPixels(gray),
			Rows:   h,
			Cols:   w,
			Dim:    w,
		},
	}

	dets := pc.cascade.RunCascade(params, 0.0)
	dets = pc.cascade.ClusterDetections(dets, pigoIoU)

	rects := make([]Rect, 0, len(dets))
	for _, det := range dets {
		if det.Q < p.MinQuality {
			continue
		}
		half := det.Scale / 2
		rects = append(rects, toDetectorSpace(det.Col-half, det.Row-half, det.Scale, det.Scale, h))
	}

	return Result{Rects: rects, Scale: scale}, nil
}
