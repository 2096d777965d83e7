package detect

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrClassifierLoad is wrapped by every LoadClassifier failure.
var ErrClassifierLoad = errors.New("unable to load classifier")

// ErrUnknownDetector is returned by New for names that are not registered.
var ErrUnknownDetector = errors.New("unknown detector")

// Rect is an axis-aligned rectangle in detector space.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Params tunes a detection pass.
type Params struct {
	// ScaleFactor is the step between successive search window sizes. Must be > 1.
	ScaleFactor float64

	// MinNeighbors is the number of overlapping raw hits required to keep a
	// detection (OpenCV adapter).
	MinNeighbors int

	// MinSize is the smallest window side, in working-image pixels.
	MinSize int

	// MinQuality discards detections scoring below it (pigo adapter).
	MinQuality float32

	// Downscale divides the working image size before classification.
	// Values <= 1 disable downscaling.
	Downscale float64
}

// DefaultParams returns the stock classifier settings.
func DefaultParams() Params {
	return Params{
		ScaleFactor:  1.1,
		MinNeighbors: 2,
		MinSize:      30,
		MinQuality:   5.0,
		Downscale:    1.0,
	}
}

// Result is the output of one detection pass.
type Result struct {
	// Rects are the detections in emission order, in working-image coordinates.
	Rects []Rect

	// Scale is the working image size divided by the Image size. Multiply by
	// 1/Scale to return to full detector resolution.
	Scale float64
}

// Classifier is a loaded cascade handle.
type Classifier interface {
	// Close releases the handle. It is safe to call more than once.
	Close() error
}

// Detector is the boundary to an external object classifier.
type Detector interface {
	// LoadClassifier reads a serialized cascade. Errors wrap ErrClassifierLoad.
	LoadClassifier(path string) (Classifier, error)

	// Detect runs c over img once. Grayscale conversion, downscaling and
	// histogram equalization happen inside this call.
	Detect(img *Image, c Classifier, p Params) (Result, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Detector{
		"pigo": func() Detector { return &PigoDetector{} },
	}
)

func register(name string, fn func() Detector) {
	registryMu.Lock()
	registry[name] = fn
	registryMu.Unlock()
}

// New returns the detector adapter registered under name.
func New(name string) (Detector, error) {
	registryMu.RLock()
	fn, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		if name == "opencv" {
			return nil, fmt.Errorf("%w: %q (rebuild with -tags opencv)", ErrUnknownDetector, name)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownDetector, name)
	}
	return fn(), nil
}

// Names lists the registered detector names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
