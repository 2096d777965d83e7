// Package detect converts host frames into the detector's pixel format and runs
// an object classifier over them.
//
// The package has two halves:
//
//   - Build (the frame builder) reads every scanline of a frame.Frame and packs
//     it into an Image: 8-bit, BGR, row-major, with the vertical axis flipped so
//     that row 0 is the bottom scanline of the frame.
//   - Detector is the boundary to the external classifier. It loads a cascade
//     from a file and returns rectangles in detector space (bottom-origin rows,
//     possibly scaled down by the adapter's working resolution).
//
// # Detector Adapters
//
// Two adapters are provided:
//
//   - "pigo": pure Go, backed by github.com/esimov/pigo. Expects a binary pigo
//     cascade file. Always available.
//   - "opencv": OpenCV Haar/LBP cascades through gocv.io/x/gocv. Compiled in only
//     with the "opencv" build tag, since it links against the native library.
//
// Both adapters convert to grayscale, optionally downscale, equalize the
// histogram, classify, and report the scale of their working image so callers
// can map rectangles back to full resolution.
//
// # Coordinate System
//
// Rect values returned by a Detector use detector space: X grows rightward from
// the left column and Y grows upward from the bottom row of the Image, in units
// of the adapter's working image (Result.Scale times the Image size).
//
// # Resource Ownership
//
// An Image is owned by whoever called Build and must be released with Release
// once detection is done. A Classifier must be closed by the caller that loaded
// it.
package detect
