// Package frame models the host side of the compositing engine.
//
// A host image-processing pipeline hands the engine one full image per processing
// pass. The engine never sees the host's storage directly; it reads pixels through
// the Frame interface, one channel and one scanline at a time, and writes results
// into a Row.
//
// # Coordinate System
//
// Frame coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward, Y increases downward
//   - Row 0 is the top scanline
//   - Column ranges are half-open: [x0, x1)
//
// # Sample Representation
//
// Samples are float32 values where 0 is black and 1 is full intensity. Values
// outside [0, 1] are legal on input and are clamped only when quantized to 8 bits
// (see Quantize).
//
// # Thread Safety
//
// ImageFrame is immutable after construction and safe for concurrent reads.
// ImageCache is safe for concurrent use. A Row must not be shared between
// goroutines while it is being written; Canvas.SetRow may be called concurrently
// for distinct rows.
package frame
