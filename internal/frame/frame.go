package frame

import (
	"fmt"
	"math"
)

// Channel identifies one plane of a frame.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha

	numChannels = 4
)

// RGB lists the color channels the detector consumes.
var RGB = []Channel{Red, Green, Blue}

// RGBA lists every channel a Frame can carry.
var RGBA = []Channel{Red, Green, Blue, Alpha}

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Alpha:
		return "alpha"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// IsColor reports whether c is one of Red, Green or Blue.
func (c Channel) IsColor() bool {
	return c >= Red && c <= Blue
}

func (c Channel) valid() bool {
	return c >= 0 && c < numChannels
}

// Frame is the read-only view of one host image for one open/close cycle.
type Frame interface {
	// Width returns the frame width in pixels.
	Width() int

	// Height returns the frame height in pixels.
	Height() int

	// Get returns the samples of channel ch on row y for columns [x0, x1).
	// Row 0 is the top scanline. The returned slice has length x1-x0 and must
	// not be modified by the caller.
	Get(ch Channel, y, x0, x1 int) []float32
}

// Quantize converts a float sample to 8 bits by clamping to [0, 1], scaling by
// 255 and rounding to the nearest integer.
func Quantize(v float32) uint8 {
	if v <= 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}
