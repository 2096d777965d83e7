package detect

import (
	"context"
	"errors"
	"fmt"

	"github.com/ironsheep/region-overlay-mcp/internal/frame"
)

var (
	// ErrEmptyFrame is returned by Build for frames with no pixels.
	ErrEmptyFrame = errors.New("frame has zero width or height")

	// ErrAborted is returned by Build when the context is cancelled while rows
	// are being acquired.
	ErrAborted = errors.New("frame build aborted")
)

// Build materializes f as a 3-channel BGR Image in detector row order.
//
// Every row of f is read through the frame's row accessor, each sample is
// quantized with frame.Quantize, and frame row y is written to detector row
// h-1-y.
//
// ctx is checked before the buffer is allocated and before every row. On
// cancellation Build releases the partially written image and returns an error
// wrapping ErrAborted; no Image is returned.
func Build(ctx context.Context, f frame.Frame) (*Image, error) {
	w, h := f.Width(), f.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyFrame, w, h)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	img := NewImage(w, h, 3)
	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			img.Release()
			return nil, fmt.Errorf("%w at row %d: %w", ErrAborted, y, err)
		}

		r := f.Get(frame.Red, y, 0, w)
		g := f.Get(frame.Green, y, 0, w)
		b := f.Get(frame.Blue, y, 0, w)

		dst := img.Row(h - 1 - y)
		for x := 0; x < w; x++ {
			dst[x*3] = frame.Quantize(b[x])
			dst[x*3+1] = frame.Quantize(g[x])
			dst[x*3+2] = frame.Quantize(r[x])
		}
	}

	return img, nil
}
