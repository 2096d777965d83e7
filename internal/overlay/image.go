package overlay

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/region-overlay-mcp/internal/frame"
	"github.com/ironsheep/region-overlay-mcp/internal/region"
	"github.com/ironsheep/region-overlay-mcp/internal/render"
)

// Rendered is the result of RenderImage.
type Rendered struct {
	Image   *image.NRGBA
	Regions region.Set
	Warning error
}

// RenderImage runs one full open/render/close cycle of n over src and composes
// every scanline into a new image.
//
// Scanlines are rendered concurrently once the region set is frozen. Rows the
// policy declines are filled with 0. BinaryMask output is written opaque; the
// other policies carry the source alpha through.
func RenderImage(ctx context.Context, n *Node, src image.Image) (*Rendered, error) {
	f := frame.NewImageFrame(src)
	if err := n.Open(ctx, f); err != nil {
		return nil, err
	}
	defer n.Close()

	result := &Rendered{Regions: n.Regions(), Warning: n.Warning()}

	channels := frame.RGBA
	if n.Policy() == render.BinaryMask {
		channels = frame.RGB
	}

	w, h := f.Width(), f.Height()
	canvas := frame.NewCanvas(w, h)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < h; y++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := frame.NewRow(0, w, channels...)
			if !n.Engine(y, row) {
				row.Fill(0)
			}
			canvas.SetRow(y, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Image = canvas.Image()
	return result, nil
}
