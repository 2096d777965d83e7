package frame

import (
	"image"

	"github.com/disintegration/imaging"
)

// ImageFrame adapts a decoded image.Image to the Frame row model.
//
// The source is copied into a non-premultiplied NRGBA buffer once, so every Get
// is a direct byte lookup divided by 255. Columns or rows outside the image read
// as 0.
type ImageFrame struct {
	img *image.NRGBA
}

// NewImageFrame copies src into a new ImageFrame. The frame origin is moved to
// (0, 0) regardless of src.Bounds().Min.
func NewImageFrame(src image.Image) *ImageFrame {
	return &ImageFrame{img: imaging.Clone(src)}
}

// Width returns the frame width in pixels.
func (f *ImageFrame) Width() int {
	return f.img.Bounds().Dx()
}

// Height returns the frame height in pixels.
func (f *ImageFrame) Height() int {
	return f.img.Bounds().Dy()
}

// Get returns channel ch of row y for columns [x0, x1) as samples in [0, 1].
func (f *ImageFrame) Get(ch Channel, y, x0, x1 int) []float32 {
	if x1 < x0 {
		x1 = x0
	}
	out := make([]float32, x1-x0)
	if !ch.valid() || y < 0 || y >= f.Height() {
		return out
	}

	w := f.Width()
	base := y * f.img.Stride
	for x := x0; x < x1; x++ {
		if x < 0 || x >= w {
			continue
		}
		out[x-x0] = float32(f.img.Pix[base+x*4+int(ch)]) / 255
	}
	return out
}

// Canvas collects rendered rows into an 8-bit NRGBA image.
//
// SetRow may be called concurrently for distinct rows: each row owns a disjoint
// slice of the pixel buffer.
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas allocates a w×h canvas. Every pixel starts transparent black.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// SetRow quantizes row into scanline y. Columns outside the canvas are dropped.
// A row without an Alpha channel is written fully opaque.
func (c *Canvas) SetRow(y int, row *Row) {
	bounds := c.img.Bounds()
	if y < 0 || y >= bounds.Dy() {
		return
	}

	base := y * c.img.Stride
	for x := row.X; x < row.R; x++ {
		if x < 0 || x >= bounds.Dx() {
			continue
		}
		px := c.img.Pix[base+x*4 : base+x*4+4]
		for _, ch := range RGB {
			px[ch] = Quantize(row.At(ch, x))
		}
		if row.Has(Alpha) {
			px[Alpha] = Quantize(row.At(Alpha, x))
		} else {
			px[Alpha] = 255
		}
	}
}

// Image returns the composed image.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}
