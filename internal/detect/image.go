package detect

// Image is a packed 8-bit pixel buffer in detector layout.
//
// Rows are stored bottom-up: row 0 holds the bottom scanline of the source
// frame. Each pixel occupies Channels bytes; 3-channel images use B, G, R order.
type Image struct {
	Width    int
	Height   int
	Channels int
	Stride   int // Bytes per row
	Pix      []uint8
}

// NewImage allocates a zeroed w×h image with the given channel count.
func NewImage(w, h, channels int) *Image {
	return &Image{
		Width:    w,
		Height:   h,
		Channels: channels,
		Stride:   w * channels,
		Pix:      make([]uint8, w*h*channels),
	}
}

// Row returns the bytes of detector row y.
func (img *Image) Row(y int) []uint8 {
	return img.Pix[y*img.Stride : (y+1)*img.Stride]
}

// Release drops the pixel buffer. The image must not be used afterwards.
// Release is idempotent and safe on a nil image.
func (img *Image) Release() {
	if img == nil {
		return
	}
	img.Pix = nil
	img.Width, img.Height, img.Stride = 0, 0, 0
}

// Released reports whether Release has been called.
func (img *Image) Released() bool {
	return img == nil || img.Pix == nil
}
