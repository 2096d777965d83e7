package detect

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

// ITU-R BT.601 luma weights, as used by OpenCV's BGR2GRAY.
const (
	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.114
)

// Grayscale converts img to a single-channel image with the same row order.
//
// 3-channel images are unpacked from BGR and reduced to luminance with
// bild's effect.GrayscaleWithWeights, using the same weights as OpenCV's
// BGR2GRAY so both adapters see identical input. 1-channel images are copied
// as is.
func Grayscale(img *Image) *image.Gray {
	bounds := image.Rect(0, 0, img.Width, img.Height)

	if img.Channels == 1 {
		gray := image.NewGray(bounds)
		for y := 0; y < img.Height; y++ {
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+img.Width], img.Row(y))
		}
		return gray
	}

	rgba := image.NewRGBA(bounds)
	for y := 0; y < img.Height; y++ {
		src := img.Row(y)
		for x := 0; x < img.Width; x++ {
			p := src[x*img.Channels:]
			rgba.SetRGBA(x, y, color.RGBA{R: p[2], G: p[1], B: p[0], A: 255})
		}
	}
	lum := effect.GrayscaleWithWeights(rgba, lumaRed, lumaGreen, lumaBlue)

	gray := image.NewGray(bounds)
	for y := 0; y < img.Height; y++ {
		src := lum.Pix[y*lum.Stride:]
		dst := gray.Pix[y*gray.Stride:]
		for x := 0; x < img.Width; x++ {
			dst[x] = src[x*4]
		}
	}
	return gray
}

// Downscale shrinks gray by factor using bilinear filtering and returns the
// result with the scale actually applied: new width / old width, which differs
// from 1/factor when the width does not divide evenly. A factor <= 1 returns
// gray unchanged with scale 1.
func Downscale(gray *image.Gray, factor float64) (*image.Gray, float64) {
	if factor <= 1 {
		return gray, 1
	}

	bounds := gray.Bounds()
	w := int(math.Round(float64(bounds.Dx()) / factor))
	h := int(math.Round(float64(bounds.Dy()) / factor))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	resized := imaging.Resize(gray, w, h, imaging.Linear)
	small := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			small.Pix[y*small.Stride+x] = resized.Pix[y*resized.Stride+x*4]
		}
	}
	return small, float64(w) / float64(bounds.Dx())
}

// EqualizeHist spreads the intensity histogram of gray over the full 0-255
// range, in place.
//
// The lookup table follows the usual cumulative-distribution mapping with the
// first populated bin pinned to 0. A single-valued image is left unchanged.
func EqualizeHist(gray *image.Gray) {
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return
	}

	bins := histogram.NewRGBAHistogram(gray).R.Bins

	first := 0
	for first < len(bins) && bins[first] == 0 {
		first++
	}
	if first == len(bins) || bins[first] == total {
		return
	}

	var lut [256]uint8
	scale := 255.0 / float64(total-bins[first])
	sum := 0
	for i := first + 1; i < len(bins) && i < 256; i++ {
		sum += bins[i]
		v := math.Round(float64(sum) * scale)
		if v > 255 {
			v = 255
		}
		lut[i] = uint8(v)
	}

	for y := 0; y < bounds.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+bounds.Dx()]
		for x, v := range row {
			row[x] = lut[v]
		}
	}
}

// Prepare runs the shared preprocessing chain (grayscale, downscale, equalize)
// and returns the working image with its scale relative to img.
func Prepare(img *Image, p Params) (*image.Gray, float64) {
	gray := Grayscale(img)
	gray, scale := Downscale(gray, p.Downscale)
	EqualizeHist(gray)
	return gray, scale
}

// uprightPixels returns the pixels of gray with rows reversed, so the bottom-up
// detector layout becomes top-down.
func uprightPixels(gray *image.Gray) []uint8 {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		copy(pix[(h-1-y)*w:(h-y)*w], gray.Pix[y*gray.Stride:y*gray.Stride+w])
	}
	return pix
}

// toDetectorSpace converts a rectangle found on the upright (top-down) working
// image back to bottom-origin detector space.
func toDetectorSpace(x, yTop, w, h, imageHeight int) Rect {
	return Rect{X: x, Y: imageHeight - yTop - h, Width: w, Height: h}
}
