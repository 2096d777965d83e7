package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/region-overlay-mcp/internal/region"
)

const (
	labelCharWidth  = 7 // basicfont.Face7x13
	labelHeight     = 13
	labelAscent     = 11
	labelPadding    = 1
	labelBackground = 180
)

// LabelRegions writes each region's index (in emission order) just inside its
// top-left corner, white on a translucent black box. Labels are clipped to img.
func LabelRegions(img *image.NRGBA, set region.Set) {
	bg := image.NewUniform(color.NRGBA{0, 0, 0, labelBackground})
	bounds := img.Bounds()

	for i := 0; i < set.Len(); i++ {
		r := set.At(i)
		text := strconv.Itoa(i)

		box := image.Rect(
			r.X, r.Y,
			r.X+len(text)*labelCharWidth+2*labelPadding, r.Y+labelHeight+2*labelPadding,
		).Intersect(bounds)
		if box.Empty() {
			continue
		}
		draw.Draw(img, box, bg, image.Point{}, draw.Over)

		d := &font.Drawer{
			Dst:  img,
			Src:  image.White,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(r.X+labelPadding, r.Y+labelPadding+labelAscent),
		}
		d.DrawString(text)
	}
}
