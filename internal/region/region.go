// Package region holds the per-frame set of detected rectangles in frame space.
//
// A Set is built once per frame from detector output and is immutable
// afterwards, so any number of scanline renders may read it concurrently.
package region

import (
	"math"

	"github.com/ironsheep/region-overlay-mcp/internal/detect"
)

// Region is an axis-aligned rectangle in frame coordinates (origin top-left,
// Y down).
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the first column past the region.
func (r Region) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the region.
func (r Region) Bottom() int {
	return r.Y + r.Height
}

// ContainsRow reports whether scanline y crosses the region.
func (r Region) ContainsRow(y int) bool {
	return r.Y <= y && y < r.Bottom()
}

// OverlapsColumns reports whether the region intersects columns [left, right).
func (r Region) OverlapsColumns(left, right int) bool {
	return r.X < right && r.Right() > left
}

// IsEdgeRow reports whether y is the region's top or bottom row.
func (r Region) IsEdgeRow(y int) bool {
	return y == r.Y || y == r.Bottom()-1
}

// Set is either absent (detection never ran) or present with zero or more
// regions. The zero Set is absent.
type Set struct {
	present bool
	regions []Region
}

// Absent returns the Set used when no classifier ran for the frame.
func Absent() Set {
	return Set{}
}

// NewSet returns a present Set holding a copy of regions.
func NewSet(regions []Region) Set {
	return Set{present: true, regions: append([]Region(nil), regions...)}
}

// Present reports whether detection ran for the frame.
func (s Set) Present() bool {
	return s.present
}

// Len returns the number of regions. Absent sets have length 0.
func (s Set) Len() int {
	return len(s.regions)
}

// At returns region i in detector emission order.
func (s Set) At(i int) Region {
	return s.regions[i]
}

// Regions returns a copy of the regions in detector emission order.
func (s Set) Regions() []Region {
	return append([]Region{}, s.regions...)
}

// Build maps detector rectangles into frame space and freezes them into a
// present Set.
//
// Each rectangle is scaled by 1/detectorScale to undo the adapter's
// downsampling, then flipped vertically: y = frameHeight - y - height.
// A non-positive detectorScale is treated as 1.
func Build(rects []detect.Rect, detectorScale float64, frameHeight int) Set {
	if detectorScale <= 0 {
		detectorScale = 1
	}

	regions := make([]Region, 0, len(rects))
	for _, r := range rects {
		x := unscale(r.X, detectorScale)
		y := unscale(r.Y, detectorScale)
		w := unscale(r.Width, detectorScale)
		h := unscale(r.Height, detectorScale)

		regions = append(regions, Region{
			X:      x,
			Y:      frameHeight - y - h,
			Width:  w,
			Height: h,
		})
	}

	return Set{present: true, regions: regions}
}

func unscale(v int, scale float64) int {
	if scale == 1 {
		return v
	}
	return int(math.Round(float64(v) / scale))
}
