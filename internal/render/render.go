package render

import (
	"math"

	"github.com/ironsheep/region-overlay-mcp/internal/frame"
	"github.com/ironsheep/region-overlay-mcp/internal/region"
)

// Renderer writes output scanlines for a fixed policy.
type Renderer struct {
	policy Policy
	border [3]float32
}

// New returns a renderer for policy. border holds the red, green and blue
// values drawn by EdgeHighlight and Circle; other policies ignore it.
func New(policy Policy, border [3]float32) *Renderer {
	return &Renderer{policy: policy, border: border}
}

// Policy returns the renderer's policy.
func (r *Renderer) Policy() Policy {
	return r.policy
}

// Render fills out with the result for scanline y over columns [out.X, out.R),
// reading source pixels from src.
//
// It returns false only when BinaryMask declines the row because no region
// crosses it; out is left untouched in that case. Circle copies the source and
// draws each region's ring over it in the border color.
func (r *Renderer) Render(src frame.Frame, set region.Set, y int, out *frame.Row) bool {
	left, right := out.X, out.R

	if !set.Present() {
		copySource(src, y, out)
		return true
	}

	if r.policy == Circle {
		copySource(src, y, out)
		r.rings(set, y, out)
		return true
	}

	spans := Spans(set, y, left, right)
	if r.policy == BinaryMask {
		return mask(spans, out)
	}

	r.composite(src, set.Len(), spans, y, out)
	return true
}

func copySource(src frame.Frame, y int, out *frame.Row) {
	for _, ch := range out.Channels() {
		copy(out.Writable(ch), src.Get(ch, y, out.X, out.R))
	}
}

// coverage counts, per column of out, the spans covering it and whether any of
// them puts the column on a region outline.
func coverage(spans []Span, out *frame.Row) (counts []int, boundary []bool) {
	counts = make([]int, out.Width())
	boundary = make([]bool, out.Width())
	for _, s := range spans {
		for x := s.Left; x < s.Right; x++ {
			i := x - out.X
			counts[i]++
			if s.OnBoundary(x) {
				boundary[i] = true
			}
		}
	}
	return counts, boundary
}

func (r *Renderer) composite(src frame.Frame, total int, spans []Span, y int, out *frame.Row) {
	copySource(src, y, out)
	if total == 0 {
		return
	}

	counts, boundary := coverage(spans, out)
	for _, ch := range out.Channels() {
		if !ch.IsColor() {
			continue
		}
		dst := out.Writable(ch)
		for i := range dst {
			if r.policy == EdgeHighlight && boundary[i] {
				dst[i] = r.border[ch]
				continue
			}
			dst[i] = float32(float64(dst[i]) * float64(counts[i]+1) / float64(total+1))
		}
	}
}

func mask(spans []Span, out *frame.Row) bool {
	if len(spans) == 0 {
		return false
	}

	counts, _ := coverage(spans, out)
	for _, ch := range out.Channels() {
		dst := out.Writable(ch)
		for i := range dst {
			if counts[i] > 0 {
				dst[i] = 1
			} else {
				dst[i] = 0
			}
		}
	}
	return true
}

// ringWidth is the stroke width of a Circle ring in pixels.
const ringWidth = 3

// Ring is the circle drawn around a region by the Circle policy: centered on
// the region's center with a radius of a quarter of its width plus height.
type Ring struct {
	CX, CY int
	Radius float64
}

// RingOf returns the ring for reg.
func RingOf(reg region.Region) Ring {
	return Ring{
		CX:     reg.X + reg.Width/2,
		CY:     reg.Y + reg.Height/2,
		Radius: float64(reg.Width+reg.Height) / 4,
	}
}

// On reports whether pixel (x, y) lies on the ring's stroke.
func (g Ring) On(x, y int) bool {
	dx, dy := float64(x-g.CX), float64(y-g.CY)
	d := math.Sqrt(dx*dx + dy*dy)
	return math.Abs(d-g.Radius) < ringWidth/2.0
}

// rings paints the stroke of every region's ring that crosses row y in the
// border color. Rings may extend past their region, so rows are tested against
// the ring's own extent rather than the region's.
func (r *Renderer) rings(set region.Set, y int, out *frame.Row) {
	reach := ringWidth / 2.0
	for i := 0; i < set.Len(); i++ {
		g := RingOf(set.At(i))
		outer := g.Radius + reach
		if math.Abs(float64(y-g.CY)) >= outer {
			continue
		}
		lo := max(out.X, g.CX-int(math.Ceil(outer)))
		hi := min(out.R, g.CX+int(math.Ceil(outer))+1)
		for x := lo; x < hi; x++ {
			if !g.On(x, y) {
				continue
			}
			for _, ch := range out.Channels() {
				if ch.IsColor() {
					out.Writable(ch)[x-out.X] = r.border[ch]
				}
			}
		}
	}
}

// Checkerboard fills out with the placeholder pattern shown when no source
// image is connected: color channels are 0.75 on blocks where
// (x/blockW + y/blockH) is even and 0 elsewhere; other channels are 0.
// Non-positive block sizes are treated as 1.
func Checkerboard(y, blockW, blockH int, out *frame.Row) {
	blockW, blockH = max(blockW, 1), max(blockH, 1)
	by := floorDiv(y, blockH)
	for _, ch := range out.Channels() {
		dst := out.Writable(ch)
		for i := range dst {
			dst[i] = 0
			if ch.IsColor() && (floorDiv(out.X+i, blockW)+by)%2 == 0 {
				dst[i] = 0.75
			}
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
