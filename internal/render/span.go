package render

import "github.com/ironsheep/region-overlay-mcp/internal/region"

// Span is the horizontal intersection of one region with one scanline.
type Span struct {
	Left  int // First covered column, clipped to the request (inclusive)
	Right int // Last covered column, clipped to the request (exclusive)

	// IsEdge is true when the scanline is the region's top or bottom row.
	IsEdge bool

	// First and Last are the region's own boundary columns, unclipped.
	First int
	Last  int
}

// Covers reports whether column x lies inside the span.
func (s Span) Covers(x int) bool {
	return s.Left <= x && x < s.Right
}

// OnBoundary reports whether column x of this span is part of the region's
// outline.
func (s Span) OnBoundary(x int) bool {
	return s.IsEdge || x == s.First || x == s.Last
}

// Spans returns the spans of every region crossing row y within columns
// [left, right), in region order.
func Spans(set region.Set, y, left, right int) []Span {
	var spans []Span
	for i := 0; i < set.Len(); i++ {
		r := set.At(i)
		if !r.ContainsRow(y) || !r.OverlapsColumns(left, right) {
			continue
		}
		spans = append(spans, Span{
			Left:   max(r.X, left),
			Right:  min(r.Right(), right),
			IsEdge: r.IsEdgeRow(y),
			First:  r.X,
			Last:   r.Right() - 1,
		})
	}
	return spans
}
