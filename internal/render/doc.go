// Package render composites detected regions onto source scanlines.
//
// A Renderer is configured once with a Policy and an optional border color and
// is then called per scanline. Each call intersects the frame's region.Set with
// the requested row, builds Spans, and writes one output value per column and
// channel.
//
// # Policies
//
//   - Attenuate: color channels are multiplied by (coverCount+1)/(total+1),
//     where coverCount is the number of regions covering the column and total is
//     the number of regions in the frame. A frame with zero regions passes
//     through unchanged.
//   - EdgeHighlight: as Attenuate, but columns on a region boundary (top or
//     bottom row, first or last column) take the border color instead.
//   - BinaryMask: the source is ignored; covered columns are 1 and uncovered
//     columns are 0 in every requested channel. Rows crossing no region are
//     declined (Render returns false) so the host applies its default.
//   - Circle: the source is copied unchanged and a 3-pixel ring is drawn in the
//     border color around each region, centered on the region with a radius of
//     (width+height)/4. Rings may reach slightly outside their region.
//
// An absent region.Set always produces a pure passthrough, whatever the policy.
//
// # Thread Safety
//
// Renderer is immutable. Render keeps no state between calls and may be invoked
// concurrently for different rows as long as each call gets its own output Row.
package render
