// Package desktop implements the frame, pixel-format and dirty-region
// types the screen-update pipeline operates on. It has no platform capture
// backend; pkg/capture supplies the Capturer collaborator interface and a
// reference differencing implementation.
package desktop

// Rect is an axis-aligned rectangle in frame coordinates, width/height in
// pixels. A Rect with Width==0 or Height==0 is empty.
type Rect struct {
	X, Y          int32
	Width, Height int32
}

// Empty reports whether r covers zero pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the exclusive X bound of r.
func (r Rect) Right() int32 { return r.X + r.Width }

// Bottom returns the exclusive Y bound of r.
func (r Rect) Bottom() int32 { return r.Y + r.Height }

// Intersects reports whether r and other share any pixels.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Region is an ordered, deduplicated set of rectangles covering the pixels
// that changed between two captured frames (spec's "dirty region").
type Region struct {
	rects []Rect
}

// NewRegion builds a Region from the given rectangles, in iteration order,
// dropping empty ones. Duplicate rectangles are removed but overlapping,
// non-identical rectangles are kept as-is: merging overlapping rectangles
// is a capturer-side optimisation, not a Region invariant.
func NewRegion(rects ...Rect) Region {
	var reg Region
	for _, r := range rects {
		reg.Add(r)
	}
	return reg
}

// Add appends r to the region, skipping empty or exact-duplicate
// rectangles.
func (reg *Region) Add(r Rect) {
	if r.Empty() {
		return
	}
	for _, existing := range reg.rects {
		if existing == r {
			return
		}
	}
	reg.rects = append(reg.rects, r)
}

// Rects returns the rectangles in iteration order. The encoder in pkg/codec
// walks this slice in order, and the receiver must reassemble pixels in the
// same order.
func (reg Region) Rects() []Rect {
	return reg.rects
}

// IsEmpty reports whether the region covers no pixels.
func (reg Region) IsEmpty() bool {
	return len(reg.rects) == 0
}
