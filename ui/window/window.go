// Package window maps a viewport onto the contiguous range of collection
// indices that must be materialized to fill it.
//
// Every function here is pure: identical inputs always produce identical
// ranges, and no input (negative offsets, offsets past the end, zero-height
// rows) can produce an index outside [0, itemCount-1].
package window

// DefaultBuffer is the number of rows rendered above and below the viewport
// when the caller does not choose one.
const DefaultBuffer = 3

// Range is an inclusive [Start, End] index window. The empty window is
// {-1, -1}.
type Range struct {
	Start int
	End   int
}

// EmptyRange is the window for an empty collection or an unusable
// configuration.
var EmptyRange = Range{Start: -1, End: -1}

// IsEmpty reports whether the window holds no indices.
func (r Range) IsEmpty() bool {
	return r.Start < 0 || r.End < r.Start
}

// Len returns the number of indices in the window.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index i lies in the window.
func (r Range) Contains(i int) bool {
	return !r.IsEmpty() && i >= r.Start && i <= r.End
}

// Params are the inputs of Compute. Heights and offsets are in lines.
type Params struct {
	ScrollOffset    int
	ContainerHeight int
	ItemHeight      int
	ItemCount       int
	Buffer          int
}

// Compute returns the render window for a collection of uniform row height.
//
//	start = max(0, floor(offset/itemHeight) - buffer)
//	end   = min(count-1, ceil((offset+containerHeight)/itemHeight) - 1 + buffer)
//
// The scroll offset is never clamped here; the resulting indices are.
func Compute(p Params) Range {
	if p.ItemCount <= 0 || p.ItemHeight <= 0 || p.ContainerHeight <= 0 {
		return EmptyRange
	}
	buf := p.Buffer
	if buf < 0 {
		buf = 0
	}
	first := floorDiv(p.ScrollOffset, p.ItemHeight)
	last := ceilDiv(p.ScrollOffset+p.ContainerHeight, p.ItemHeight) - 1
	return clamp(first-buf, last+buf, p.ItemCount)
}

// VisibleCount is the number of rows that can be exposed at once by a
// container, counting a partially exposed row at each edge.
func VisibleCount(containerHeight, itemHeight int) int {
	if containerHeight <= 0 || itemHeight <= 0 {
		return 0
	}
	return ceilDiv(containerHeight, itemHeight) + 1
}

// clamp bounds a raw [start, end] pair to valid indices for count items so
// that 0 <= start <= end <= count-1.
func clamp(start, end, count int) Range {
	if start < 0 {
		start = 0
	}
	if start > count-1 {
		start = count - 1
	}
	if end > count-1 {
		end = count - 1
	}
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
