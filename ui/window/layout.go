package window

import "sort"

// Metrics describes the geometry of a collection laid out top to bottom.
// Uniform covers fixed-height rows; Layout covers per-item heights.
type Metrics interface {
	// Count returns the number of items.
	Count() int
	// Total returns the height of the whole collection.
	Total() int
	// Offset returns the top edge of item i. Offset(Count()) == Total().
	Offset(i int) int
	// Height returns the height of item i.
	Height(i int) int
	// IndexAt returns the index of the item covering offset, clamped to
	// [0, Count()-1]. It returns -1 for an empty collection.
	IndexAt(offset int) int
}

// Uniform is the Metrics of count rows of ItemHeight lines each.
type Uniform struct {
	ItemHeight int
	Items      int
}

func (u Uniform) Count() int { return u.Items }

func (u Uniform) Total() int {
	if u.ItemHeight <= 0 || u.Items <= 0 {
		return 0
	}
	return u.Items * u.ItemHeight
}

func (u Uniform) Offset(i int) int {
	if u.ItemHeight <= 0 {
		return 0
	}
	return i * u.ItemHeight
}

func (u Uniform) Height(int) int { return u.ItemHeight }

func (u Uniform) IndexAt(offset int) int {
	if u.Items <= 0 || u.ItemHeight <= 0 {
		return -1
	}
	i := floorDiv(offset, u.ItemHeight)
	if i < 0 {
		return 0
	}
	if i > u.Items-1 {
		return u.Items - 1
	}
	return i
}

// Layout is the Metrics of a collection with per-item heights. Heights of
// zero or less are treated as one line so every item stays addressable.
type Layout struct {
	// offsets[i] is the top of item i; offsets[len] is the total height.
	offsets []int
}

// NewLayout builds a Layout from per-item heights.
func NewLayout(heights []int) *Layout {
	offsets := make([]int, len(heights)+1)
	for i, h := range heights {
		if h <= 0 {
			h = 1
		}
		offsets[i+1] = offsets[i] + h
	}
	return &Layout{offsets: offsets}
}

// Append extends the layout with more item heights.
func (l *Layout) Append(heights ...int) {
	if len(l.offsets) == 0 {
		l.offsets = []int{0}
	}
	for _, h := range heights {
		if h <= 0 {
			h = 1
		}
		l.offsets = append(l.offsets, l.offsets[len(l.offsets)-1]+h)
	}
}

func (l *Layout) Count() int {
	if len(l.offsets) == 0 {
		return 0
	}
	return len(l.offsets) - 1
}

func (l *Layout) Total() int {
	if len(l.offsets) == 0 {
		return 0
	}
	return l.offsets[len(l.offsets)-1]
}

func (l *Layout) Offset(i int) int {
	n := l.Count()
	switch {
	case n == 0 || i <= 0:
		return 0
	case i >= n:
		return l.Total()
	}
	return l.offsets[i]
}

func (l *Layout) Height(i int) int {
	if i < 0 || i >= l.Count() {
		return 0
	}
	return l.offsets[i+1] - l.offsets[i]
}

func (l *Layout) IndexAt(offset int) int {
	n := l.Count()
	if n == 0 {
		return -1
	}
	// First item whose bottom edge is below offset.
	i := sort.Search(n, func(i int) bool { return l.offsets[i+1] > offset })
	if i >= n {
		return n - 1
	}
	return i
}

// For computes the render window over any Metrics. Uniform metrics delegate
// to Compute; a Layout of equal heights agrees with it for every offset in
// [0, Total()-containerHeight].
func For(m Metrics, scrollOffset, containerHeight, buffer int) Range {
	if u, ok := m.(Uniform); ok {
		return Compute(Params{
			ScrollOffset:    scrollOffset,
			ContainerHeight: containerHeight,
			ItemHeight:      u.ItemHeight,
			ItemCount:       u.Items,
			Buffer:          buffer,
		})
	}
	n := m.Count()
	if n <= 0 || containerHeight <= 0 {
		return EmptyRange
	}
	if buffer < 0 {
		buffer = 0
	}
	first := m.IndexAt(scrollOffset)
	// Last item whose top edge is strictly above the viewport bottom.
	last := m.IndexAt(scrollOffset + containerHeight - 1)
	return clamp(first-buffer, last+buffer, n)
}
