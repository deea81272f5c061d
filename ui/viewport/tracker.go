// Package viewport tracks the scroll position and height of a scrollable
// container and turns raw scroll, resize and keyboard input into at most one
// committed Reading per frame.
package viewport

import "github.com/aerosuite/inspect-tui/ui/window"

// Reading is a normalized viewport measurement.
type Reading struct {
	ScrollOffset    int
	ContainerHeight int
}

// Action is a keyboard navigation request.
type Action int

const (
	ActionNone Action = iota
	LineDown
	LineUp
	PageDown
	PageUp
	Home
	End
)

func (a Action) String() string {
	switch a {
	case LineDown:
		return "line_down"
	case LineUp:
		return "line_up"
	case PageDown:
		return "page_down"
	case PageUp:
		return "page_up"
	case Home:
		return "home"
	case End:
		return "end"
	default:
		return "none"
	}
}

// Tracker holds the committed viewport reading and the pending target that
// input events accumulate into between frames.
//
// Input methods (ScrollTo, ScrollBy, Apply, Resize, SetMetrics) only touch
// the pending state. Flush commits it; callers flush once per frame so a
// burst of scroll events costs one range recomputation.
type Tracker struct {
	metrics window.Metrics

	committed Reading
	pending   Reading
}

// NewTracker creates a Tracker over the given collection geometry.
func NewTracker(m window.Metrics) *Tracker {
	if m == nil {
		m = window.Uniform{}
	}
	return &Tracker{metrics: m}
}

// Reading returns the last committed reading.
func (t *Tracker) Reading() Reading { return t.committed }

// Pending returns the reading that the next Flush would commit.
func (t *Tracker) Pending() Reading { return t.pending }

// Metrics returns the collection geometry the tracker clamps against.
func (t *Tracker) Metrics() window.Metrics { return t.metrics }

// Mounted reports whether the container has a usable height.
func (t *Tracker) Mounted() bool { return t.pending.ContainerHeight > 0 }

// SetMetrics replaces the collection geometry, for example after a page of
// items is appended, and re-clamps the pending offset.
func (t *Tracker) SetMetrics(m window.Metrics) {
	if m == nil {
		m = window.Uniform{}
	}
	t.metrics = m
	t.pending.ScrollOffset = t.clamp(t.pending.ScrollOffset)
}

// Resize records a container resize. A non-positive height means the
// container is not mounted; the last known reading is kept.
func (t *Tracker) Resize(height int) {
	if height <= 0 {
		return
	}
	t.pending.ContainerHeight = height
	t.pending.ScrollOffset = t.clamp(t.pending.ScrollOffset)
}

// ScrollTo sets the pending scroll offset, clamped to
// [0, totalHeight-containerHeight].
func (t *Tracker) ScrollTo(offset int) {
	t.pending.ScrollOffset = t.clamp(offset)
}

// ScrollBy moves the pending scroll offset by delta lines.
func (t *Tracker) ScrollBy(delta int) {
	t.ScrollTo(t.pending.ScrollOffset + delta)
}

// ScrollToIndex moves the pending offset so item i is at the top of the
// viewport, or as close as clamping allows.
func (t *Tracker) ScrollToIndex(i int) {
	t.ScrollTo(t.metrics.Offset(i))
}

// Apply translates a keyboard action into a scroll target.
func (t *Tracker) Apply(a Action) {
	off := t.pending.ScrollOffset
	switch a {
	case LineDown:
		t.ScrollTo(off + t.lineHeightAt(off))
	case LineUp:
		t.ScrollTo(off - t.lineHeightAt(off-1))
	case PageDown:
		t.ScrollTo(off + t.pending.ContainerHeight)
	case PageUp:
		t.ScrollTo(off - t.pending.ContainerHeight)
	case Home:
		t.ScrollTo(0)
	case End:
		t.ScrollTo(t.maxOffset())
	}
}

// Flush commits the pending reading and reports whether it differs from the
// previous committed one.
func (t *Tracker) Flush() (Reading, bool) {
	changed := t.pending != t.committed
	t.committed = t.pending
	return t.committed, changed
}

// MaxOffset returns the largest valid scroll offset.
func (t *Tracker) MaxOffset() int { return t.maxOffset() }

func (t *Tracker) maxOffset() int {
	m := t.metrics.Total() - t.pending.ContainerHeight
	if m < 0 {
		return 0
	}
	return m
}

func (t *Tracker) clamp(off int) int {
	if off < 0 {
		return 0
	}
	if m := t.maxOffset(); off > m {
		return m
	}
	return off
}

// lineHeightAt is the height of the item covering offset; arrow keys move by
// one item.
func (t *Tracker) lineHeightAt(offset int) int {
	i := t.metrics.IndexAt(offset)
	if i < 0 {
		return 1
	}
	if h := t.metrics.Height(i); h > 0 {
		return h
	}
	return 1
}
