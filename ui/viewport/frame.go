package viewport

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultFrameInterval is one frame at 60 FPS.
const DefaultFrameInterval = time.Second / 60

// frameIDs gives every Frame a unique id so FrameMsg values addressed to one
// list are ignored by the others.
var frameIDs atomic.Int64

// FrameMsg is delivered once per scheduled frame.
type FrameMsg struct {
	ID int64
}

// Frame is a run-at-most-once-per-tick primitive. Any number of Request calls
// between two Done calls schedule a single frame.
type Frame struct {
	id       int64
	interval time.Duration
	pending  bool
}

// NewFrame creates a Frame that fires interval after the first request.
func NewFrame(interval time.Duration) *Frame {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Frame{id: frameIDs.Add(1), interval: interval}
}

// ID identifies the FrameMsg values this Frame produces.
func (f *Frame) ID() int64 { return f.id }

// Interval returns the frame period.
func (f *Frame) Interval() time.Duration { return f.interval }

// Pending reports whether a frame is scheduled and not yet done.
func (f *Frame) Pending() bool { return f.pending }

// Request marks the frame as needed. It returns true only for the first
// request since the last Done, which is when the caller must schedule.
func (f *Frame) Request() bool {
	if f.pending {
		return false
	}
	f.pending = true
	return true
}

// Done clears the pending flag. It reports whether msg belongs to this
// frame; foreign messages leave the state untouched.
func (f *Frame) Done(msg FrameMsg) bool {
	if msg.ID != f.id {
		return false
	}
	f.pending = false
	return true
}

// Schedule requests a frame and returns the tick command when one needs to
// be started, or nil when a frame is already on its way.
func (f *Frame) Schedule() tea.Cmd {
	if !f.Request() {
		return nil
	}
	id := f.id
	return tea.Tick(f.interval, func(time.Time) tea.Msg {
		return FrameMsg{ID: id}
	})
}
