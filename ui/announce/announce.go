// Package announce collects short status announcements (load progress,
// position in the list, failures) for display in a single live status line.
//
// An Announcer is an ordinary value owned by whoever constructs it; nothing
// here is process-wide, so tests and multiple lists each get their own.
package announce

import (
	"sync"
	"time"
)

// Politeness mirrors live-region urgency: polite announcements wait their
// turn, assertive ones replace whatever is shown.
type Politeness int

const (
	Polite Politeness = iota
	Assertive
)

func (p Politeness) String() string {
	if p == Assertive {
		return "assertive"
	}
	return "polite"
}

// DefaultCapacity is the number of announcements kept in history.
const DefaultCapacity = 32

// Announcement is one message.
type Announcement struct {
	Text       string
	Politeness Politeness
	At         time.Time
}

// Announcer keeps a bounded history of announcements. It is safe for
// concurrent use.
type Announcer struct {
	mu    sync.Mutex
	ring  []Announcement
	next  int
	count int
	now   func() time.Time
}

// New creates an Announcer that keeps the last capacity announcements.
func New(capacity int) *Announcer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Announcer{
		ring: make([]Announcement, capacity),
		now:  time.Now,
	}
}

// Announce records text. Consecutive duplicates of the latest polite
// announcement are dropped so repeated scroll positions do not flood history.
func (a *Announcer) Announce(text string, p Politeness) {
	if text == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if p == Polite && a.count > 0 {
		if last := a.ring[a.prev()]; last.Text == text {
			return
		}
	}
	a.ring[a.next] = Announcement{Text: text, Politeness: p, At: a.now()}
	a.next = (a.next + 1) % len(a.ring)
	if a.count < len(a.ring) {
		a.count++
	}
}

// Latest returns the most recent announcement.
func (a *Announcer) Latest() (Announcement, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.count == 0 {
		return Announcement{}, false
	}
	return a.ring[a.prev()], true
}

// History returns announcements oldest first.
func (a *Announcer) History() []Announcement {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Announcement, 0, a.count)
	start := (a.next - a.count + len(a.ring)) % len(a.ring)
	for i := 0; i < a.count; i++ {
		out = append(out, a.ring[(start+i)%len(a.ring)])
	}
	return out
}

// Clear drops all announcements.
func (a *Announcer) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next = 0
	a.count = 0
}

func (a *Announcer) prev() int {
	return (a.next - 1 + len(a.ring)) % len(a.ring)
}
