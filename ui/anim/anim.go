// Package anim provides the gradient spinner shown while a batch is loading.
//
// Each Model pre-renders its frames for the current theme gradient and ticks
// at 20 FPS while spinning. Tick messages carry the model id so several
// spinners never advance each other.
package anim

import (
	"image/color"
	"math"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aerosuite/inspect-tui/style"
)

// ---------------------------------------------------------------------------
// Constants & package-level state
// ---------------------------------------------------------------------------

const (
	fps           = 20
	frameDuration = time.Second / fps
	// ellipsisFrames is how many animation frames elapse per ellipsis state (8 × 50ms = 400ms).
	ellipsisFrames = 8
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var ellipsisStates = []string{"", ".", "..", "..."}

var idCounter atomic.Int64

// TickMsg advances the spinner with the matching ID.
type TickMsg struct {
	ID  int64
	tag int
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is a braille spinner with a label, following the Bubble Tea component
// pattern (value receiver Update/View, pointer receiver mutators).
type Model struct {
	id          int64
	tag         int // bumped by Start; ticks from an earlier run are dropped
	label       string
	spinning    bool
	frame       int
	ellipsisIdx int

	colorA, colorB color.Color
	cache          []string
}

// New creates a stopped spinner with the given label.
func New(label string) Model {
	m := Model{
		id:    idCounter.Add(1),
		label: label,
	}
	m.rebuild()
	return m
}

// ID returns the id carried by this spinner's TickMsg.
func (m Model) ID() int64 { return m.id }

// Update advances the animation on each TickMsg addressed to this model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.tag != m.tag || !m.spinning {
		return m, nil
	}
	m.frame = (m.frame + 1) % len(frames)
	if m.frame%ellipsisFrames == 0 {
		m.ellipsisIdx = (m.ellipsisIdx + 1) % len(ellipsisStates)
	}
	return m, m.tick()
}

// View renders the current frame, or "" when stopped.
func (m Model) View() string {
	if !m.spinning {
		return ""
	}
	if m.colorA != style.GradColorA || m.colorB != style.GradColorB {
		// Theme changed since the cache was built.
		m.rebuild()
	}
	glyph := m.cache[m.frame%len(m.cache)]
	if m.label == "" {
		return glyph
	}
	return glyph + " " + style.LoadingRow.Render(m.label+ellipsisStates[m.ellipsisIdx])
}

// Start begins the animation and returns the command for the first frame.
// Starting a running spinner returns nil so only one tick chain exists.
func (m *Model) Start() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	m.tag++
	m.frame, m.ellipsisIdx = 0, 0
	return m.tick()
}

// Stop halts the animation. Pending ticks are ignored.
func (m *Model) Stop() {
	m.spinning = false
}

// IsSpinning reports whether the animation is running.
func (m Model) IsSpinning() bool {
	return m.spinning
}

// SetLabel changes the label text.
func (m *Model) SetLabel(s string) {
	m.label = s
}

func (m Model) tick() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(frameDuration, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}

// rebuild pre-renders one colored glyph per frame for the theme gradient.
func (m *Model) rebuild() {
	m.colorA, m.colorB = style.GradColorA, style.GradColorB
	n := len(frames)
	m.cache = make([]string, n)
	for i, glyph := range frames {
		// Sine oscillation bounces between the endpoints instead of wrapping.
		t := (math.Sin(math.Pi*float64(i)/float64(n-1)) + 1) / 2
		c := style.LerpColor(m.colorA, m.colorB, t)
		m.cache[i] = lipgloss.NewStyle().Foreground(c).Render(glyph)
	}
}
