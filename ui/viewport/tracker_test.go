package viewport

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerosuite/inspect-tui/ui/window"
)

func newUniformTracker(itemHeight, count, container int) *Tracker {
	tr := NewTracker(window.Uniform{ItemHeight: itemHeight, Items: count})
	tr.Resize(container)
	tr.Flush()
	return tr
}

func TestTracker_ClampsScrollTargets(t *testing.T) {
	tr := newUniformTracker(50, 1000, 500)

	tr.ScrollTo(-40)
	assert.Equal(t, 0, tr.Pending().ScrollOffset)

	tr.ScrollTo(1 << 30)
	assert.Equal(t, 50*1000-500, tr.Pending().ScrollOffset)
	assert.Equal(t, tr.MaxOffset(), tr.Pending().ScrollOffset)
}

func TestTracker_ShortCollectionNeverScrolls(t *testing.T) {
	tr := newUniformTracker(50, 5, 500)
	tr.ScrollBy(100)
	assert.Equal(t, 0, tr.Pending().ScrollOffset)
	tr.Apply(End)
	assert.Equal(t, 0, tr.Pending().ScrollOffset)
}

func TestTracker_KeyboardActions(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		action Action
		want   int
	}{
		{"line down moves one item", 0, LineDown, 50},
		{"line down from unaligned offset", 25, LineDown, 75},
		{"line up moves one item", 100, LineUp, 50},
		{"line up clamps at zero", 10, LineUp, 0},
		{"page down moves one container", 100, PageDown, 600},
		{"page up moves one container", 600, PageUp, 100},
		{"page up clamps at zero", 100, PageUp, 0},
		{"home jumps to start", 12345, Home, 0},
		{"end jumps to last page", 0, End, 49500},
		{"page down clamps at end", 49400, PageDown, 49500},
		{"none is a no-op", 300, ActionNone, 300},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := newUniformTracker(50, 1000, 500)
			tr.ScrollTo(tc.start)
			tr.Apply(tc.action)
			assert.Equal(t, tc.want, tr.Pending().ScrollOffset)
		})
	}
}

func TestTracker_VariableHeightLineSteps(t *testing.T) {
	tr := NewTracker(window.NewLayout([]int{1, 4, 2, 3, 5, 5, 5}))
	tr.Resize(5)

	tr.Apply(LineDown)
	assert.Equal(t, 1, tr.Pending().ScrollOffset)
	tr.Apply(LineDown)
	assert.Equal(t, 5, tr.Pending().ScrollOffset)
	tr.Apply(LineUp)
	assert.Equal(t, 1, tr.Pending().ScrollOffset)
}

func TestTracker_FlushCoalesces(t *testing.T) {
	tr := newUniformTracker(50, 1000, 500)

	for i := 0; i < 100; i++ {
		tr.ScrollBy(7)
	}
	assert.Equal(t, 0, tr.Reading().ScrollOffset, "input must not commit before flush")

	r, changed := tr.Flush()
	require.True(t, changed)
	assert.Equal(t, 700, r.ScrollOffset)

	_, changed = tr.Flush()
	assert.False(t, changed, "second flush without input reports no change")
}

func TestTracker_UnmountedKeepsLastKnownState(t *testing.T) {
	tr := newUniformTracker(50, 1000, 500)
	tr.ScrollTo(800)
	tr.Flush()

	tr.Resize(0)
	tr.Resize(-3)
	r, changed := tr.Flush()
	assert.False(t, changed)
	assert.Equal(t, Reading{ScrollOffset: 800, ContainerHeight: 500}, r)
	assert.True(t, tr.Mounted())
}

func TestTracker_ResizeReclamps(t *testing.T) {
	tr := newUniformTracker(10, 10, 20)
	tr.Apply(End)
	assert.Equal(t, 80, tr.Pending().ScrollOffset)

	tr.Resize(50)
	assert.Equal(t, 50, tr.Pending().ScrollOffset)
}

func TestTracker_SetMetricsReclamps(t *testing.T) {
	tr := newUniformTracker(10, 100, 20)
	tr.ScrollTo(900)
	tr.SetMetrics(window.Uniform{ItemHeight: 10, Items: 10})
	assert.Equal(t, 80, tr.Pending().ScrollOffset)

	tr.SetMetrics(nil)
	assert.Equal(t, 0, tr.Pending().ScrollOffset)
}

func TestTracker_ScrollToIndex(t *testing.T) {
	tr := newUniformTracker(3, 100, 30)
	tr.ScrollToIndex(10)
	assert.Equal(t, 30, tr.Pending().ScrollOffset)
	tr.ScrollToIndex(99)
	assert.Equal(t, 270, tr.Pending().ScrollOffset)
}

func TestKeyMap_ActionFor(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyPressMsg
		want Action
	}{
		{tea.KeyPressMsg{Code: tea.KeyDown}, LineDown},
		{tea.KeyPressMsg{Code: 'j', Text: "j"}, LineDown},
		{tea.KeyPressMsg{Code: tea.KeyUp}, LineUp},
		{tea.KeyPressMsg{Code: 'k', Text: "k"}, LineUp},
		{tea.KeyPressMsg{Code: tea.KeyPgDown}, PageDown},
		{tea.KeyPressMsg{Code: tea.KeyPgUp}, PageUp},
		{tea.KeyPressMsg{Code: tea.KeyHome}, Home},
		{tea.KeyPressMsg{Code: tea.KeyEnd}, End},
		{tea.KeyPressMsg{Code: 'x', Text: "x"}, ActionNone},
	}
	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, km.ActionFor(tc.msg))
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "page_down", PageDown.String())
	assert.Equal(t, "none", Action(99).String())
}
