package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_RequestOncePerTick(t *testing.T) {
	f := NewFrame(time.Millisecond)

	assert.True(t, f.Request())
	for i := 0; i < 50; i++ {
		assert.False(t, f.Request(), "request %d must coalesce into the pending frame", i)
	}
	assert.True(t, f.Pending())

	require.True(t, f.Done(FrameMsg{ID: f.ID()}))
	assert.False(t, f.Pending())
	assert.True(t, f.Request())
}

func TestFrame_IgnoresForeignMessages(t *testing.T) {
	a := NewFrame(0)
	b := NewFrame(0)
	require.NotEqual(t, a.ID(), b.ID())

	a.Request()
	assert.False(t, a.Done(FrameMsg{ID: b.ID()}))
	assert.True(t, a.Pending())
}

func TestFrame_ScheduleReturnsSingleCommand(t *testing.T) {
	f := NewFrame(time.Millisecond)

	cmd := f.Schedule()
	require.NotNil(t, cmd)
	assert.Nil(t, f.Schedule())
	assert.Nil(t, f.Schedule())

	msg := cmd()
	fm, ok := msg.(FrameMsg)
	require.True(t, ok, "want FrameMsg, got %T", msg)
	assert.Equal(t, f.ID(), fm.ID)

	f.Done(fm)
	assert.NotNil(t, f.Schedule())
}

func TestFrame_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultFrameInterval, NewFrame(0).Interval())
	assert.Equal(t, 5*time.Millisecond, NewFrame(5*time.Millisecond).Interval())
}
