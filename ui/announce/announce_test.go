package announce

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncer_Latest(t *testing.T) {
	a := New(4)
	_, ok := a.Latest()
	assert.False(t, ok)

	a.Announce("Loaded 50 inspections", Polite)
	a.Announce("Load failed", Assertive)

	got, ok := a.Latest()
	require.True(t, ok)
	assert.Equal(t, "Load failed", got.Text)
	assert.Equal(t, Assertive, got.Politeness)
	assert.False(t, got.At.IsZero())
}

func TestAnnouncer_DropsPoliteDuplicates(t *testing.T) {
	a := New(8)
	a.Announce("Item 1 of 10", Polite)
	a.Announce("Item 1 of 10", Polite)
	a.Announce("", Polite)
	assert.Len(t, a.History(), 1)

	a.Announce("Item 1 of 10", Assertive)
	assert.Len(t, a.History(), 2)
}

func TestAnnouncer_RingKeepsNewest(t *testing.T) {
	a := New(3)
	for i := 0; i < 7; i++ {
		a.Announce(fmt.Sprintf("msg %d", i), Polite)
	}
	h := a.History()
	require.Len(t, h, 3)
	assert.Equal(t, "msg 4", h[0].Text)
	assert.Equal(t, "msg 6", h[2].Text)
}

func TestAnnouncer_InstancesAreIndependent(t *testing.T) {
	a, b := New(0), New(0)
	a.Announce("only in a", Polite)
	_, ok := b.Latest()
	assert.False(t, ok)

	a.Clear()
	assert.Empty(t, a.History())
}

func TestPoliteness_String(t *testing.T) {
	assert.Equal(t, "polite", Polite.String())
	assert.Equal(t, "assertive", Assertive.String())
}
