package toast

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_AddCapsQueue(t *testing.T) {
	m := New()
	for i := 0; i < 5; i++ {
		require.NotNil(t, m.Add(fmt.Sprintf("toast %d", i), Info))
	}
	assert.Equal(t, maxToasts, m.Len())

	view := m.View(60)
	assert.NotContains(t, view, "toast 1")
	assert.Contains(t, view, "toast 4")
	assert.Len(t, strings.Split(view, "\n"), maxToasts)
}

func TestModel_Expire(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := Model{now: func() time.Time { return now }}

	m.Add("load failed: connection reset", Error)
	now = now.Add(TTL / 2)
	m.Add("query applied", Info)

	now = now.Add(TTL/2 + time.Millisecond)
	m.Expire()
	require.Equal(t, 1, m.Len())
	assert.Contains(t, m.View(40), "query applied")

	now = now.Add(TTL)
	m.Expire()
	assert.Zero(t, m.Len())
	assert.Empty(t, m.View(40))
}
