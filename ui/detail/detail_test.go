package detail

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerosuite/inspect-tui/source"
)

var sample = source.Record{
	ID:          "3f1c2d9e-8a61-4c39-9b7e-2f1b5e0c7a44",
	Supplier:    "Gale Titanium",
	Part:        "turbine blade",
	Inspector:   "C. Moreau",
	Status:      source.StatusConditional,
	Score:       71,
	InspectedAt: time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC),
	Notes:       "Surface finish flagged for rework.",
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sample)
	assert.True(t, strings.HasPrefix(md, "## turbine blade"))
	assert.Contains(t, md, "| Supplier | Gale Titanium |")
	assert.Contains(t, md, "**conditional**")
	assert.Contains(t, md, "2026-02-03 09:30 UTC")
	assert.Contains(t, md, "### Notes")

	r := sample
	r.Notes = "  "
	r.Supplier = "A|B"
	md = Markdown(r)
	assert.NotContains(t, md, "### Notes")
	assert.Contains(t, md, `A\|B`)
}

func TestModel_View(t *testing.T) {
	m := New("notty")
	assert.Empty(t, m.View(), "zero size renders nothing")

	m.SetSize(40, 30)
	assert.Contains(t, m.View(), "Select an inspection")

	m.SetRecord(&sample)
	got, ok := m.Record()
	require.True(t, ok)
	assert.Equal(t, sample.ID, got.ID)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "turbine blade")
	assert.Contains(t, view, "Gale Titanium")
	for _, l := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(l), 40)
	}

	m.SetSize(40, 3)
	assert.LessOrEqual(t, len(strings.Split(m.View(), "\n")), 3)

	m.SetRecord(nil)
	_, ok = m.Record()
	assert.False(t, ok)
}
