// Package detail renders the selected inspection record as markdown.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/aerosuite/inspect-tui/source"
	"github.com/aerosuite/inspect-tui/style"
)

// Model is the detail pane. The zero value shows a placeholder.
type Model struct {
	record *source.Record
	// glamourStyle is a glamour standard style name; "" means auto-detect.
	glamourStyle string

	width, height int

	renderer      *glamour.TermRenderer
	rendererWidth int
	rendered      string
}

// New creates a detail pane rendering with the given glamour style
// ("dark", "light", "notty"), or the terminal's style when empty.
func New(glamourStyle string) Model {
	return Model{glamourStyle: glamourStyle}
}

// SetSize updates the pane dimensions.
func (m *Model) SetSize(w, h int) {
	if w != m.width {
		m.width = w
		m.rerender()
	}
	m.height = h
}

// SetRecord shows r; nil clears the pane.
func (m *Model) SetRecord(r *source.Record) {
	if r != nil {
		cp := *r
		r = &cp
	}
	m.record = r
	m.rerender()
}

// Record returns the record on display.
func (m Model) Record() (source.Record, bool) {
	if m.record == nil {
		return source.Record{}, false
	}
	return *m.record, true
}

// View renders the pane clipped to its size.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	body := m.rendered
	if m.record == nil {
		body = style.EmptyState.Render("Select an inspection to see its details.")
	}
	lines := strings.Split(body, "\n")
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, m.width, "…")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) rerender() {
	if m.record == nil || m.width <= 0 {
		m.rendered = ""
		return
	}
	md := Markdown(*m.record)
	if m.renderer == nil || m.rendererWidth != m.width {
		m.renderer = m.newRenderer()
		m.rendererWidth = m.width
	}
	if m.renderer == nil {
		m.rendered = md
		return
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		m.rendered = md
		return
	}
	// glamour adds surrounding blank lines; trim for the pane.
	m.rendered = strings.Trim(out, "\n")
}

func (m Model) newRenderer() *glamour.TermRenderer {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(10, m.width-2))}
	if m.glamourStyle == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.glamourStyle))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil
	}
	return r
}

// Markdown formats r as a markdown document.
func Markdown(r source.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", r.Part)
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Supplier | %s |\n", escape(r.Supplier))
	fmt.Fprintf(&b, "| Inspector | %s |\n", escape(r.Inspector))
	fmt.Fprintf(&b, "| Status | **%s** |\n", r.Status)
	fmt.Fprintf(&b, "| Score | %d / 100 |\n", r.Score)
	fmt.Fprintf(&b, "| Inspected | %s |\n", r.InspectedAt.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "| ID | `%s` |\n", r.ID)
	if notes := strings.TrimSpace(r.Notes); notes != "" {
		fmt.Fprintf(&b, "\n### Notes\n\n%s\n", notes)
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
