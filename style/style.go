package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	SelectionBgColor color.Color = lipgloss.Color("#312E81")
	InputBgColor     color.Color = lipgloss.Color("#111827")

	// Gradient endpoints, violet to cyan on the dark theme.
	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	Bold  lipgloss.Style
	Faint lipgloss.Style
	Hint  lipgloss.Style

	// Header
	HeaderDetail lipgloss.Style

	// Search
	SearchPrompt lipgloss.Style
	SearchQuery  lipgloss.Style

	// List rows
	RowSelected lipgloss.Style
	RowKey      lipgloss.Style
	RowMeta     lipgloss.Style
	EmptyState  lipgloss.Style
	LoadingRow  lipgloss.Style
	ErrorRow    lipgloss.Style

	// Inspection status badges
	StatusPassed      lipgloss.Style
	StatusFailed      lipgloss.Style
	StatusPending     lipgloss.Style
	StatusConditional lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style

	// Status line and live region
	StatusBar  lipgloss.Style
	LiveRegion lipgloss.Style
	LiveAlert  lipgloss.Style

	// Detail pane
	DetailBorder lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	SelectionBgColor = t.SelectionBg
	InputBgColor = t.InputBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

// Status returns the badge style for an inspection status.
func Status(status string) lipgloss.Style {
	switch status {
	case "passed":
		return StatusPassed
	case "failed":
		return StatusFailed
	case "conditional":
		return StatusConditional
	default:
		return StatusPending
	}
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	Hint = lipgloss.NewStyle().Foreground(Dim)

	HeaderDetail = lipgloss.NewStyle().Foreground(Muted)

	SearchPrompt = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	SearchQuery = lipgloss.NewStyle().Foreground(Secondary)

	RowSelected = lipgloss.NewStyle().Background(SelectionBgColor).Bold(true)
	RowKey = lipgloss.NewStyle().Foreground(Muted)
	RowMeta = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	EmptyState = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	LoadingRow = lipgloss.NewStyle().Foreground(Secondary)
	ErrorRow = lipgloss.NewStyle().Foreground(Error)

	StatusPassed = lipgloss.NewStyle().Foreground(Success).Bold(true)
	StatusFailed = lipgloss.NewStyle().Foreground(Error).Bold(true)
	StatusPending = lipgloss.NewStyle().Foreground(Muted)
	StatusConditional = lipgloss.NewStyle().Foreground(Warning)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	LiveRegion = lipgloss.NewStyle().Foreground(Secondary)
	LiveAlert = lipgloss.NewStyle().Foreground(Error).Bold(true)

	DetailBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, false, false, true).
		BorderForeground(Border).
		PaddingLeft(1)
}
