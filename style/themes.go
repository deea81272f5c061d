package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines a complete color palette for the UI.
type Theme struct {
	Name                                        string
	Primary, Secondary, Success, Warning, Error color.Color
	Muted, Dim, Border                          color.Color

	SelectionBg color.Color
	InputBg     color.Color

	// Gradient endpoints (A=from, B=to)
	GradA color.Color
	GradB color.Color
}

// Built-in themes.
var (
	darkTheme = Theme{
		Name:        "dark",
		Primary:     lipgloss.Color("#7C3AED"),
		Secondary:   lipgloss.Color("#06B6D4"),
		Success:     lipgloss.Color("#22C55E"),
		Warning:     lipgloss.Color("#F59E0B"),
		Error:       lipgloss.Color("#EF4444"),
		Muted:       lipgloss.Color("#6B7280"),
		Dim:         lipgloss.Color("#374151"),
		Border:      lipgloss.Color("#4B5563"),
		SelectionBg: lipgloss.Color("#312E81"),
		InputBg:     lipgloss.Color("#111827"),
		GradA:       lipgloss.Color("#7C3AED"),
		GradB:       lipgloss.Color("#06B6D4"),
	}

	lightTheme = Theme{
		Name:        "light",
		Primary:     lipgloss.Color("#6D28D9"),
		Secondary:   lipgloss.Color("#0891B2"),
		Success:     lipgloss.Color("#16A34A"),
		Warning:     lipgloss.Color("#D97706"),
		Error:       lipgloss.Color("#DC2626"),
		Muted:       lipgloss.Color("#9CA3AF"),
		Dim:         lipgloss.Color("#D1D5DB"),
		Border:      lipgloss.Color("#9CA3AF"),
		SelectionBg: lipgloss.Color("#DDD6FE"),
		InputBg:     lipgloss.Color("#FFFFFF"),
		GradA:       lipgloss.Color("#6D28D9"),
		GradB:       lipgloss.Color("#0891B2"),
	}

	// High contrast palette for hangar floor displays.
	hangarTheme = Theme{
		Name:        "hangar",
		Primary:     lipgloss.Color("#FACC15"),
		Secondary:   lipgloss.Color("#38BDF8"),
		Success:     lipgloss.Color("#4ADE80"),
		Warning:     lipgloss.Color("#FB923C"),
		Error:       lipgloss.Color("#F87171"),
		Muted:       lipgloss.Color("#A1A1AA"),
		Dim:         lipgloss.Color("#52525B"),
		Border:      lipgloss.Color("#71717A"),
		SelectionBg: lipgloss.Color("#3F3F46"),
		InputBg:     lipgloss.Color("#18181B"),
		GradA:       lipgloss.Color("#FACC15"),
		GradB:       lipgloss.Color("#38BDF8"),
	}

	tokyoNightTheme = Theme{
		Name:        "tokyo-night",
		Primary:     lipgloss.Color("#7AA2F7"),
		Secondary:   lipgloss.Color("#7DCFFF"),
		Success:     lipgloss.Color("#9ECE6A"),
		Warning:     lipgloss.Color("#E0AF68"),
		Error:       lipgloss.Color("#F7768E"),
		Muted:       lipgloss.Color("#565F89"),
		Dim:         lipgloss.Color("#3B4261"),
		Border:      lipgloss.Color("#414868"),
		SelectionBg: lipgloss.Color("#283457"),
		InputBg:     lipgloss.Color("#13141E"),
		GradA:       lipgloss.Color("#7AA2F7"),
		GradB:       lipgloss.Color("#7DCFFF"),
	}
)

// Themes maps theme names to their definitions.
var Themes = map[string]Theme{
	"dark":        darkTheme,
	"light":       lightTheme,
	"hangar":      hangarTheme,
	"tokyo-night": tokyoNightTheme,
}

// ThemeNames lists available themes in display order.
var ThemeNames = []string{"dark", "light", "hangar", "tokyo-night"}

// CurrentThemeName tracks the active theme name.
var CurrentThemeName = "dark"
