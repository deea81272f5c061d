package app

import "charm.land/bubbles/v2/key"

// KeyMap defines the app-level keybindings. List navigation keys live in
// viewport.KeyMap.
type KeyMap struct {
	// Global
	Quit   key.Binding
	Escape key.Binding

	// Search
	Search key.Binding
	Submit key.Binding

	// Selection
	SelectNext key.Binding
	SelectPrev key.Binding
	Open       key.Binding

	// Toggles
	ToggleDetail key.Binding

	// Loading
	Retry key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		SelectNext: key.NewBinding(
			key.WithKeys("n", "shift+down"),
			key.WithHelp("n", "next"),
		),
		SelectPrev: key.NewBinding(
			key.WithKeys("p", "shift+up"),
			key.WithHelp("p", "previous"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		ToggleDetail: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "details"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
	}
}
