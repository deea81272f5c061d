package viewport

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// WheelLines is how far one mouse wheel notch scrolls.
const WheelLines = 3

// KeyMap binds keys to navigation actions.
type KeyMap struct {
	LineDown key.Binding
	LineUp   key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns the default navigation bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LineDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		LineUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "space"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last"),
		),
	}
}

// ActionFor resolves a key press to a navigation action.
func (k KeyMap) ActionFor(msg tea.KeyPressMsg) Action {
	switch {
	case key.Matches(msg, k.LineDown):
		return LineDown
	case key.Matches(msg, k.LineUp):
		return LineUp
	case key.Matches(msg, k.PageDown):
		return PageDown
	case key.Matches(msg, k.PageUp):
		return PageUp
	case key.Matches(msg, k.Home):
		return Home
	case key.Matches(msg, k.End):
		return End
	}
	return ActionNone
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LineDown, k.LineUp, k.PageDown, k.Home, k.End}
}
