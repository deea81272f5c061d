package common

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/aerosuite/inspect-tui/style"
)

// KeyHelp renders a one-line key-binding hint for the status bar. Each
// binding is rendered as "key desc". Disabled bindings are omitted.
func KeyHelp(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, style.Bold.Render(h.Key)+" "+style.Faint.Render(h.Desc))
	}
	return strings.Join(parts, style.Hint.Render("  ·  "))
}
