// Package common provides shared rendering helpers used across the
// aeroinspect UI components. Widths are display columns; styled input is
// measured and cut without breaking escape sequences.
package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// Truncate shortens s to at most width columns, ending in "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, ellipsis)
}

// TruncatePath shortens a filesystem path to fit maxWidth columns.
// Strategy (first that fits): full path, ~/relative, …/last-two, …/basename.
func TruncatePath(path string, maxWidth int) string {
	if ansi.StringWidth(path) <= maxWidth {
		return path
	}

	if home, err := os.UserHomeDir(); err == nil {
		if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") {
			if p := "~/" + rel; ansi.StringWidth(p) <= maxWidth {
				return p
			}
		}
	}

	sep := string(filepath.Separator)
	parts := strings.Split(filepath.Clean(path), sep)
	if len(parts) >= 2 {
		if p := ellipsis + sep + strings.Join(parts[len(parts)-2:], sep); ansi.StringWidth(p) <= maxWidth {
			return p
		}
	}
	return Truncate(ellipsis+sep+filepath.Base(path), maxWidth)
}

// PadRight pads s with spaces up to width columns. Wider input is returned
// unchanged.
func PadRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// FitWidth pads or truncates s to exactly width columns.
func FitWidth(s string, width int) string {
	return PadRight(Truncate(s, width), width)
}
