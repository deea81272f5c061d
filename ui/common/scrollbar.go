package common

import (
	"strings"

	"github.com/aerosuite/inspect-tui/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// Scrollbar renders a one-column scrollbar for a viewport of height rows
// over content of total rows scrolled to offset. It is empty when the
// content fits.
func Scrollbar(height, total, offset int) string {
	if height <= 0 || total <= height {
		return ""
	}
	top, size := ScrollThumb(height, total, offset)

	rows := make([]string, height)
	for i := range rows {
		if i >= top && i < top+size {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}

// ScrollThumb returns the first track row of the thumb and its size.
// Offsets outside the scrollable range pin the thumb to the track ends.
func ScrollThumb(height, total, offset int) (top, size int) {
	if height <= 0 || total <= height {
		return 0, height
	}
	size = max(1, min(height, height*height/total))
	top = offset * (height - size) / (total - height)
	return max(0, min(top, height-size)), size
}
