package app

// LayoutMode determines the visual layout.
type LayoutMode int

const (
	LayoutList   LayoutMode = iota // Header + List + Status
	LayoutDetail                   // Header + [List | Detail] + Status
)

const (
	// detailBreakpoint is the terminal width below which the detail pane is
	// hidden regardless of user preference.
	detailBreakpoint = 90

	// Detail pane sizing bounds.
	detailMinWidth = 34
	detailMaxWidth = 60

	listMinWidth = 40
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	Mode         LayoutMode
	TermWidth    int
	TermHeight   int
	HeaderHeight int // title line + search line
	StatusHeight int
	ListWidth    int
	ListHeight   int
	DetailWidth  int // 0 when the detail pane is hidden
	Narrow       bool
}

// ComputeLayout calculates the layout for the terminal size and the
// requested mode. The detail pane takes about 40% of the width, clamped to
// [detailMinWidth, detailMaxWidth], and is dropped on narrow terminals.
func ComputeLayout(termW, termH int, mode LayoutMode) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: 2,
		StatusHeight: 1,
		ListWidth:    termW,
	}

	if termW < detailBreakpoint {
		l.Narrow = true
		mode = LayoutList
	}
	if mode == LayoutDetail {
		l.Mode = LayoutDetail
		dw := termW * 2 / 5
		dw = max(detailMinWidth, min(detailMaxWidth, dw))
		l.DetailWidth = dw
		l.ListWidth = max(listMinWidth, termW-dw-1) // -1 for the divider
	}

	l.ListHeight = max(2, termH-l.HeaderHeight-l.StatusHeight)
	return l
}
