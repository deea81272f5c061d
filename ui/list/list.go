// Package list provides a windowed, incrementally loaded list widget.
//
// Key properties:
//   - Items are placed by index (index * itemHeight, or the prefix offset of
//     a variable-height layout), so the scrollbar always reflects the whole
//     loaded collection.
//   - Only the items in the render window (the visible items plus a buffer
//     on each side) are rendered. Rendered rows are cached by item key and
//     width.
//   - Scroll, wheel, keyboard and resize input only move a pending target.
//     One frame tick commits it and recomputes the window, so a burst of
//     input costs one recomputation.
//   - When the window end reaches the load threshold the next batch is
//     requested from the Fetcher. At most one request is in flight;
//     replacing the collection cancels it and discards its result.
package list

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/aerosuite/inspect-tui/msg"
	"github.com/aerosuite/inspect-tui/style"
	"github.com/aerosuite/inspect-tui/ui/anim"
	"github.com/aerosuite/inspect-tui/ui/announce"
	"github.com/aerosuite/inspect-tui/ui/common"
	"github.com/aerosuite/inspect-tui/ui/loader"
	"github.com/aerosuite/inspect-tui/ui/viewport"
	"github.com/aerosuite/inspect-tui/ui/window"
)

// ---------------------------------------------------------------------------
// Public types
// ---------------------------------------------------------------------------

// KeyFunc returns an item's stable identity. It must not depend on the
// item's position in the list.
type KeyFunc[T any] func(item T) string

// RenderFunc renders one item at the given width. The result is clipped to
// the item's height in lines.
type RenderFunc[T any] func(item T, index, width int) string

// HeightFunc returns an item's height in lines at the given width.
type HeightFunc[T any] func(item T, width int) int

// Fetcher retrieves up to limit items starting at offset, along with the
// collection total or loader.UnknownTotal.
type Fetcher[T any] func(ctx context.Context, offset, limit int) (items []T, total int, err error)

// LoadedMsg carries a fetched batch back into the event loop.
type LoadedMsg[T any] struct {
	ListID     int64
	Generation uint64
	Offset     int
	Items      []T
	Total      int
	Err        error
}

// ErrNoFetcher is reported when a load is due but no Fetcher is set.
var ErrNoFetcher = errors.New("list: no fetcher")

const footerHeight = 1

var listIDs atomic.Int64

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

type confOptions struct {
	itemHeight    int
	buffer        int
	frameInterval time.Duration
	loaderOpts    []loader.Option
	log           *zap.Logger
	announcer     *announce.Announcer
	onScroll      func(offset int)
	emptyText     string
	noun          string
	keys          viewport.KeyMap
	ctx           context.Context
}

// Option configures a Model.
type Option func(*confOptions)

// WithItemHeight sets the uniform item height in lines. Values below 1 are
// ignored.
func WithItemHeight(h int) Option {
	return func(c *confOptions) {
		if h > 0 {
			c.itemHeight = h
		}
	}
}

// WithBuffer sets how many items beyond each viewport edge are rendered.
func WithBuffer(n int) Option {
	return func(c *confOptions) { c.buffer = max(0, n) }
}

// WithThreshold sets the load-more trigger percentage.
func WithThreshold(pct int) Option {
	return func(c *confOptions) { c.loaderOpts = append(c.loaderOpts, loader.WithThreshold(pct)) }
}

// WithBatchSize sets the number of items requested per batch.
func WithBatchSize(n int) Option {
	return func(c *confOptions) { c.loaderOpts = append(c.loaderOpts, loader.WithBatchSize(n)) }
}

// WithFrameInterval sets the coalescing period for scroll input.
func WithFrameInterval(d time.Duration) Option {
	return func(c *confOptions) { c.frameInterval = d }
}

// WithLogger sets the logger used by the list and its loader.
func WithLogger(l *zap.Logger) Option {
	return func(c *confOptions) {
		if l != nil {
			c.log = l
		}
	}
}

// WithAnnouncer routes load progress and selection announcements to a.
func WithAnnouncer(a *announce.Announcer) Option {
	return func(c *confOptions) { c.announcer = a }
}

// WithOnScroll registers a hook that receives each committed scroll offset.
func WithOnScroll(fn func(offset int)) Option {
	return func(c *confOptions) { c.onScroll = fn }
}

// WithEmptyText sets the text shown when the collection is empty.
func WithEmptyText(s string) Option {
	return func(c *confOptions) { c.emptyText = s }
}

// WithNoun sets the plural noun used in announcements, e.g. "inspections".
func WithNoun(plural string) Option {
	return func(c *confOptions) { c.noun = plural }
}

// WithKeyMap replaces the navigation key bindings.
func WithKeyMap(k viewport.KeyMap) Option {
	return func(c *confOptions) { c.keys = k }
}

// WithContext sets the parent context of every fetch.
func WithContext(ctx context.Context) Option {
	return func(c *confOptions) { c.ctx = ctx }
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

type cachedRow struct {
	width int
	lines []string
}

// Model is a windowed list over items of type T. Construct with New.
// Update and View use value receivers; mutators use pointer receivers.
type Model[T any] struct {
	*confOptions

	id       int64
	keyFn    KeyFunc[T]
	renderFn RenderFunc[T]
	heightFn HeightFunc[T]
	fetch    Fetcher[T]

	items  []T
	layout *window.Layout // nil for uniform heights
	width  int
	height int

	tracker *viewport.Tracker
	frame   *viewport.Frame
	loader  *loader.Loader
	spinner anim.Model
	rng     window.Range

	selected int
	cache    map[string]cachedRow
}

// New creates an empty list. Items are identified by key and drawn by render.
func New[T any](keyFn KeyFunc[T], renderFn RenderFunc[T], opts ...Option) Model[T] {
	c := &confOptions{
		itemHeight:    1,
		buffer:        window.DefaultBuffer,
		frameInterval: viewport.DefaultFrameInterval,
		log:           zap.NewNop(),
		emptyText:     "Nothing to show.",
		noun:          "items",
		keys:          viewport.DefaultKeyMap(),
		ctx:           context.Background(),
	}
	for _, o := range opts {
		o(c)
	}

	m := Model[T]{
		confOptions: c,
		id:          listIDs.Add(1),
		keyFn:       keyFn,
		renderFn:    renderFn,
		frame:       viewport.NewFrame(c.frameInterval),
		loader:      loader.New(append([]loader.Option{loader.WithLogger(c.log)}, c.loaderOpts...)...),
		spinner:     anim.New("Loading more " + c.noun),
		rng:         window.EmptyRange,
		selected:    -1,
		cache:       make(map[string]cachedRow),
	}
	m.tracker = viewport.NewTracker(m.metrics())
	return m
}

// ID identifies the messages addressed to this list.
func (m Model[T]) ID() int64 { return m.id }

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// SetFetcher sets the source of further batches. It takes effect for the
// next request; call Reset to discard what is loaded.
func (m *Model[T]) SetFetcher(f Fetcher[T]) {
	m.fetch = f
}

// SetHeightFunc switches the list to variable item heights. A nil fn
// restores the uniform height.
func (m *Model[T]) SetHeightFunc(fn HeightFunc[T]) {
	m.heightFn = fn
	m.rebuildLayout()
	m.tracker.SetMetrics(m.metrics())
}

// SetSize updates the list dimensions. The last line is the list footer.
// The render cache is discarded when the width changes.
func (m *Model[T]) SetSize(w, h int) tea.Cmd {
	if w != m.width {
		m.cache = make(map[string]cachedRow)
		m.width = w
		m.rebuildLayout()
		m.tracker.SetMetrics(m.metrics())
	}
	m.height = h
	m.tracker.Resize(m.viewportHeight())
	return m.frame.Schedule()
}

// ---------------------------------------------------------------------------
// Collection lifecycle
// ---------------------------------------------------------------------------

// Load requests the first batch if nothing has been loaded yet.
func (m *Model[T]) Load() tea.Cmd {
	return m.maybeLoad()
}

// Reset discards every loaded item and any in-flight request, then starts
// loading the new collection from the Fetcher.
func (m *Model[T]) Reset() tea.Cmd {
	return m.replace(nil, loader.UnknownTotal)
}

// SetItems replaces the collection with items. total is the size of the
// whole collection, or loader.UnknownTotal; further batches are fetched
// while fewer than total are loaded.
func (m *Model[T]) SetItems(items []T, total int) tea.Cmd {
	return m.replace(items, total)
}

func (m *Model[T]) replace(items []T, total int) tea.Cmd {
	m.items = append([]T(nil), items...)
	m.cache = make(map[string]cachedRow)
	m.selected = -1
	m.spinner.Stop()
	m.rebuildLayout()

	gen := m.loader.Reset(len(m.items), total)
	m.log.Debug("list collection replaced",
		zap.Int64("list", m.id),
		zap.Uint64("generation", gen),
		zap.Int("items", len(m.items)),
	)

	m.tracker.SetMetrics(m.metrics())
	m.tracker.ScrollTo(0)
	return tea.Batch(m.commit(), m.selectionCmd())
}

// AppendPage applies a fetched batch. Batches from a superseded collection
// are dropped. A failed batch leaves the rendered window intact and is
// reported as msg.LoadFailed; no retry is attempted.
func (m *Model[T]) AppendPage(lm LoadedMsg[T]) tea.Cmd {
	out := m.loader.Complete(loader.Result{
		Generation: lm.Generation,
		Count:      len(lm.Items),
		Total:      lm.Total,
		Err:        lm.Err,
	})
	if out.Stale {
		return nil
	}
	m.spinner.Stop()

	if lm.Err != nil {
		m.announce(fmt.Sprintf("Loading %s failed: %v", m.noun, lm.Err), announce.Assertive)
		id, offset, err := m.id, lm.Offset, lm.Err
		return func() tea.Msg {
			return msg.LoadFailed{ListID: id, Offset: offset, Err: err}
		}
	}

	m.items = append(m.items, lm.Items...)
	if m.layout != nil {
		m.layout.Append(m.heights(lm.Items)...)
	}
	m.tracker.SetMetrics(m.metrics())

	snap := m.loader.Snapshot()
	done := msg.LoadCompleted{
		ListID:    m.id,
		Count:     len(lm.Items),
		Loaded:    snap.LoadedCount,
		Total:     snap.TotalCount,
		Exhausted: snap.State == loader.Exhausted,
	}
	if done.Exhausted {
		m.announce(fmt.Sprintf("All %d %s loaded", done.Loaded, m.noun), announce.Polite)
	} else {
		m.announce(fmt.Sprintf("Loaded %d of %s %s", done.Loaded, totalText(done.Total), m.noun), announce.Polite)
	}

	// A small batch can leave the window at the last loaded item, which
	// requests the next batch right away.
	return tea.Batch(m.commit(), func() tea.Msg { return done })
}

// Retry re-evaluates the load trigger after a failure.
func (m *Model[T]) Retry() tea.Cmd {
	return m.maybeLoad()
}

// ---------------------------------------------------------------------------
// Scrolling and selection
// ---------------------------------------------------------------------------

// ScrollToIndex scrolls so item i is at the top of the viewport.
func (m *Model[T]) ScrollToIndex(i int) tea.Cmd {
	m.tracker.ScrollToIndex(i)
	return m.frame.Schedule()
}

// Select selects item i and scrolls it into view. An out-of-range index
// clears the selection.
func (m *Model[T]) Select(i int) tea.Cmd {
	if i < 0 || i >= len(m.items) {
		i = -1
	}
	if i == m.selected {
		return nil
	}
	m.selected = i
	var cmds []tea.Cmd
	if i >= 0 {
		cmds = append(cmds, m.scrollIntoView(i))
		m.announce(fmt.Sprintf("%s %d of %s", strings.TrimSuffix(m.noun, "s"), i+1, totalText(m.loader.Snapshot().TotalCount)), announce.Polite)
	}
	cmds = append(cmds, m.selectionCmd())
	return tea.Batch(cmds...)
}

// Selected returns the selected item and its index.
func (m Model[T]) Selected() (T, int, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		var zero T
		return zero, -1, false
	}
	return m.items[m.selected], m.selected, true
}

// ItemIndexAtPosition resolves a y coordinate relative to the top of the
// list to the index of the item drawn there, or -1.
func (m Model[T]) ItemIndexAtPosition(y int) int {
	if y < 0 || y >= m.viewportHeight() || len(m.items) == 0 {
		return -1
	}
	r := m.tracker.Reading()
	i := m.metrics().IndexAt(r.ScrollOffset + y)
	if i < 0 || r.ScrollOffset+y >= m.metrics().Total() {
		return -1
	}
	return i
}

func (m *Model[T]) scrollIntoView(i int) tea.Cmd {
	mt := m.metrics()
	r := m.tracker.Pending()
	top, bottom := mt.Offset(i), mt.Offset(i)+mt.Height(i)
	switch {
	case top < r.ScrollOffset:
		m.tracker.ScrollTo(top)
	case bottom > r.ScrollOffset+r.ContainerHeight:
		m.tracker.ScrollTo(bottom - r.ContainerHeight)
	default:
		return nil
	}
	return m.frame.Schedule()
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Items returns the loaded items. The slice must not be modified.
func (m Model[T]) Items() []T { return m.items }

// Len returns the number of loaded items.
func (m Model[T]) Len() int { return len(m.items) }

// Range returns the render window computed at the last frame.
func (m Model[T]) Range() window.Range { return m.rng }

// Reading returns the committed viewport reading.
func (m Model[T]) Reading() viewport.Reading { return m.tracker.Reading() }

// Snapshot returns the load state.
func (m Model[T]) Snapshot() loader.Snapshot { return m.loader.Snapshot() }

// KeyMap returns the navigation bindings.
func (m Model[T]) KeyMap() viewport.KeyMap { return m.keys }

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update handles frame ticks, fetched batches, navigation keys and mouse
// input. Mouse coordinates must be relative to the list's top-left corner.
func (m Model[T]) Update(tmsg tea.Msg) (Model[T], tea.Cmd) {
	switch tmsg := tmsg.(type) {
	case viewport.FrameMsg:
		if !m.frame.Done(tmsg) {
			return m, nil
		}
		return m, m.commit()

	case LoadedMsg[T]:
		if tmsg.ListID != m.id {
			return m, nil
		}
		return m, m.AppendPage(tmsg)

	case anim.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tmsg)
		return m, cmd

	case tea.KeyPressMsg:
		a := m.keys.ActionFor(tmsg)
		if a == viewport.ActionNone {
			return m, nil
		}
		m.tracker.Apply(a)
		return m, m.frame.Schedule()

	case tea.MouseWheelMsg:
		switch tmsg.Button {
		case tea.MouseWheelUp:
			m.tracker.ScrollBy(-viewport.WheelLines)
		case tea.MouseWheelDown:
			m.tracker.ScrollBy(viewport.WheelLines)
		default:
			return m, nil
		}
		return m, m.frame.Schedule()

	case tea.MouseClickMsg:
		if i := m.ItemIndexAtPosition(tmsg.Y); i >= 0 {
			return m, m.Select(i)
		}
	}
	return m, nil
}

// SelectTop selects the first item whose top edge is inside the viewport.
func (m *Model[T]) SelectTop() tea.Cmd {
	r := m.tracker.Reading()
	mt := m.metrics()
	i := mt.IndexAt(r.ScrollOffset)
	if i >= 0 && mt.Offset(i) < r.ScrollOffset && i+1 < mt.Count() {
		i++
	}
	return m.Select(i)
}

// SelectNext moves the selection by delta items, starting from the top
// visible item when nothing is selected.
func (m *Model[T]) SelectNext(delta int) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	if m.selected < 0 {
		return m.SelectTop()
	}
	return m.Select(max(0, min(len(m.items)-1, m.selected+delta)))
}

// ---------------------------------------------------------------------------
// Frame commit and loading
// ---------------------------------------------------------------------------

// commit flushes the tracker, recomputes the render window, renders the
// window's items into the cache and evaluates the load trigger.
func (m *Model[T]) commit() tea.Cmd {
	prev := m.tracker.Reading().ScrollOffset
	reading, _ := m.tracker.Flush()
	m.rng = window.For(m.metrics(), reading.ScrollOffset, reading.ContainerHeight, m.buffer)
	m.renderWindow()

	// Resizes change the reading too; only offset moves are scrolls.
	if reading.ScrollOffset != prev && m.onScroll != nil {
		m.onScroll(reading.ScrollOffset)
	}
	return m.maybeLoad()
}

func (m *Model[T]) maybeLoad() tea.Cmd {
	req, ok := m.loader.Begin(m.ctx, m.rng.End)
	if !ok {
		return nil
	}
	fetch, id := m.fetch, m.id
	m.log.Debug("list load started",
		zap.Int64("list", id),
		zap.Int("offset", req.Offset),
		zap.Int("window_end", m.rng.End),
	)
	load := func() tea.Msg {
		lm := LoadedMsg[T]{ListID: id, Generation: req.Generation, Offset: req.Offset, Total: loader.UnknownTotal}
		if fetch == nil {
			lm.Err = ErrNoFetcher
			return lm
		}
		items, total, err := fetch(req.Context, req.Offset, req.Limit)
		if err != nil {
			lm.Err = fmt.Errorf("fetch offset %d: %w", req.Offset, err)
			return lm
		}
		lm.Items, lm.Total = items, total
		return lm
	}
	return tea.Batch(load, m.spinner.Start())
}

func (m *Model[T]) selectionCmd() tea.Cmd {
	id, idx := m.id, m.selected
	k := ""
	if idx >= 0 {
		k = m.keyFn(m.items[idx])
	}
	return func() tea.Msg {
		return msg.SelectionChanged{ListID: id, Index: idx, Key: k}
	}
}

func (m *Model[T]) announce(text string, p announce.Politeness) {
	if m.announcer != nil {
		m.announcer.Announce(text, p)
	}
}

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

func (m Model[T]) metrics() window.Metrics {
	if m.layout != nil {
		return m.layout
	}
	return window.Uniform{ItemHeight: m.itemHeight, Items: len(m.items)}
}

func (m Model[T]) viewportHeight() int {
	return max(0, m.height-footerHeight)
}

func (m *Model[T]) rebuildLayout() {
	if m.heightFn == nil {
		m.layout = nil
		return
	}
	m.layout = window.NewLayout(m.heights(m.items))
}

func (m Model[T]) heights(items []T) []int {
	hs := make([]int, len(items))
	for i, it := range items {
		hs[i] = m.heightFn(it, m.contentWidth())
	}
	return hs
}

// contentWidth is the width left for items next to the scrollbar column.
func (m Model[T]) contentWidth() int {
	return max(0, m.width-1)
}

func totalText(total int) string {
	if total < 0 {
		return "?"
	}
	return fmt.Sprint(total)
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// renderWindow renders the items of the current window into the cache and
// evicts rows that left it.
func (m *Model[T]) renderWindow() {
	w := m.contentWidth()
	if m.rng.IsEmpty() || w <= 0 {
		return
	}
	mt := m.metrics()
	keep := make(map[string]struct{}, m.rng.Len())
	for i := m.rng.Start; i <= m.rng.End; i++ {
		k := m.keyFn(m.items[i])
		keep[k] = struct{}{}
		if c, ok := m.cache[k]; ok && c.width == w {
			continue
		}
		m.cache[k] = cachedRow{width: w, lines: m.renderItem(i, w, mt.Height(i))}
	}
	for k := range m.cache {
		if _, ok := keep[k]; !ok {
			delete(m.cache, k)
		}
	}
}

func (m Model[T]) renderItem(i, w, h int) []string {
	lines := strings.Split(m.renderFn(m.items[i], i, w), "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	for j, l := range lines {
		lines[j] = common.PadRight(ansi.Truncate(l, w, "…"), w)
	}
	return lines
}

func (m Model[T]) rowLines(i, w int) []string {
	if c, ok := m.cache[m.keyFn(m.items[i])]; ok && c.width == w {
		return c.lines
	}
	return m.renderItem(i, w, m.metrics().Height(i))
}

// View renders the visible part of the window followed by the footer.
func (m Model[T]) View() string {
	vh := m.viewportHeight()
	w := m.contentWidth()
	if vh <= 0 || w <= 0 {
		return ""
	}

	rows := make([]string, vh)
	snap := m.loader.Snapshot()
	if len(m.items) == 0 {
		for i := range rows {
			rows[i] = strings.Repeat(" ", w)
		}
		if snap.State != loader.Requesting {
			rows[0] = common.PadRight(style.EmptyState.Render(ansi.Truncate(m.emptyText, w, "…")), w)
		}
	} else {
		m.fillRows(rows, w)
	}

	r := m.tracker.Reading()
	bar := common.Scrollbar(vh, m.metrics().Total(), r.ScrollOffset)
	body := strings.Join(rows, "\n")
	if bar != "" {
		barLines := strings.Split(bar, "\n")
		for i := range rows {
			rows[i] += barLines[i]
		}
		body = strings.Join(rows, "\n")
	}
	return body + "\n" + m.footer(snap, m.width)
}

func (m Model[T]) fillRows(rows []string, w int) {
	blank := strings.Repeat(" ", w)
	for i := range rows {
		rows[i] = blank
	}
	if m.rng.IsEmpty() {
		return
	}
	mt := m.metrics()
	off := m.tracker.Reading().ScrollOffset
	for i := m.rng.Start; i <= m.rng.End && i < len(m.items); i++ {
		top := mt.Offset(i) - off
		lines := m.rowLines(i, w)
		for j, l := range lines {
			y := top + j
			if y < 0 || y >= len(rows) {
				continue
			}
			if i == m.selected {
				l = style.RowSelected.Render(ansi.Strip(l))
			}
			rows[y] = l
		}
	}
}

func (m Model[T]) footer(snap loader.Snapshot, w int) string {
	switch {
	case snap.State == loader.Requesting:
		return common.PadRight(ansi.Truncate(m.spinner.View(), w, "…"), w)
	case snap.LastErr != nil:
		text := "✘ Load failed: " + snap.LastErr.Error() + " (r to retry)"
		return style.ErrorRow.Render(common.FitWidth(text, w))
	}

	var b strings.Builder
	if _, i, ok := m.Selected(); ok {
		fmt.Fprintf(&b, "%d of %s", i+1, totalText(snap.TotalCount))
	} else {
		fmt.Fprintf(&b, "%d %s", len(m.items), m.noun)
		if snap.TotalCount > len(m.items) {
			fmt.Fprintf(&b, " of %d", snap.TotalCount)
		}
	}
	if snap.State == loader.Exhausted && len(m.items) > 0 {
		b.WriteString(" · end")
	}
	return style.StatusBar.Render(common.FitWidth(b.String(), max(0, w-1)))
}
