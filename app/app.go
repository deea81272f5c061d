package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/aerosuite/inspect-tui/config"
	"github.com/aerosuite/inspect-tui/msg"
	"github.com/aerosuite/inspect-tui/source"
	"github.com/aerosuite/inspect-tui/style"
	"github.com/aerosuite/inspect-tui/ui/anim"
	"github.com/aerosuite/inspect-tui/ui/announce"
	"github.com/aerosuite/inspect-tui/ui/common"
	"github.com/aerosuite/inspect-tui/ui/detail"
	"github.com/aerosuite/inspect-tui/ui/list"
	"github.com/aerosuite/inspect-tui/ui/toast"
	"github.com/aerosuite/inspect-tui/ui/viewport"
)

// Options carries the runtime wiring that is not part of the config file.
type Options struct {
	Logger *zap.Logger
	// Source labels the data source in the header, e.g. the database path.
	Source string
	// GlamourStyle is passed to the detail pane; "" auto-detects.
	GlamourStyle string
	// Context bounds every fetch; cancelled on quit.
	Context context.Context
}

// -- Model --------------------------------------------------------------------

// Model is the root Bubble Tea model. It owns the inspection list, the
// search box, the detail pane and the notifications.
type Model struct {
	list   list.Model[source.Record]
	search textinput.Model
	detail detail.Model
	toasts toast.Model
	live   *announce.Announcer

	state      State
	layout     Layout
	layoutMode LayoutMode
	keys       KeyMap

	store source.Store
	query source.Query
	label string
	log   *zap.Logger

	width  int
	height int
}

// New constructs the root Model over store.
func New(store source.Store, cfg config.Config, opts Options) Model {
	cfg.Normalize()
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	live := announce.New(announce.DefaultCapacity)
	lst := list.New[source.Record](
		source.Record.Key,
		recordRenderer(cfg.ItemHeight),
		list.WithItemHeight(cfg.ItemHeight),
		list.WithBuffer(cfg.Buffer),
		list.WithThreshold(cfg.LoadMoreThreshold),
		list.WithBatchSize(cfg.BatchSize),
		list.WithFrameInterval(cfg.FrameInterval),
		list.WithLogger(opts.Logger),
		list.WithAnnouncer(live),
		list.WithNoun("inspections"),
		list.WithEmptyText("No inspections match."),
		list.WithContext(opts.Context),
	)
	lst.SetFetcher(recordFetcher(store, source.Query{}))

	ti := textinput.New()
	ti.Placeholder = "supplier, part or inspector · status:failed"
	ti.Prompt = "/ "
	ti.CharLimit = 256
	s := ti.Styles()
	s.Focused.Prompt = style.SearchPrompt
	s.Focused.Text = style.SearchQuery
	ti.SetStyles(s)

	return Model{
		list:       lst,
		search:     ti,
		detail:     detail.New(opts.GlamourStyle),
		toasts:     toast.New(),
		live:       live,
		state:      StateBrowsing,
		layoutMode: LayoutDetail,
		keys:       DefaultKeyMap(),
		store:      store,
		label:      opts.Source,
		log:        opts.Logger,
		width:      80,
		height:     24,
	}
}

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return tea.RequestWindowSize() }, m.list.Load())
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		return m, m.recomputeLayout()

	case tea.KeyPressMsg:
		return m.handleKey(v)

	case tea.MouseClickMsg:
		if v.X >= m.layout.ListWidth || v.Y < m.layout.HeaderHeight {
			return m, nil
		}
		v.Y -= m.layout.HeaderHeight
		return m.updateList(v)

	case tea.MouseWheelMsg:
		if v.X >= m.layout.ListWidth {
			return m, nil
		}
		v.Y -= m.layout.HeaderHeight
		return m.updateList(v)

	// -- List plumbing --

	case list.LoadedMsg[source.Record], viewport.FrameMsg, anim.TickMsg:
		return m.updateList(v)

	case msg.LoadCompleted:
		m.log.Debug("batch applied",
			zap.Int("count", v.Count),
			zap.Int("loaded", v.Loaded),
			zap.Int("total", v.Total),
			zap.Bool("exhausted", v.Exhausted),
		)
		return m, nil

	case msg.LoadFailed:
		m.log.Warn("batch failed", zap.Int("offset", v.Offset), zap.Error(v.Err))
		return m, m.toasts.Add(loadFailedText(v.Err), toast.Error)

	case msg.SelectionChanged:
		if r, _, ok := m.list.Selected(); ok && v.Index >= 0 {
			m.detail.SetRecord(&r)
		} else {
			m.detail.SetRecord(nil)
		}
		return m, nil

	case msg.QueryApplied:
		text := "Showing all inspections"
		if v.Query != "" {
			text = "Filter: " + v.Query
		}
		return m, m.toasts.Add(text, toast.Info)

	case toast.ExpireMsg:
		m.toasts.Expire()
		return m, nil
	}

	if m.state == StateSearching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(rawMsg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(v tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(v)
	return m, cmd
}

// -- Key handling -------------------------------------------------------------

func (m Model) handleKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(k, m.keys.Quit) && (m.state == StateBrowsing || k.String() == "ctrl+c") {
		return m, tea.Quit
	}
	switch m.state {
	case StateSearching:
		return m.handleSearchKey(k)
	default:
		return m.handleBrowseKey(k)
	}
}

func (m Model) handleSearchKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Escape):
		m.search.SetValue(m.queryText())
		m.search.Blur()
		m.state = StateBrowsing
		return m, nil

	case key.Matches(k, m.keys.Submit):
		m.search.Blur()
		m.state = StateBrowsing
		return m, m.applyQuery(source.ParseQuery(m.search.Value()))
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(k)
	return m, cmd
}

func (m Model) handleBrowseKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Search):
		m.state = StateSearching
		return m, m.search.Focus()

	case key.Matches(k, m.keys.Escape):
		if m.query.IsZero() {
			return m, nil
		}
		m.search.SetValue("")
		return m, m.applyQuery(source.Query{})

	case key.Matches(k, m.keys.Retry):
		if m.list.Snapshot().LastErr == nil {
			return m, nil
		}
		return m, m.list.Retry()

	case key.Matches(k, m.keys.ToggleDetail):
		if m.layoutMode == LayoutDetail {
			m.layoutMode = LayoutList
		} else {
			m.layoutMode = LayoutDetail
		}
		return m, m.recomputeLayout()

	case key.Matches(k, m.keys.Open):
		return m, m.list.SelectTop()

	case key.Matches(k, m.keys.SelectNext):
		return m, m.list.SelectNext(1)

	case key.Matches(k, m.keys.SelectPrev):
		return m, m.list.SelectNext(-1)
	}
	return m.updateList(k)
}

// applyQuery swaps the list's collection for the records matching q.
func (m *Model) applyQuery(q source.Query) tea.Cmd {
	m.query = q
	m.detail.SetRecord(nil)
	m.list.SetFetcher(recordFetcher(m.store, q))
	m.log.Info("query applied", zap.String("text", q.Text), zap.String("status", q.Status))

	text := m.queryText()
	return tea.Batch(m.list.Reset(), func() tea.Msg { return msg.QueryApplied{Query: text} })
}

func (m Model) queryText() string {
	var parts []string
	if m.query.Status != "" {
		parts = append(parts, "status:"+m.query.Status)
	}
	if m.query.Text != "" {
		parts = append(parts, m.query.Text)
	}
	return strings.Join(parts, " ")
}

// recomputeLayout recalculates the Layout and propagates the new dimensions
// into the sub-models.
func (m *Model) recomputeLayout() tea.Cmd {
	m.layout = ComputeLayout(m.width, m.height, m.layoutMode)
	m.search.SetWidth(max(10, m.width-4))
	m.detail.SetSize(max(0, m.layout.DetailWidth-2), m.layout.ListHeight)
	return m.list.SetSize(m.layout.ListWidth, m.layout.ListHeight)
}

// -- View ---------------------------------------------------------------------

// View returns the tea.View for the current frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderView composes the full terminal frame as a string.
func (m Model) renderView() string {
	sections := []string{
		m.renderHeader(),
		m.renderSearch(),
		m.renderMain(),
		m.renderStatus(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := style.Title("aeroinspect")
	if m.label == "" {
		return title
	}
	avail := m.width - lipgloss.Width(title) - 2
	return title + "  " + style.HeaderDetail.Render(common.TruncatePath(m.label, avail))
}

func (m Model) renderSearch() string {
	if m.state == StateSearching {
		return m.search.View()
	}
	if q := m.queryText(); q != "" {
		return style.SearchPrompt.Render("/ ") + style.SearchQuery.Render(q) +
			style.Hint.Render("  (esc to clear)")
	}
	return style.Hint.Render("/ to search")
}

// renderMain returns the list, side by side with the detail pane when it
// fits. Toasts overlay the bottom lines.
func (m Model) renderMain() string {
	body := m.list.View()
	if m.layout.Mode == LayoutDetail && m.layout.DetailWidth > 0 {
		pane := style.DetailBorder.
			Width(m.layout.DetailWidth).
			Height(m.layout.ListHeight).
			Render(m.detail.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, pane)
	}
	if m.toasts.Len() == 0 {
		return body
	}

	lines := strings.Split(body, "\n")
	toasts := strings.Split(m.toasts.View(m.width), "\n")
	start := max(0, len(lines)-len(toasts))
	for i, t := range toasts {
		if start+i < len(lines) {
			lines[start+i] = t
		}
	}
	return strings.Join(lines, "\n")
}

// renderStatus shows the latest live-region announcement and the key hints.
func (m Model) renderStatus() string {
	var help string
	if m.state == StateSearching {
		help = common.KeyHelp(m.keys.Submit, m.keys.Escape)
	} else {
		lk := m.list.KeyMap()
		help = common.KeyHelp(lk.LineDown, m.keys.Open, m.keys.Search, m.keys.Quit)
	}

	live := ""
	if a, ok := m.live.Latest(); ok {
		st := style.LiveRegion
		if a.Politeness == announce.Assertive {
			st = style.LiveAlert
		}
		live = st.Render(a.Text)
	}

	avail := m.width - lipgloss.Width(help) - 4 // padding plus separator
	line := help
	if live != "" && avail > 8 {
		line = common.FitWidth(live, avail) + "   " + help
	}
	return style.StatusBar.Render(line)
}

// -- Records ------------------------------------------------------------------

// recordFetcher adapts a Store page query to the list's Fetcher.
func recordFetcher(store source.Store, q source.Query) list.Fetcher[source.Record] {
	return func(ctx context.Context, offset, limit int) ([]source.Record, int, error) {
		p, err := store.Page(ctx, q, offset, limit)
		if err != nil {
			return nil, 0, err
		}
		return p.Records, p.Total, nil
	}
}

// recordRenderer draws one inspection row: a status badge, supplier, part,
// score and date. Taller rows add the inspector and notes.
func recordRenderer(height int) list.RenderFunc[source.Record] {
	return func(r source.Record, _ int, width int) string {
		badge := style.Status(r.Status).Render(common.PadRight(statusLabel(r.Status), badgeWidth))
		date := style.RowMeta.Render(r.InspectedAt.UTC().Format("2006-01-02"))
		score := style.RowMeta.Render(fmt.Sprintf("%3d", r.Score))

		fixed := badgeWidth + 1 + 3 + 1 + 10 + 1
		rest := max(0, width-fixed)
		supplierW := rest * 2 / 5
		partW := rest - supplierW
		supplier := style.RowKey.Render(common.PadRight(common.Truncate(r.Supplier, supplierW-1), supplierW))
		part := common.PadRight(common.Truncate(r.Part, partW-1), partW)

		row := badge + " " + supplier + part + score + " " + date
		if height < 2 {
			return row
		}
		second := "  " + style.RowMeta.Render("by "+r.Inspector)
		if notes := strings.TrimSpace(r.Notes); notes != "" {
			second += style.Faint.Render(" · " + common.Truncate(notes, max(0, width-len(r.Inspector)-10)))
		}
		return row + "\n" + second
	}
}

const badgeWidth = 14

func statusLabel(status string) string {
	switch status {
	case source.StatusPassed:
		return "✔ passed"
	case source.StatusFailed:
		return "✘ failed"
	case source.StatusConditional:
		return "◐ conditional"
	default:
		return "○ " + status
	}
}

func loadFailedText(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Loading timed out, press r to retry"
	case errors.Is(err, source.ErrClosed):
		return "Data source closed"
	default:
		return "Loading failed, press r to retry"
	}
}
