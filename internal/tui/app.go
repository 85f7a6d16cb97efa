package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/debuglog"
	"github.com/pders01/sift/internal/finder"
	"github.com/pders01/sift/internal/history"
	"github.com/pders01/sift/internal/session"
)

// URLOpener opens an article's source page. *browser.Launcher satisfies it.
type URLOpener interface {
	Open(url string) error
}

// Options carries the handles the dashboard is built from. Search, Reading
// and Coordinator are required; the rest may be nil.
type Options struct {
	Search      *session.SearchStore
	Reading     *session.ReadingStore
	Coordinator *session.Coordinator
	Finder      *finder.Finder
	History     *history.Store
	Opener      URLOpener
}

type App struct {
	config     *config.Config
	ctx        context.Context
	search     *session.SearchStore
	reading    *session.ReadingStore
	coord      *session.Coordinator
	finder     *finder.Finder
	history    *history.Store
	opener     URLOpener
	keyHandler *KeyHandler

	searchPane *searchPane
	reader     *readerPane
	inspector  *inspectorPane
	spinner    spinner.Model

	focus       Pane
	width       int
	height      int
	err         error
	status      string
	statusKind  StatusKind
	unsubscribe func()
}

// NewApp builds the dashboard. A missing store is a wiring bug and panics.
func NewApp(cfg *config.Config, opts Options) *App {
	switch {
	case opts.Search == nil:
		panic("tui: NewApp requires a SearchStore")
	case opts.Reading == nil:
		panic("tui: NewApp requires a ReadingStore")
	case opts.Coordinator == nil:
		panic("tui: NewApp requires a Coordinator")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Finder == nil {
		opts.Finder = finder.New()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	app := &App{
		config:     cfg,
		ctx:        context.Background(),
		search:     opts.Search,
		reading:    opts.Reading,
		coord:      opts.Coordinator,
		finder:     opts.Finder,
		history:    opts.History,
		opener:     opts.Opener,
		searchPane: newSearchPane(opts.Search, opts.Reading, cfg.UI.DateFormat),
		reader:     newReaderPane(opts.Reading, opts.Coordinator, cfg.UI.DateFormat),
		inspector:  newInspectorPane(opts.Reading, opts.Coordinator, opts.Finder),
		spinner:    sp,
		focus:      PaneSearch,
	}
	app.keyHandler = NewKeyHandler(app)

	// Any highlight or scroll change can restyle the reader.
	app.unsubscribe = app.coord.Subscribe(func(ev session.Event) {
		app.reader.markDirty()
		if ev.ChunkID != nil {
			debuglog.Debugf("coordinator %s -> chunk %d", ev.Kind, *ev.ChunkID)
		}
	})

	return app
}

// WithContext sets the context requests run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Close releases the coordinator subscription and the find index.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	return a.finder.Close()
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadHistory(),
		a.searchPane.focusInput(),
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()

	case tea.KeyMsg:
		_, cmd := a.keyHandler.HandleKey(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		if a.focus == PaneReader {
			cmds = append(cmds, a.reader.update(msg))
		}

	case spinner.TickMsg:
		if a.busy() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case searchResultMsg:
		cmds = append(cmds, a.applySearch(msg.result))

	case readingResultMsg:
		cmds = append(cmds, a.applyReading(msg.result))

	case historyLoadedMsg:
		a.searchPane.setRecall(msg.queries)

	case openedMsg:
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.setStatus(MsgOpened(msg.url), StatusSuccess)
		}

	case errorMsg:
		a.err = msg.err
	}

	a.sync()
	return a, tea.Batch(cmds...)
}

// sync brings the reader up to date and performs queued scrolls.
func (a *App) sync() {
	a.reader.refresh()
	for {
		id, ok := a.coord.TakeScroll()
		if !ok {
			return
		}
		a.reader.scrollTo(id)
	}
}

func (a *App) busy() bool {
	return a.search.Loading() || a.reading.State().Loading()
}

func (a *App) narrow() bool {
	return a.width < a.config.UI.NarrowWidth
}

func (a *App) setFocus(p Pane) {
	a.focus = p
	if p != PaneSearch {
		a.searchPane.focusList()
	}
	if p != PaneInspector && a.inspector.finding {
		a.inspector.closeFind(true)
	}
}

func (a *App) setStatus(msg string, kind StatusKind) {
	a.status = msg
	a.statusKind = kind
}

func (a *App) clearStatus() {
	a.err = nil
	a.status = ""
}

func (a *App) submitSearch() tea.Cmd {
	req := a.search.Search(a.searchPane.input.Value())
	a.searchPane.recallIdx = -1
	return tea.Batch(a.spinner.Tick, a.runSearch(req))
}

func (a *App) nextPage() tea.Cmd {
	req, ok := a.search.NextPage()
	if !ok {
		return nil
	}
	return tea.Batch(a.spinner.Tick, a.runSearch(req))
}

func (a *App) prevPage() tea.Cmd {
	req, ok := a.search.PrevPage()
	if !ok {
		return nil
	}
	return tea.Batch(a.spinner.Tick, a.runSearch(req))
}

// selectArticle loads an article into the reader unless it is already the
// one shown or being fetched.
func (a *App) selectArticle(article api.Article) tea.Cmd {
	if a.reading.Targets(article.ID) {
		return nil
	}
	req := a.reading.Start(article, a.search.CurrentQuery())
	a.reader.markDirty()
	if a.narrow() {
		a.setFocus(PaneReader)
	}
	return tea.Batch(a.spinner.Tick, a.runReading(req))
}

func (a *App) deselectArticle() {
	a.reading.Reset()
	a.coord.Clear()
	a.finder.Reset()
	a.inspector.reset()
	a.reader.markDirty()
}

func (a *App) applySearch(res session.SearchResult) tea.Cmd {
	if !a.search.Apply(res) {
		return nil
	}
	a.searchPane.syncResults()

	st := a.search.State()
	if st.Status != session.StatusSucceeded {
		debuglog.Warnf("search %q failed: %v", res.Query, st.Err)
		return nil
	}
	a.searchPane.remember(st.Query)
	if a.focus == PaneSearch && a.searchPane.inputFocused() && len(st.Data.Items) > 0 {
		a.searchPane.focusList()
	}
	return a.recordQuery(st.Query, st.Data.Total)
}

func (a *App) applyReading(res session.ReadingResult) tea.Cmd {
	if !a.reading.Apply(res) {
		return nil
	}
	a.coord.Clear()
	a.inspector.reset()
	a.reader.markDirty()

	st := a.reading.State()
	if st.Status != session.StatusSucceeded {
		a.finder.Reset()
		return nil
	}
	if err := a.finder.Index(st.Chunks); err != nil {
		debuglog.Warnf("indexing chunks of article %d: %v", st.Selected.ID, err)
	}
	a.reader.refresh()
	a.reader.gotoTop()
	return a.recordArticle(*st.Selected, st.Query)
}

// openTarget is the reader's article, or the result under the cursor when
// nothing is being read.
func (a *App) openTarget() (string, bool) {
	if sel := a.reading.Selected(); sel != nil && sel.PageURL != "" {
		return sel.PageURL, true
	}
	if article, ok := a.searchPane.selected(); ok && article.PageURL != "" {
		return article.PageURL, true
	}
	return "", false
}

// paneSizes are the outer widths of the three columns and their height.
func (a *App) paneSizes() (search, reader, inspector, height int) {
	height = max(a.height-2, 3)
	if a.narrow() {
		return a.width, a.width, a.width, max(height-1, 3)
	}
	search = a.width * 35 / 100
	inspector = a.width * 25 / 100
	reader = a.width - search - inspector
	return search, reader, inspector, height
}

func (a *App) layout() {
	sw, rw, iw, h := a.paneSizes()
	inner := max(h-2, 1)
	a.searchPane.setSize(max(sw-2, 1), inner)
	a.reader.setSize(max(rw-2, 1), inner)
	a.inspector.setSize(max(iw-2, 1), inner)
}

func (a *App) renderPane(p Pane, width, height int) string {
	focused := a.focus == p
	spin := a.spinner.View()

	var body string
	switch p {
	case PaneSearch:
		body = a.searchPane.view(focused, spin)
	case PaneReader:
		body = a.reader.view(spin)
	case PaneInspector:
		body = a.inspector.view(focused, spin)
	}
	return renderPane(body, width, height, focused)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}

	sw, rw, iw, h := a.paneSizes()
	var content string
	if a.narrow() {
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			renderTabStrip(a.focus, a.width),
			a.renderPane(a.focus, a.width, h),
		)
	} else {
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			a.renderPane(PaneSearch, sw, h),
			a.renderPane(PaneReader, rw, h),
			a.renderPane(PaneInspector, iw, h),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Top, content, renderSeparator(a.width), a.statusBar())
}

func (a *App) statusBar() string {
	bar := lipgloss.NewStyle().
		Width(a.width).
		MaxHeight(1).
		Padding(0, 1).
		Foreground(MutedColor)

	if a.err != nil {
		return bar.Render(ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err)))
	}
	if a.status != "" {
		return bar.Render(StatusStyle(a.statusKind).Render(a.status))
	}
	return bar.Render(strings.Join(a.keyHandler.GetHelpForCurrentPane(), " • "))
}
