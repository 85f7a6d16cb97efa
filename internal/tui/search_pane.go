package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/relevance"
	"github.com/pders01/sift/internal/session"
)

// searchChromeLines is everything above the result list: input frame,
// query line, pager line and the column header.
const searchChromeLines = 6

type resultItem struct {
	result api.ScoredArticle
}

func (i resultItem) FilterValue() string { return i.result.Article.DisplayTitle() }

// resultDelegate renders one result row: distance, title, date.
type resultDelegate struct {
	reading    *session.ReadingStore
	dateFormat string
}

func (d resultDelegate) Height() int                             { return 1 }
func (d resultDelegate) Spacing() int                            { return 0 }
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d resultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(resultItem)
	if !ok {
		return
	}
	article := it.result.Article

	cursor := "  "
	if index == m.Index() {
		cursor = CursorStyle.Render("› ")
	}
	distance := relevance.FormatDistance(it.result.Distance)
	date := article.PublishDatetime.Format(d.dateFormat)

	titleWidth := m.Width() - 2 - len(distance) - len([]rune(date)) - 2
	title := padRight(truncateEnd(singleLine(article.DisplayTitle()), titleWidth), titleWidth)

	titleStyle := lipgloss.NewStyle().Foreground(TextColor)
	if d.reading.Targets(article.ID) {
		titleStyle = SelectedStyle
	}

	fmt.Fprintf(w, "%s%s %s %s",
		cursor,
		lipgloss.NewStyle().Foreground(DistanceColor(it.result.Distance)).Render(distance),
		titleStyle.Render(title),
		TimeStyle.Render(date),
	)
}

type searchPane struct {
	store      *session.SearchStore
	input      textinput.Model
	list       list.Model
	dateFormat string

	// recall holds previous queries, newest first. recallIdx is -1 while
	// the user edits a fresh query.
	recall    []string
	recallIdx int
	draft     string

	width  int
	height int
}

func newSearchPane(store *session.SearchStore, reading *session.ReadingStore, dateFormat string) *searchPane {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "› "
	ti.Focus()

	l := list.New([]list.Item{}, resultDelegate{reading: reading, dateFormat: dateFormat}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	return &searchPane{
		store:      store,
		input:      ti,
		list:       l,
		dateFormat: dateFormat,
		recallIdx:  -1,
	}
}

func (p *searchPane) setSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(width-6, 1)
	p.list.SetSize(width, max(height-searchChromeLines, 1))
}

func (p *searchPane) inputFocused() bool { return p.input.Focused() }

func (p *searchPane) focusInput() tea.Cmd {
	return p.input.Focus()
}

func (p *searchPane) focusList() {
	p.input.Blur()
}

// clearInput empties the input and reports whether there was anything
// to clear.
func (p *searchPane) clearInput() bool {
	had := p.input.Value() != ""
	p.input.SetValue("")
	p.recallIdx = -1
	p.draft = ""
	return had
}

// syncResults mirrors the store's current page into the list.
func (p *searchPane) syncResults() {
	data := p.store.Data()
	if data == nil {
		p.list.SetItems(nil)
		return
	}
	items := make([]list.Item, len(data.Items))
	for i, r := range data.Items {
		items[i] = resultItem{result: r}
	}
	p.list.SetItems(items)
	p.list.Select(0)
}

func (p *searchPane) selected() (api.Article, bool) {
	it, ok := p.list.SelectedItem().(resultItem)
	if !ok {
		return api.Article{}, false
	}
	return it.result.Article, true
}

func (p *searchPane) setRecall(queries []string) {
	p.recall = queries
	p.recallIdx = -1
}

// remember moves query to the front of the recall list.
func (p *searchPane) remember(query string) {
	if query == "" {
		return
	}
	out := []string{query}
	for _, q := range p.recall {
		if q != query {
			out = append(out, q)
		}
	}
	p.recall = out
	p.recallIdx = -1
}

// recallOlder steps back through history, saving the unsent draft first.
func (p *searchPane) recallOlder() {
	if p.recallIdx+1 >= len(p.recall) {
		return
	}
	if p.recallIdx == -1 {
		p.draft = p.input.Value()
	}
	p.recallIdx++
	p.input.SetValue(p.recall[p.recallIdx])
	p.input.CursorEnd()
}

func (p *searchPane) recallNewer() {
	if p.recallIdx < 0 {
		return
	}
	p.recallIdx--
	if p.recallIdx == -1 {
		p.input.SetValue(p.draft)
	} else {
		p.input.SetValue(p.recall[p.recallIdx])
	}
	p.input.CursorEnd()
}

func (p *searchPane) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *searchPane) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

func (p *searchPane) view(focused bool, spin string) string {
	st := p.store.State()

	rows := []string{
		renderInputFrame(p.input.View(), focused && p.input.Focused(), max(p.width-4, 1)),
		lipgloss.NewStyle().MaxWidth(p.width).Render(LabelStyle.Render("articles similar to: ") + queryLabel(st.Query)),
		p.pagerLine(st),
	}

	switch {
	case st.Status == session.StatusFailed:
		rows = append(rows, "", ErrorMessageStyle.Render(errorText(st.Err)))
	case st.Loading():
		rows = append(rows, p.columnHeader(), spin+" "+renderMuted(MsgSearching))
	case st.Data == nil:
		rows = append(rows, p.columnHeader(), renderMuted(MsgNotAvailable))
	default:
		rows = append(rows, p.columnHeader(), p.list.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func queryLabel(query string) string {
	if query == "" {
		return lipgloss.NewStyle().Italic(true).Bold(true).Render(MsgNotAvailable)
	}
	return lipgloss.NewStyle().Foreground(TextColor).Bold(true).Render(query)
}

// pagerLine is "start - end of total ‹ ›" with disabled arrows dimmed.
func (p *searchPane) pagerLine(st session.SearchState) string {
	if st.Data == nil {
		return ""
	}
	arrow := func(glyph string, enabled bool) string {
		if enabled {
			return CursorStyle.Render(glyph)
		}
		return lipgloss.NewStyle().Foreground(MutedColor).Faint(true).Render(glyph)
	}
	line := renderMuted(MsgRange(st.Data.Range(), st.Data.Total)) + "  " +
		arrow("‹", st.Data.HasPrevious()) + " " + arrow("›", st.Data.HasNext())
	return lipgloss.NewStyle().Width(p.width).Align(lipgloss.Right).Render(line)
}

func (p *searchPane) columnHeader() string {
	left, right := "  Cosine Title", "Date"
	return HeaderStyle.Render(padRight(left, p.width-len(right)) + right)
}
