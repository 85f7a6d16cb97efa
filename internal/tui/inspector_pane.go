package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/debuglog"
	"github.com/pders01/sift/internal/finder"
	"github.com/pders01/sift/internal/relevance"
	"github.com/pders01/sift/internal/session"
)

// inspectorChromeLines covers the column header and the find line.
const inspectorChromeLines = 2

type inspectorPane struct {
	reading *session.ReadingStore
	coord   *session.Coordinator
	finder  *finder.Finder

	find    textinput.Model
	finding bool
	// matches is nil when no filter is active.
	matches map[int64]bool

	cursor int
	top    int

	width  int
	height int
}

func newInspectorPane(reading *session.ReadingStore, coord *session.Coordinator, f *finder.Finder) *inspectorPane {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "find in article"

	return &inspectorPane{
		reading: reading,
		coord:   coord,
		finder:  f,
		find:    ti,
	}
}

func (p *inspectorPane) setSize(width, height int) {
	p.width = width
	p.height = height
	p.find.Width = max(width-2, 1)
	p.clampWindow()
}

// reset drops cursor and filter, used whenever a new chunk list lands.
func (p *inspectorPane) reset() {
	p.cursor = 0
	p.top = 0
	p.matches = nil
	p.finding = false
	p.find.SetValue("")
	p.find.Blur()
}

// rows are the chunks in backend order, narrowed by the find filter.
func (p *inspectorPane) rows() []api.ScoredChunk {
	chunks := p.reading.State().Chunks
	if p.matches == nil {
		return chunks
	}
	out := make([]api.ScoredChunk, 0, len(p.matches))
	for _, c := range chunks {
		if p.matches[c.Chunk.ID] {
			out = append(out, c)
		}
	}
	return out
}

func (p *inspectorPane) current() (api.ScoredChunk, bool) {
	rows := p.rows()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return api.ScoredChunk{}, false
	}
	return rows[p.cursor], true
}

// move shifts the cursor and highlights the chunk under it.
func (p *inspectorPane) move(delta int) {
	rows := p.rows()
	if len(rows) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(rows)-1)
	p.clampWindow()
	id := rows[p.cursor].Chunk.ID
	p.coord.SetHighlightedChunkID(&id)
}

func (p *inspectorPane) moveTo(index int) {
	p.move(index - p.cursor)
}

// activate asks the reader to scroll to the chunk under the cursor.
func (p *inspectorPane) activate() {
	c, ok := p.current()
	if !ok {
		return
	}
	id := c.Chunk.ID
	p.coord.SetHighlightedChunkID(&id)
	p.coord.SetScrollToChunkID(&id)
}

func (p *inspectorPane) visibleRows() int {
	return max(p.height-inspectorChromeLines, 1)
}

func (p *inspectorPane) clampWindow() {
	visible := p.visibleRows()
	if p.cursor < p.top {
		p.top = p.cursor
	}
	if p.cursor >= p.top+visible {
		p.top = p.cursor - visible + 1
	}
	p.top = max(p.top, 0)
}

func (p *inspectorPane) openFind() tea.Cmd {
	p.finding = true
	return p.find.Focus()
}

// closeFind stops editing. keep retains the current filter.
func (p *inspectorPane) closeFind(keep bool) {
	p.finding = false
	p.find.Blur()
	if !keep {
		p.find.SetValue("")
		p.matches = nil
		p.cursor = 0
		p.top = 0
	}
}

func (p *inspectorPane) filtered() bool { return p.matches != nil }

func (p *inspectorPane) updateFind(msg tea.Msg) tea.Cmd {
	prev := p.find.Value()
	var cmd tea.Cmd
	p.find, cmd = p.find.Update(msg)
	if term := p.find.Value(); term != prev {
		p.applyFilter(term)
	}
	return cmd
}

func (p *inspectorPane) applyFilter(term string) {
	p.cursor = 0
	p.top = 0
	if len([]rune(strings.TrimSpace(term))) < finder.MinTermLength {
		p.matches = nil
		return
	}
	ids, err := p.finder.Find(term, 0)
	if err != nil {
		debuglog.Warnf("find %q: %v", term, err)
		p.matches = nil
		return
	}
	p.matches = make(map[int64]bool, len(ids))
	for _, id := range ids {
		p.matches[id] = true
	}
}

func (p *inspectorPane) view(focused bool, spin string) string {
	st := p.reading.State()

	switch {
	case st.Loading():
		return spin + " " + renderMuted("Loading...")
	case st.Status == session.StatusFailed:
		return ErrorMessageStyle.Render(errorText(st.Err))
	case st.Selected == nil:
		return renderMuted(MsgNotAvailable)
	}

	rows := p.rows()
	lines := []string{HeaderStyle.Render("  Cosine Chunk")}
	if len(rows) == 0 {
		msg := MsgNoChunks
		if p.filtered() {
			msg = MsgNoMatches
		}
		lines = append(lines, renderMuted(msg))
	}

	end := min(p.top+p.visibleRows(), len(rows))
	for i := p.top; i < end; i++ {
		lines = append(lines, p.renderRow(rows[i], focused && i == p.cursor))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if p.finding || p.filtered() {
		findLine := p.find.View()
		if !p.finding {
			findLine = renderMuted("/" + p.find.Value())
		}
		if p.filtered() {
			findLine += " " + renderMuted("("+MsgMatches(len(rows))+")")
		}
		body = lipgloss.JoinVertical(lipgloss.Left, clipLines(body, p.height-1), findLine)
	}
	return body
}

func (p *inspectorPane) renderRow(c api.ScoredChunk, atCursor bool) string {
	color := DistanceColor(c.Distance)
	distance := relevance.FormatDistance(c.Distance)

	cursor := "  "
	if atCursor {
		cursor = CursorStyle.Render("› ")
	}

	textWidth := max(p.width-2-len(distance)-1, 1)
	text := truncateEnd(singleLine(c.Chunk.Text), textWidth)

	textStyle := lipgloss.NewStyle().Foreground(TextColor)
	if p.coord.IsHighlighted(c.Chunk.ID) {
		textStyle = lipgloss.NewStyle().Foreground(color).Underline(true)
	}

	return cursor + lipgloss.NewStyle().Foreground(color).Render(distance) + " " + textStyle.Render(text)
}
