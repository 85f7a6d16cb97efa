package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/debuglog"
	"github.com/pders01/sift/internal/session"
)

type readerPane struct {
	reading    *session.ReadingStore
	coord      *session.Coordinator
	viewport   viewport.Model
	dateFormat string

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	header          string
	headerKey       string

	// offsets maps a chunk id to the first content line of its block.
	offsets map[int64]int
	dirty   bool

	width  int
	height int
}

func newReaderPane(reading *session.ReadingStore, coord *session.Coordinator, dateFormat string) *readerPane {
	return &readerPane{
		reading:    reading,
		coord:      coord,
		viewport:   viewport.New(0, 0),
		dateFormat: dateFormat,
		offsets:    map[int64]int{},
		dirty:      true,
	}
}

func (r *readerPane) setSize(width, height int) {
	if width != r.width {
		r.dirty = true
	}
	r.width = width
	r.height = height
	r.viewport.Width = width
	r.viewport.Height = max(height-1, 1)
}

func (r *readerPane) markDirty() { r.dirty = true }

// refresh rebuilds the viewport content if anything it depends on changed.
func (r *readerPane) refresh() {
	if !r.dirty {
		return
	}
	r.dirty = false

	st := r.reading.State()
	if st.Selected == nil {
		r.offsets = map[int64]int{}
		r.viewport.SetContent("")
		return
	}
	content, offsets := r.build(st)
	r.offsets = offsets
	r.viewport.SetContent(content)
}

func (r *readerPane) gotoTop() { r.viewport.GotoTop() }

// scrollTo moves the viewport to a chunk. Unknown ids are ignored.
func (r *readerPane) scrollTo(id int64) bool {
	off, ok := r.offsets[id]
	if !ok {
		debuglog.Debugf("scroll target %d not in reader", id)
		return false
	}
	r.viewport.SetYOffset(off)
	return true
}

func (r *readerPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return cmd
}

func (r *readerPane) build(st session.ReadingState) (string, map[int64]int) {
	offsets := make(map[int64]int, len(st.Chunks))

	header := r.renderArticleHeader(st.Selected)
	parts := []string{header}
	n := lineCount(header)

	for _, c := range session.SortByID(st.Chunks) {
		block := r.renderChunk(c)
		offset := n + 1
		offsets[c.Chunk.ID] = offset
		parts = append(parts, block)
		n = offset + lineCount(block)
	}
	return strings.Join(parts, "\n\n"), offsets
}

func (r *readerPane) renderChunk(c api.ScoredChunk) string {
	color := DistanceColor(c.Distance)
	style := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color).
		Foreground(TextColor).
		PaddingLeft(1).
		Width(max(r.width-1, 10))
	if r.coord.IsHighlighted(c.Chunk.ID) {
		style = style.Underline(true).Foreground(color)
	}
	return style.Render(strings.TrimSpace(c.Chunk.Text))
}

func (r *readerPane) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := min(max(r.width-2, 20), 120)
	if r.glamourRenderer == nil || r.rendererWidth != wordWrapWidth {
		gr, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		r.glamourRenderer = gr
		r.rendererWidth = wordWrapWidth
	}
	return r.glamourRenderer, nil
}

// renderArticleHeader renders title and metadata through glamour, cached
// per article and width.
func (r *readerPane) renderArticleHeader(a *api.Article) string {
	key := fmt.Sprintf("%d:%d", a.ID, r.width)
	if key == r.headerKey {
		return r.header
	}

	md := articleMarkdown(a, r.dateFormat)
	out := md
	if gr, err := r.getRenderer(); err != nil {
		debuglog.Warnf("glamour renderer unavailable: %v", err)
	} else if rendered, err := gr.Render(md); err != nil {
		debuglog.Warnf("rendering header for article %d: %v", a.ID, err)
	} else {
		out = rendered
	}

	r.header = strings.Trim(out, "\n")
	r.headerKey = key
	return r.header
}

func articleMarkdown(a *api.Article, dateFormat string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.DisplayTitle())

	var meta []string
	if a.OGSiteName != "" {
		meta = append(meta, a.OGSiteName)
	}
	meta = append(meta, a.PublishDatetime.Format(dateFormat))
	fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " · "))

	if authors := a.AuthorList(); len(authors) > 0 {
		fmt.Fprintf(&b, "**Authors:** %s\n\n", strings.Join(authors, ", "))
	}
	if tags := a.TagList(); len(tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(tags, ", "))
	}
	if a.PageURL != "" {
		fmt.Fprintf(&b, "<%s>\n\n", a.PageURL)
	}
	b.WriteString("---\n")
	return b.String()
}

func (r *readerPane) view(spin string) string {
	st := r.reading.State()

	switch {
	case st.Status == session.StatusFailed:
		return ErrorMessageStyle.Render(errorText(st.Err))
	case st.Loading() && st.Selected == nil:
		return renderCentered(r.width, r.height, spin+" "+renderMuted(MsgLoadingArticle))
	case st.Selected == nil:
		return renderCentered(r.width, r.height, GetCompactBanner(MsgSelectArticle))
	}

	line := fmt.Sprintf("%d chunks • %3.f%%", len(st.Chunks), r.viewport.ScrollPercent()*100)
	if room := r.width - len([]rune(line)) - 3; st.Selected.PageURL != "" && room >= 12 {
		line += " • " + truncateMiddle(st.Selected.PageURL, room)
	}
	status := renderMuted(line)
	if st.Loading() {
		status = spin + " " + renderMuted(MsgLoadingArticle)
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.viewport.View(), status)
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}
