package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/session"
)

type fakeArticles struct {
	mu    sync.Mutex
	total int
	err   error
	pages []int
	query []string
}

func (f *fakeArticles) SearchArticles(_ context.Context, query string, page, pageSize int) (*api.Page[api.ScoredArticle], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
	f.query = append(f.query, query)
	if f.err != nil {
		return nil, f.err
	}

	start := (page - 1) * pageSize
	n := max(min(pageSize, f.total-start), 0)
	items := make([]api.ScoredArticle, n)
	for i := range items {
		id := int64(start + i + 1)
		items[i] = api.ScoredArticle{
			Article: api.Article{
				ID:           id,
				ContentTitle: fmt.Sprintf("Article %d", id),
				OGSiteName:   "Wire",
				PageURL:      fmt.Sprintf("https://news.example/%d", id),
			},
			Distance: 0.2 + float64(i)*0.05,
		}
	}
	return &api.Page[api.ScoredArticle]{Items: items, Total: f.total, Page: page, PageSize: pageSize}, nil
}

func (f *fakeArticles) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pages...)
}

type fakeChunks struct {
	mu     sync.Mutex
	chunks map[int64][]api.ScoredChunk
	err    error
	calls  []int64
}

func (f *fakeChunks) SearchArticleChunks(_ context.Context, _ string, articleID int64, _, _ int) (*api.Page[api.ScoredChunk], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, articleID)
	if f.err != nil {
		return nil, f.err
	}
	items := f.chunks[articleID]
	return &api.Page[api.ScoredChunk]{Items: items, Total: len(items), Page: 1, PageSize: 100}, nil
}

func (f *fakeChunks) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

func chunk(id, articleID int64, distance float64, text string) api.ScoredChunk {
	return api.ScoredChunk{
		Chunk:    api.ArticleChunk{ID: id, ArticleID: articleID, Text: text},
		Distance: distance,
	}
}

// descendingChunks returns n chunks for articleID in backend order n..1.
func descendingChunks(articleID int64, n int) []api.ScoredChunk {
	out := make([]api.ScoredChunk, 0, n)
	for id := n; id >= 1; id-- {
		out = append(out, chunk(int64(id), articleID, float64(id)/float64(n+1),
			fmt.Sprintf("paragraph %d %s", id, strings.Repeat("lorem ipsum ", 3))))
	}
	return out
}

type harness struct {
	app      *App
	articles *fakeArticles
	chunks   *fakeChunks
}

func newHarness(t *testing.T, width, height int) *harness {
	t.Helper()
	articles := &fakeArticles{total: 3}
	chunks := &fakeChunks{chunks: map[int64][]api.ScoredChunk{
		1: {
			chunk(12, 1, 0.45, "The central bank held rates steady."),
			chunk(10, 1, 0.21, "Inflation cooled for a third month."),
			chunk(11, 1, 0.65, "Markets rallied on the news."),
		},
	}}

	app := NewApp(config.TestConfig(), Options{
		Search:      session.NewSearchStore(articles, 10),
		Reading:     session.NewReadingStore(chunks, 100),
		Coordinator: session.NewCoordinator(),
	})
	t.Cleanup(func() { _ = app.Close() })
	// Blinking cursors would make every keystroke wait on a timer.
	app.searchPane.input.Cursor.SetMode(cursor.CursorStatic)
	app.inspector.find.Cursor.SetMode(cursor.CursorStatic)
	app.Update(tea.WindowSizeMsg{Width: width, Height: height})

	return &harness{app: app, articles: articles, chunks: chunks}
}

// press sends one key and runs every command it spawns.
func (h *harness) press(t *testing.T, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := h.app.Update(msg)
	h.drain(cmd)
}

func (h *harness) typeText(t *testing.T, s string) {
	t.Helper()
	h.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) search(t *testing.T, query string) {
	t.Helper()
	h.app.searchPane.input.SetValue(query)
	h.press(t, tea.KeyMsg{Type: tea.KeyEnter})
}

// drain executes cmd and feeds resulting messages back into the app.
// Spinner ticks are dropped so the loop terminates.
func (h *harness) drain(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := h.app.Update(msg)
			queue = append(queue, next)
		}
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
