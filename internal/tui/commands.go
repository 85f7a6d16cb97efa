package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/debuglog"
	"github.com/pders01/sift/internal/session"
)

// recallLimit is how many past queries the search input can step through.
const recallLimit = 50

type searchResultMsg struct {
	result session.SearchResult
}

type readingResultMsg struct {
	result session.ReadingResult
}

type historyLoadedMsg struct {
	queries []string
}

type openedMsg struct {
	url string
	err error
}

type errorMsg struct {
	err error
}

// runSearch executes req off the update loop; the store is only touched
// when the result comes back through Update.
func (a *App) runSearch(req session.SearchRequest) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return searchResultMsg{result: req.Run(ctx)}
	}
}

func (a *App) runReading(req session.ReadingRequest) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return readingResultMsg{result: req.Run(ctx)}
	}
}

func (a *App) loadHistory() tea.Cmd {
	if a.history == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := a.history.RecentQueries(recallLimit)
		if err != nil {
			return errorMsg{err: wrapErr("loading history", err)}
		}
		queries := make([]string, len(entries))
		for i, e := range entries {
			queries[i] = e.Query
		}
		return historyLoadedMsg{queries: queries}
	}
}

func (a *App) recordQuery(query string, total int) tea.Cmd {
	if a.history == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.history.RecordQuery(query, total); err != nil {
			debuglog.Warnf("recording query %q: %v", query, err)
		}
		return nil
	}
}

func (a *App) recordArticle(article api.Article, query string) tea.Cmd {
	if a.history == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.history.RecordArticle(article, query); err != nil {
			debuglog.Warnf("recording article %d: %v", article.ID, err)
		}
		return nil
	}
}

func (a *App) openURL(url string) tea.Cmd {
	opener := a.opener
	return func() tea.Msg {
		if opener == nil {
			return openedMsg{url: url, err: wrapErr("open", errNoOpener)}
		}
		if err := opener.Open(url); err != nil {
			return openedMsg{url: url, err: wrapErr("open", err)}
		}
		return openedMsg{url: url}
	}
}
