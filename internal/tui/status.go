package tui

import (
	"fmt"

	"github.com/pders01/sift/internal/api"
)

// Canonical short status messages used across the app.
const (
	MsgSearching      = "Searching…"
	MsgLoadingArticle = "Loading article…"
	MsgNotAvailable   = "n/a"
	MsgNoChunks       = "No chunks"
	MsgNoMatches      = "No matches"
	MsgSelectArticle  = "Select an article to start reading"
	MsgNothingToOpen  = "No article to open"
)

func MsgArticlesSimilarTo(query string) string {
	if query == "" {
		query = MsgNotAvailable
	}
	return "articles similar to: " + query
}

// MsgRange is the pager line, "1 - 10 of 25".
func MsgRange(r api.Range, total int) string {
	return fmt.Sprintf("%d - %d of %d", r.Start, r.End, total)
}

func MsgMatches(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

func MsgOpened(url string) string {
	return "Opened " + url
}
