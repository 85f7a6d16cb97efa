// Package session holds the client-side state of a search session: the
// article result pages, the article being read with its scored chunks,
// and the chunk selection shared by the reader and the inspector.
//
// Network work is split from state changes. Start records the transition
// and hands back a request; the request's Run performs the call without
// touching the store; Apply commits the result only if no newer request
// has been started since. The TUI runs Run inside a tea.Cmd and Apply in
// its Update loop.
package session

import (
	"context"

	"github.com/pders01/sift/internal/api"
)

type Status int

const (
	StatusIdle Status = iota
	StatusSearching
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ArticleSearcher is the part of the API client the search store needs.
type ArticleSearcher interface {
	SearchArticles(ctx context.Context, query string, page, pageSize int) (*api.Page[api.ScoredArticle], error)
}

// ChunkSearcher is the part of the API client the reading store needs.
type ChunkSearcher interface {
	SearchArticleChunks(ctx context.Context, query string, articleID int64, page, pageSize int) (*api.Page[api.ScoredChunk], error)
}

const (
	DefaultSearchPageSize = 10
	DefaultChunkPageSize  = 100
)
