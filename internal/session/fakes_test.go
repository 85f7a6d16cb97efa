package session

import (
	"context"
	"sync"

	"github.com/pders01/sift/internal/api"
)

type searchCall struct {
	Query    string
	Page     int
	PageSize int
}

type fakeArticles struct {
	mu    sync.Mutex
	calls []searchCall
	total int
	err   error
}

func (f *fakeArticles) SearchArticles(_ context.Context, query string, page, pageSize int) (*api.Page[api.ScoredArticle], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, searchCall{Query: query, Page: page, PageSize: pageSize})
	if f.err != nil {
		return nil, f.err
	}
	return articlePage(query, page, pageSize, f.total), nil
}

func (f *fakeArticles) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// articlePage builds a valid page of total results; article ids encode
// their position so tests can tell pages apart.
func articlePage(query string, page, pageSize, total int) *api.Page[api.ScoredArticle] {
	p := &api.Page[api.ScoredArticle]{Items: []api.ScoredArticle{}, Total: total, Page: page, PageSize: pageSize}
	for i := (page - 1) * pageSize; i < page*pageSize && i < total; i++ {
		p.Items = append(p.Items, api.ScoredArticle{
			Article:  api.Article{ID: int64(i + 1), ContentTitle: query},
			Distance: 0.1,
		})
	}
	return p
}

type chunkCall struct {
	Query     string
	ArticleID int64
	Page      int
	PageSize  int
}

type fakeChunks struct {
	mu     sync.Mutex
	calls  []chunkCall
	chunks map[int64][]api.ScoredChunk
	fail   map[int64]error
}

func newFakeChunks() *fakeChunks {
	return &fakeChunks{chunks: map[int64][]api.ScoredChunk{}, fail: map[int64]error{}}
}

func (f *fakeChunks) SearchArticleChunks(_ context.Context, query string, articleID int64, page, pageSize int) (*api.Page[api.ScoredChunk], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, chunkCall{Query: query, ArticleID: articleID, Page: page, PageSize: pageSize})
	if err := f.fail[articleID]; err != nil {
		return nil, err
	}
	items := f.chunks[articleID]
	return &api.Page[api.ScoredChunk]{Items: items, Total: len(items), Page: page, PageSize: pageSize}, nil
}

func scored(id, articleID int64, distance float64) api.ScoredChunk {
	return api.ScoredChunk{
		Chunk:    api.ArticleChunk{ID: id, ArticleID: articleID, Text: "chunk"},
		Distance: distance,
	}
}

var errBoom error = &api.RequestFailedError{Status: 500}
