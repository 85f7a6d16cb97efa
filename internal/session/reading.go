package session

import (
	"context"
	"slices"
	"sync"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/debuglog"
)

// ReadingState is a consistent snapshot of a ReadingStore.
type ReadingState struct {
	Status Status
	// Selected is set only once its chunks have loaded.
	Selected *api.Article
	Query    string
	// Chunks are in backend order. Use SortByID for display.
	Chunks []api.ScoredChunk
	Err    error
}

func (s ReadingState) Loading() bool { return s.Status == StatusSearching }

// ReadingRequest loads the chunks of one article for a query.
type ReadingRequest struct {
	Seq      uint64
	Article  api.Article
	Query    string
	PageSize int

	client ChunkSearcher
}

func (r ReadingRequest) Run(ctx context.Context) ReadingResult {
	page, err := r.client.SearchArticleChunks(ctx, r.Query, r.Article.ID, 1, r.PageSize)
	res := ReadingResult{Seq: r.Seq, Article: r.Article, Query: r.Query, Err: err}
	if err == nil {
		res.Chunks = page.Items
	}
	return res
}

type ReadingResult struct {
	Seq     uint64
	Article api.Article
	Query   string
	Chunks  []api.ScoredChunk
	Err     error
}

// ReadingStore is the reading session: the selected article and its
// scored chunks. It does not deduplicate selections.
type ReadingStore struct {
	mu       sync.Mutex
	client   ChunkSearcher
	pageSize int
	seq      uint64
	pending  *api.Article
	state    ReadingState
}

func NewReadingStore(client ChunkSearcher, pageSize int) *ReadingStore {
	if client == nil {
		panic("session: NewReadingStore requires a client")
	}
	if pageSize < 1 {
		pageSize = DefaultChunkPageSize
	}
	return &ReadingStore{client: client, pageSize: pageSize}
}

// Start begins loading article. The previous selection stays visible
// until the result is applied.
func (s *ReadingStore) Start(article api.Article, query string) ReadingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.state.Status = StatusSearching
	s.state.Err = nil
	a := article
	s.pending = &a
	return ReadingRequest{Seq: s.seq, Article: article, Query: query, PageSize: s.pageSize, client: s.client}
}

// Apply commits res if it belongs to the latest Start.
func (s *ReadingStore) Apply(res ReadingResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Seq != s.seq || s.state.Status != StatusSearching {
		debuglog.WithFields(map[string]any{
			"seq":        res.Seq,
			"latest":     s.seq,
			"article_id": res.Article.ID,
		}).Debugf("discarding stale chunk result")
		return false
	}
	s.pending = nil

	if res.Err != nil {
		s.state = ReadingState{Status: StatusFailed, Err: res.Err}
		return true
	}
	a := res.Article
	chunks := res.Chunks
	if chunks == nil {
		chunks = []api.ScoredChunk{}
	}
	s.state = ReadingState{Status: StatusSucceeded, Selected: &a, Query: res.Query, Chunks: chunks}
	return true
}

func (s *ReadingStore) Execute(ctx context.Context, req ReadingRequest) ReadingState {
	s.Apply(req.Run(ctx))
	return s.State()
}

// Do selects article and loads its chunks synchronously.
func (s *ReadingStore) Do(ctx context.Context, article api.Article, query string) ReadingState {
	return s.Execute(ctx, s.Start(article, query))
}

// Reset deselects the article.
func (s *ReadingStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending = nil
	s.state = ReadingState{}
}

func (s *ReadingStore) State() ReadingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Chunks = slices.Clone(s.state.Chunks)
	return st
}

// Targets reports whether id is the article the store is showing or, while
// loading, the one it is about to show. Callers use it to skip redundant
// selections.
func (s *ReadingStore) Targets(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return s.pending.ID == id
	}
	return s.state.Selected != nil && s.state.Selected.ID == id
}

// Chunk looks up a loaded chunk by id.
func (s *ReadingStore) Chunk(id int64) (api.ScoredChunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.state.Chunks {
		if c.Chunk.ID == id {
			return c, true
		}
	}
	return api.ScoredChunk{}, false
}

func (s *ReadingStore) Selected() *api.Article {
	return s.State().Selected
}
