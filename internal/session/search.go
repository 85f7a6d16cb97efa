package session

import (
	"context"
	"sync"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/debuglog"
)

// SearchState is a consistent snapshot of a SearchStore.
type SearchState struct {
	Status Status
	// Query produced Data. Empty when there is no data.
	Query string
	Data  *api.Page[api.ScoredArticle]
	Err   error
}

// Loading reports whether a search is in flight. Data still holds the
// previous page while loading.
func (s SearchState) Loading() bool { return s.Status == StatusSearching }

// SearchRequest is one issued article search.
type SearchRequest struct {
	Seq      uint64
	Query    string
	Page     int
	PageSize int

	client ArticleSearcher
}

// Run performs the search. It does not touch the store.
func (r SearchRequest) Run(ctx context.Context) SearchResult {
	page, err := r.client.SearchArticles(ctx, r.Query, r.Page, r.PageSize)
	return SearchResult{Seq: r.Seq, Query: r.Query, Data: page, Err: err}
}

type SearchResult struct {
	Seq   uint64
	Query string
	Data  *api.Page[api.ScoredArticle]
	Err   error
}

// SearchStore is the article search session.
type SearchStore struct {
	mu       sync.Mutex
	client   ArticleSearcher
	pageSize int
	seq      uint64
	state    SearchState
}

func NewSearchStore(client ArticleSearcher, pageSize int) *SearchStore {
	if client == nil {
		panic("session: NewSearchStore requires a client")
	}
	if pageSize < 1 {
		pageSize = DefaultSearchPageSize
	}
	return &SearchStore{client: client, pageSize: pageSize}
}

func (s *SearchStore) PageSize() int { return s.pageSize }

// Search starts a search for the first page of query.
func (s *SearchStore) Search(query string) SearchRequest {
	return s.Start(query, 1)
}

// Start moves the store to Searching and returns the request to run.
// Any request started earlier becomes stale.
func (s *SearchStore) Start(query string, page int) SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(query, page)
}

func (s *SearchStore) startLocked(query string, page int) SearchRequest {
	s.seq++
	s.state.Status = StatusSearching
	s.state.Err = nil
	return SearchRequest{Seq: s.seq, Query: query, Page: page, PageSize: s.pageSize, client: s.client}
}

// Apply commits res and reports whether it was accepted. Results from
// anything but the latest request are dropped.
func (s *SearchStore) Apply(res SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Seq != s.seq || s.state.Status != StatusSearching {
		debuglog.WithFields(map[string]any{
			"seq":    res.Seq,
			"latest": s.seq,
			"query":  res.Query,
		}).Debugf("discarding stale search result")
		return false
	}

	if res.Err != nil {
		s.state = SearchState{Status: StatusFailed, Err: res.Err}
		return true
	}
	s.state = SearchState{Status: StatusSucceeded, Query: res.Query, Data: res.Data}
	return true
}

// Execute runs req and commits its result.
func (s *SearchStore) Execute(ctx context.Context, req SearchRequest) SearchState {
	s.Apply(req.Run(ctx))
	return s.State()
}

// Do searches the first page of query synchronously.
func (s *SearchStore) Do(ctx context.Context, query string) SearchState {
	return s.Execute(ctx, s.Search(query))
}

// NextPage starts the following page of the current query. It is a no-op
// unless the last search succeeded and more results exist.
func (s *SearchStore) NextPage() (SearchRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != StatusSucceeded || !s.state.Data.HasNext() {
		return SearchRequest{}, false
	}
	return s.startLocked(s.state.Query, s.state.Data.Page+1), true
}

// PrevPage starts the preceding page of the current query.
func (s *SearchStore) PrevPage() (SearchRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Data.HasPrevious() {
		return SearchRequest{}, false
	}
	return s.startLocked(s.state.Query, s.state.Data.Page-1), true
}

// Reset returns to Idle. In-flight results are discarded when they land.
func (s *SearchStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = SearchState{}
}

func (s *SearchStore) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SearchStore) Status() Status                     { return s.State().Status }
func (s *SearchStore) Loading() bool                      { return s.State().Loading() }
func (s *SearchStore) Err() error                         { return s.State().Err }
func (s *SearchStore) CurrentQuery() string               { return s.State().Query }
func (s *SearchStore) Data() *api.Page[api.ScoredArticle] { return s.State().Data }

func (s *SearchStore) CurrentRange() api.Range { return s.Data().Range() }
func (s *SearchStore) HasNextPage() bool       { return s.Data().HasNext() }
func (s *SearchStore) HasPreviousPage() bool   { return s.Data().HasPrevious() }

func (s *SearchStore) TotalResults() int {
	if d := s.Data(); d != nil {
		return d.Total
	}
	return 0
}
