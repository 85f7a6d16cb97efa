package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/sift/internal/api"
)

func TestReadingStore_SelectArticle(t *testing.T) {
	client := newFakeChunks()
	client.chunks[1] = []api.ScoredChunk{scored(5, 1, 0.2), scored(2, 1, 0.5)}
	store := NewReadingStore(client, 0)

	article := api.Article{ID: 1, ContentTitle: "A"}
	req := store.Start(article, "rates")
	assert.True(t, store.State().Loading())
	assert.Nil(t, store.Selected(), "selection is set only once chunks load")

	require.True(t, store.Apply(req.Run(context.Background())))
	st := store.State()
	assert.Equal(t, StatusSucceeded, st.Status)
	require.NotNil(t, st.Selected)
	assert.Equal(t, int64(1), st.Selected.ID)
	assert.Equal(t, "rates", st.Query)
	assert.Equal(t, []int64{5, 2}, chunkIDs(st.Chunks), "backend order is preserved")

	require.Len(t, client.calls, 1)
	assert.Equal(t, chunkCall{Query: "rates", ArticleID: 1, Page: 1, PageSize: 100}, client.calls[0])
}

func TestReadingStore_Failure(t *testing.T) {
	ctx := context.Background()
	client := newFakeChunks()
	client.chunks[1] = []api.ScoredChunk{scored(1, 1, 0.1)}
	client.fail[2] = errBoom
	store := NewReadingStore(client, 100)

	store.Do(ctx, api.Article{ID: 1}, "q")
	st := store.Do(ctx, api.Article{ID: 2}, "q")

	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, errBoom, st.Err)
	assert.Empty(t, st.Chunks)
	assert.Nil(t, st.Selected)
}

func TestReadingStore_FailureThenSuccess(t *testing.T) {
	ctx := context.Background()
	client := newFakeChunks()
	client.fail[1] = errBoom
	client.chunks[2] = []api.ScoredChunk{scored(3, 2, 0.3)}
	store := NewReadingStore(client, 100)

	store.Do(ctx, api.Article{ID: 1}, "q")
	require.Error(t, store.State().Err)

	req := store.Start(api.Article{ID: 2}, "q")
	assert.NoError(t, store.State().Err, "loading clears the previous error")
	st := store.Execute(ctx, req)

	assert.Equal(t, StatusSucceeded, st.Status)
	assert.NoError(t, st.Err)
	assert.Equal(t, []int64{3}, chunkIDs(st.Chunks))
}

func TestReadingStore_LateResultForEarlierSelection(t *testing.T) {
	ctx := context.Background()
	client := newFakeChunks()
	client.chunks[1] = []api.ScoredChunk{scored(10, 1, 0.1)}
	client.chunks[2] = []api.ScoredChunk{scored(20, 2, 0.1)}
	store := NewReadingStore(client, 100)

	reqA := store.Start(api.Article{ID: 1}, "q")
	reqB := store.Start(api.Article{ID: 2}, "q")

	resB := reqB.Run(ctx)
	resA := reqA.Run(ctx)

	assert.True(t, store.Apply(resB))
	assert.False(t, store.Apply(resA))

	st := store.State()
	require.NotNil(t, st.Selected)
	assert.Equal(t, int64(2), st.Selected.ID)
	assert.Equal(t, []int64{20}, chunkIDs(st.Chunks))
}

func TestReadingStore_NoDeduplication(t *testing.T) {
	ctx := context.Background()
	client := newFakeChunks()
	store := NewReadingStore(client, 100)

	store.Do(ctx, api.Article{ID: 1}, "q")
	store.Do(ctx, api.Article{ID: 1}, "q")
	assert.Len(t, client.calls, 2)
}

func TestReadingStore_Targets(t *testing.T) {
	ctx := context.Background()
	store := NewReadingStore(newFakeChunks(), 100)
	assert.False(t, store.Targets(1))

	store.Do(ctx, api.Article{ID: 1}, "q")
	assert.True(t, store.Targets(1))

	store.Start(api.Article{ID: 2}, "q")
	assert.True(t, store.Targets(2))
	assert.False(t, store.Targets(1), "a pending selection replaces the shown one")
}

func TestReadingStore_ChunkLookup(t *testing.T) {
	client := newFakeChunks()
	client.chunks[1] = []api.ScoredChunk{scored(4, 1, 0.42)}
	store := NewReadingStore(client, 100)
	store.Do(context.Background(), api.Article{ID: 1}, "q")

	c, ok := store.Chunk(4)
	require.True(t, ok)
	assert.InDelta(t, 0.42, c.Distance, 1e-9)

	_, ok = store.Chunk(99)
	assert.False(t, ok)
}

func TestReadingStore_Reset(t *testing.T) {
	ctx := context.Background()
	client := newFakeChunks()
	client.chunks[1] = []api.ScoredChunk{scored(1, 1, 0.1)}
	store := NewReadingStore(client, 100)
	store.Do(ctx, api.Article{ID: 1}, "q")

	inflight := store.Start(api.Article{ID: 1}, "again")
	store.Reset()
	assert.Equal(t, StatusIdle, store.State().Status)
	assert.Nil(t, store.Selected())
	assert.False(t, store.Targets(1))

	assert.False(t, store.Apply(inflight.Run(ctx)))
	assert.Nil(t, store.Selected())
}

func TestReadingStore_StateIsACopy(t *testing.T) {
	client := newFakeChunks()
	client.chunks[1] = []api.ScoredChunk{scored(1, 1, 0.1)}
	store := NewReadingStore(client, 100)
	st := store.Do(context.Background(), api.Article{ID: 1}, "q")

	st.Chunks[0].Distance = 9
	c, _ := store.Chunk(1)
	assert.InDelta(t, 0.1, c.Distance, 1e-9)
}

func TestNewReadingStore_NilClientPanics(t *testing.T) {
	assert.Panics(t, func() { NewReadingStore(nil, 100) })
}

func chunkIDs(chunks []api.ScoredChunk) []int64 {
	ids := make([]int64, 0, len(chunks))
	for _, c := range chunks {
		ids = append(ids, c.Chunk.ID)
	}
	return ids
}
