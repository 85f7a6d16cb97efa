package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/sift/internal/api"
)

func chunk(id int64, text string) api.ScoredChunk {
	return api.ScoredChunk{Chunk: api.ArticleChunk{ID: id, ArticleID: 1, Text: text}}
}

func newIndexed(t *testing.T) *Finder {
	t.Helper()
	f := New()
	t.Cleanup(func() { _ = f.Close() })
	require.NoError(t, f.Index([]api.ScoredChunk{
		chunk(1, "The central bank held interest rates steady."),
		chunk(2, "Markets rallied after the announcement."),
		chunk(3, "Analysts expect rate cuts later this year."),
	}))
	return f
}

func TestFinder_FindWord(t *testing.T) {
	f := newIndexed(t)

	ids, err := f.Find("markets", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestFinder_FindPrefix(t *testing.T) {
	f := newIndexed(t)

	ids, err := f.Find("rat", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 3}, ids)
}

func TestFinder_CaseInsensitive(t *testing.T) {
	f := newIndexed(t)

	ids, err := f.Find("ANALYSTS", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)
}

func TestFinder_ShortTermsIgnored(t *testing.T) {
	f := newIndexed(t)

	for _, term := range []string{"", " ", "a"} {
		ids, err := f.Find(term, 10)
		require.NoError(t, err)
		assert.Empty(t, ids, "term %q", term)
	}
}

func TestFinder_NoMatch(t *testing.T) {
	f := newIndexed(t)

	ids, err := f.Find("volcano", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFinder_ReindexReplaces(t *testing.T) {
	f := newIndexed(t)
	require.NoError(t, f.Index([]api.ScoredChunk{chunk(9, "volcano eruption")}))

	n, err := f.DocCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ids, err := f.Find("markets", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = f.Find("volcano", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids)
}

func TestFinder_EmptyUntilIndexed(t *testing.T) {
	f := New()
	ids, err := f.Find("rates", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	n, err := f.DocCount()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, f.Close())
}

func TestFinder_Reset(t *testing.T) {
	f := newIndexed(t)
	f.Reset()

	ids, err := f.Find("markets", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"fed", "rates", "2025"}, tokenize("Fed, rates & 2025!"))
	assert.Empty(t, tokenize("a b"))
}
