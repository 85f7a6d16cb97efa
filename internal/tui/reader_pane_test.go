package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/session"
)

func TestReaderBuild_ChunksSortedWithOffsets(t *testing.T) {
	reader := newReaderPane(session.NewReadingStore(&fakeChunks{}, 100), session.NewCoordinator(), "Jan 2, 2006")
	reader.setSize(60, 20)

	st := session.ReadingState{
		Status:   session.StatusSucceeded,
		Selected: &api.Article{ID: 1, ContentTitle: "Rates hold"},
		Chunks: []api.ScoredChunk{
			chunk(3, 1, 0.6, "third"),
			chunk(1, 1, 0.2, "first"),
			chunk(2, 1, 0.4, "second"),
		},
	}

	content, offsets := reader.build(st)
	require.Len(t, offsets, 3)
	assert.Less(t, offsets[1], offsets[2])
	assert.Less(t, offsets[2], offsets[3])

	lines := strings.Split(content, "\n")
	for id, want := range map[int64]string{1: "first", 2: "second", 3: "third"} {
		require.Less(t, offsets[id], len(lines))
		assert.Contains(t, lines[offsets[id]], want, "offset of chunk %d", id)
	}
}

func TestArticleMarkdown(t *testing.T) {
	a := &api.Article{
		ID:           7,
		ContentTitle: "Rates hold",
		OGSiteName:   "Wire",
		Authors:      "A. Writer, B. Editor",
		Tags:         "markets, fed",
		PageURL:      "https://news.example/7",
	}

	md := articleMarkdown(a, "Jan 2, 2006")
	assert.Contains(t, md, "# Rates hold")
	assert.Contains(t, md, "*Wire · n/a*")
	assert.Contains(t, md, "**Authors:** A. Writer, B. Editor")
	assert.Contains(t, md, "**Tags:** markets, fed")
	assert.Contains(t, md, "<https://news.example/7>")

	bare := articleMarkdown(&api.Article{ID: 8, OGTitle: "Fallback"}, "Jan 2, 2006")
	assert.NotContains(t, bare, "Authors")
	assert.NotContains(t, bare, "Tags")
}

func TestReaderScrollToUnknownChunk(t *testing.T) {
	reader := newReaderPane(session.NewReadingStore(&fakeChunks{}, 100), session.NewCoordinator(), "Jan 2, 2006")
	assert.False(t, reader.scrollTo(42))
}
