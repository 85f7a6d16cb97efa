package session

import (
	"cmp"
	"slices"

	"github.com/pders01/sift/internal/api"
)

// SortByID returns a copy of chunks in ascending chunk id order, the order
// they appear in the article. The input is not modified.
func SortByID(chunks []api.ScoredChunk) []api.ScoredChunk {
	out := slices.Clone(chunks)
	slices.SortStableFunc(out, func(a, b api.ScoredChunk) int {
		return cmp.Compare(a.Chunk.ID, b.Chunk.ID)
	})
	return out
}
