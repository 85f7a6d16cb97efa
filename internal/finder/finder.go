// Package finder answers find-in-article queries over the chunks of the
// article being read. The index lives in memory and is rebuilt whenever
// a new chunk list is loaded.
package finder

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/debuglog"
)

// MinTermLength is the shortest query Find will run.
const MinTermLength = 2

type Finder struct {
	mu  sync.Mutex
	idx bleve.Index
}

func New() *Finder {
	return &Finder{}
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name
	text.Store = false
	text.IncludeTermVectors = false

	dm.AddFieldMappingsAt("text", text)
	im.DefaultMapping = dm
	return im
}

// Index replaces the indexed chunks with chunks.
func (f *Finder) Index(chunks []api.ScoredChunk) error {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return err
	}

	batch := idx.NewBatch()
	for _, c := range chunks {
		if err := batch.Index(docID(c.Chunk.ID), map[string]any{
			"text": c.Chunk.Text,
		}); err != nil {
			_ = idx.Close()
			return err
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return err
	}

	f.mu.Lock()
	old := f.idx
	f.idx = idx
	f.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	debuglog.Debugf("finder: indexed %d chunks", len(chunks))
	return nil
}

// Find returns the ids of chunks matching term, best match first. Every
// token matches either a whole word or a word prefix.
func (f *Finder) Find(term string, limit int) ([]int64, error) {
	if len(strings.TrimSpace(term)) < MinTermLength {
		return []int64{}, nil
	}
	if limit <= 0 {
		limit = 100
	}

	var qs []bleveQuery.Query
	for _, tok := range tokenize(term) {
		mq := bleve.NewMatchQuery(tok)
		mq.SetField("text")
		mq.SetBoost(2.0)
		qs = append(qs, mq)

		pq := bleve.NewPrefixQuery(tok)
		pq.SetField("text")
		qs = append(qs, pq)
	}
	if len(qs) == 0 {
		return []int64{}, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx == nil {
		return []int64{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	res, err := f.idx.Search(req)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DocCount reports how many chunks are indexed.
func (f *Finder) DocCount() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx == nil {
		return 0, nil
	}
	n, err := f.idx.DocCount()
	return int(n), err
}

// Reset drops the index.
func (f *Finder) Reset() {
	_ = f.Close()
}

func (f *Finder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx == nil {
		return nil
	}
	err := f.idx.Close()
	f.idx = nil
	return err
}

func docID(chunkID int64) string { return strconv.FormatInt(chunkID, 10) }

func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len(term) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if current.Len() > 1 {
		terms = append(terms, current.String())
	}
	return terms
}
