package cache

import (
	"context"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
)

// keySep joins collection and record ID into a bleve document key.
// NUL cannot appear in either part.
const keySep = "\x00"

// Hit is a keyword search match from the cache index.
type Hit struct {
	// ID is the record ID.
	ID string
	// Score is the bleve relevance score.
	Score float64
}

// KeywordSearcher is implemented by caches that maintain a keyword
// index over their entries.
type KeywordSearcher interface {
	KeywordSearch(ctx context.Context, collection, query string, limit int) ([]Hit, error)
}

// Indexed is a Memory cache with a mem-only bleve index over record
// titles and content. Index writes follow cache writes; mem-only index
// mutations do not fail in practice, so their errors are dropped to
// keep Store's mutation methods clean.
type Indexed struct {
	*Memory
	idx bleve.Index
}

// NewIndexed returns an empty Indexed cache.
func NewIndexed() (*Indexed, error) {
	collField := bleve.NewTextFieldMapping()
	collField.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("collection", collField)

	mapping := bleve.NewIndexMapping()
	mapping.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, err
	}
	return &Indexed{Memory: NewMemory(), idx: idx}, nil
}

// Put implements Store.
func (s *Indexed) Put(collection string, e Entry) {
	s.Memory.Put(collection, e)
	_ = s.idx.Index(docKey(collection, e.Record.ID), map[string]any{
		"collection": collection,
		"title":      e.Record.Title,
		"content":    e.Record.Content,
		"uri":        e.Record.URI,
	})
}

// Delete implements Store.
func (s *Indexed) Delete(collection, id string) {
	s.Memory.Delete(collection, id)
	_ = s.idx.Delete(docKey(collection, id))
}

// DropCollection implements Store.
func (s *Indexed) DropCollection(collection string) {
	for _, e := range s.Memory.List(collection) {
		_ = s.idx.Delete(docKey(collection, e.Record.ID))
	}
	s.Memory.DropCollection(collection)
}

// Clear implements Store.
func (s *Indexed) Clear() {
	for _, e := range s.Memory.all() {
		_ = s.idx.Delete(e.key)
	}
	s.Memory.Clear()
}

// KeywordSearch returns cached records of the collection matching the
// query text, most relevant first.
func (s *Indexed) KeywordSearch(ctx context.Context, collection, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	coll := bleve.NewTermQuery(collection)
	coll.SetField("collection")
	match := bleve.NewMatchQuery(query)

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(coll, match), limit, 0, false)
	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		_, id := splitKey(h.ID)
		hits = append(hits, Hit{ID: id, Score: h.Score})
	}
	return hits, nil
}

// Close releases the bleve index.
func (s *Indexed) Close() error {
	return s.idx.Close()
}

func docKey(collection, id string) string {
	return collection + keySep + id
}

func splitKey(key string) (collection, id string) {
	if i := strings.Index(key, keySep); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

type keyedEntry struct {
	key string
}

// all snapshots every entry's document key.
func (m *Memory) all() []keyedEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []keyedEntry
	for collection, recs := range m.data {
		for id := range recs {
			out = append(out, keyedEntry{key: docKey(collection, id)})
		}
	}
	return out
}
