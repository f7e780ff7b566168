package adapter

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonwraymond/notebookstore/cache"
	"github.com/jonwraymond/notebookstore/naming"
	"github.com/jonwraymond/notebookstore/store"
)

const (
	defaultSearchLimit = 10
	defaultScrollLimit = 100
	countScanLimit     = 100000
)

// Search implements store.Backend. The service queries by meaning, not
// by vector, so the vector parameters are ignored and the query text
// comes from the filter payload. No text means no external call and an
// empty result. Result order is whatever the service returned, with a
// synthetic descending score attached for interface compatibility.
func (b *Backend) Search(ctx context.Context, collection string, opts store.SearchOptions) ([]store.Record, error) {
	notebookID, err := b.notebookID(collection)
	if err != nil {
		return nil, err
	}

	query := store.QueryText(opts.Filter)
	if query == "" {
		b.logger.Warn("search without query text", "collection", collection)
		return nil, nil
	}

	result, err := b.svc.Query(ctx, notebookID, query)
	if err != nil {
		b.logger.Error("notebook query failed", "collection", collection, "error", err)
		return nil, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	records := make([]store.Record, 0, min(limit, len(result.Sources)))
	for i, src := range result.Sources {
		if i >= limit {
			break
		}
		parsed := naming.Parse(src.Title)

		id := src.SourceID
		if id == "" {
			id = uuid.NewString()
		}
		title := parsed.Title
		if title == "" {
			title = src.Title
		}
		contextType := parsed.ContextType
		if contextType == "" {
			contextType = defaultContextType
		}
		uriHash := parsed.URIHash
		if uriHash == "" {
			uriHash = "unknown"
		}

		rec := store.Record{
			ID:          id,
			URI:         fmt.Sprintf("%s://%s/%s", URIScheme, collection, uriHash),
			Content:     src.Snippet,
			Title:       title,
			ContextType: contextType,
			Score:       1.0 - float64(i)*0.1,
		}
		records = append(records, rec.Project(opts.OutputFields))
	}

	return page(records, opts.Offset, limit), nil
}

// Filter implements store.Backend, entirely against the local cache.
func (b *Backend) Filter(ctx context.Context, collection string, filter map[string]any, opts store.FilterOptions) ([]store.Record, error) {
	cond := store.ParseCondition(filter)

	var records []store.Record
	for _, entry := range b.cache.List(collection) {
		if cond.Match(entry.Record) {
			records = append(records, entry.Record)
		}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		// Stable page order for cursor-based scrolling.
		orderBy = store.FieldID
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, _ := records[i].FieldValue(orderBy)
		z, _ := records[j].FieldValue(orderBy)
		less := fmt.Sprintf("%v", a) < fmt.Sprintf("%v", z)
		if opts.OrderDesc {
			return !less
		}
		return less
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	records = page(records, opts.Offset, limit)

	if len(opts.OutputFields) > 0 {
		for i, rec := range records {
			records[i] = rec.Project(opts.OutputFields)
		}
	}
	return records, nil
}

// Scroll implements store.Backend. The cursor is the stringified next
// offset; an unparsable cursor starts from the beginning.
func (b *Backend) Scroll(ctx context.Context, collection string, opts store.ScrollOptions) ([]store.Record, string, error) {
	offset := 0
	if opts.Cursor != "" {
		if n, err := strconv.Atoi(opts.Cursor); err == nil && n > 0 {
			offset = n
		}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultScrollLimit
	}

	records, err := b.Filter(ctx, collection, opts.Filter, store.FilterOptions{
		Limit:        limit,
		Offset:       offset,
		OutputFields: opts.OutputFields,
	})
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(records) == limit {
		next = strconv.Itoa(offset + limit)
	}
	return records, next, nil
}

// Count implements store.Backend.
func (b *Backend) Count(ctx context.Context, collection string, filter map[string]any) (int, error) {
	if len(filter) > 0 {
		records, err := b.Filter(ctx, collection, filter, store.FilterOptions{Limit: countScanLimit})
		if err != nil {
			return 0, err
		}
		return len(records), nil
	}
	return b.cache.Len(collection), nil
}

// LocalSearch runs a keyword search over the cached records of a
// collection, without touching the notebook service. It requires a
// cache with a keyword index (the default); otherwise it returns
// ErrLocalSearchUnsupported.
func (b *Backend) LocalSearch(ctx context.Context, collection, query string, limit int) ([]store.Record, error) {
	ks, ok := b.cache.(cache.KeywordSearcher)
	if !ok {
		return nil, ErrLocalSearchUnsupported
	}

	hits, err := ks.KeywordSearch(ctx, collection, query, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	records := make([]store.Record, 0, len(hits))
	for _, hit := range hits {
		entry, ok := b.cache.Get(collection, hit.ID)
		if !ok {
			continue
		}
		rec := entry.Record
		rec.Score = hit.Score
		records = append(records, rec)
	}
	return records, nil
}

// page applies offset/limit slicing with bounds checks.
func page(records []store.Record, offset, limit int) []store.Record {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
