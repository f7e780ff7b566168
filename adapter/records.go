package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonwraymond/notebookstore/cache"
	"github.com/jonwraymond/notebookstore/naming"
	"github.com/jonwraymond/notebookstore/store"
)

// defaultContextType classifies records that carry no context type.
const defaultContextType = "resource"

// Insert implements store.Backend. Unlike most operations, insert
// propagates failures: callers need the created ID.
func (b *Backend) Insert(ctx context.Context, collection string, rec store.Record) (string, error) {
	notebookID, err := b.notebookID(collection)
	if err != nil {
		return "", err
	}

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	uri := rec.URI
	if uri == "" {
		uri = fmt.Sprintf("%s://%s/%s", URIScheme, collection, id)
	}
	content := recordContent(rec)
	contextType := rec.ContextType
	if contextType == "" {
		contextType = defaultContextType
	}

	tier := naming.Classify(naming.WordCount(content), b.cfg.TierConfig)
	title := rec.Title
	if title == "" {
		title = naming.TitleFromURI(uri)
	}
	sourceName := b.pattern.Format(naming.Parts{
		Tier:        tier,
		ContextType: contextType,
		URIHash:     naming.URIHash(uri),
		Title:       title,
	})

	handle, err := b.svc.AddText(ctx, notebookID, content, sourceName)
	if err != nil {
		b.logger.Error("insert failed", "collection", collection, "record", id, "error", err)
		return "", fmt.Errorf("insert record %s: %w", id, err)
	}

	stored := rec
	stored.ID = id
	stored.URI = uri
	stored.Content = content
	stored.ContextType = contextType
	b.cache.Put(collection, cache.Entry{
		Record:     stored,
		SourceName: sourceName,
		SourceID:   handle.ID,
		Tier:       tier,
	})

	b.logger.Debug("inserted record", "collection", collection, "record", id, "source", sourceName)
	return id, nil
}

// recordContent applies the content fallback chain: the content field,
// then the extra "text" and "abstract" fields.
func recordContent(rec store.Record) string {
	if rec.Content != "" {
		return rec.Content
	}
	for _, key := range []string{"text", "abstract"} {
		if s, ok := rec.Fields[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Update implements store.Backend. The notebook service has no source
// update, so the old source is deleted and the merged record
// reinserted. When the reinsert fails the record is gone from both the
// cache and the external store; the result reports that explicitly.
func (b *Backend) Update(ctx context.Context, collection, id string, upd store.Record) (store.UpdateResult, error) {
	entry, ok := b.cache.Get(collection, id)
	if !ok {
		return store.UpdateResult{}, nil
	}

	merged := entry.Record.Merge(upd)

	if _, err := b.Delete(ctx, collection, []string{id}); err != nil {
		b.logger.Error("update delete step failed", "collection", collection, "record", id, "error", err)
		return store.UpdateResult{}, err
	}

	if _, err := b.Insert(ctx, collection, merged); err != nil {
		b.logger.Error("update reinsert failed, record lost",
			"collection", collection, "record", id, "error", err)
		return store.UpdateResult{Lost: true}, fmt.Errorf("reinsert after delete: %w", err)
	}
	return store.UpdateResult{Updated: true}, nil
}

// Upsert implements store.Backend.
func (b *Backend) Upsert(ctx context.Context, collection string, rec store.Record) (string, error) {
	if rec.ID != "" {
		if _, ok := b.cache.Get(collection, rec.ID); ok {
			if _, err := b.Update(ctx, collection, rec.ID, rec); err != nil {
				return "", err
			}
			return rec.ID, nil
		}
	}
	return b.Insert(ctx, collection, rec)
}

// Delete implements store.Backend. Deletion is best effort per ID:
// individual failures are logged and the batch continues. The count
// reflects confirmed deletions only.
func (b *Backend) Delete(ctx context.Context, collection string, ids []string) (int, error) {
	notebookID, err := b.notebookID(collection)
	if err != nil {
		b.logger.Warn("delete on unknown collection", "collection", collection)
		return 0, nil
	}

	deleted := 0
	for _, id := range ids {
		entry, ok := b.cache.Get(collection, id)
		if !ok {
			b.logger.Warn("record not in cache", "collection", collection, "record", id)
			continue
		}
		sourceID := entry.SourceID
		if sourceID == "" {
			sourceID = id
		}
		if _, err := b.svc.DeleteSource(ctx, notebookID, sourceID); err != nil {
			b.logger.Error("delete source failed", "collection", collection, "record", id, "error", err)
			continue
		}
		b.cache.Delete(collection, id)
		deleted++
	}
	return deleted, nil
}

// Get implements store.Backend. Existence is defined by the cache.
func (b *Backend) Get(ctx context.Context, collection string, ids []string) ([]store.Record, error) {
	var records []store.Record
	for _, id := range ids {
		if entry, ok := b.cache.Get(collection, id); ok {
			records = append(records, entry.Record)
		}
	}
	return records, nil
}

// Exists implements store.Backend.
func (b *Backend) Exists(ctx context.Context, collection, id string) (bool, error) {
	_, ok := b.cache.Get(collection, id)
	return ok, nil
}

// BatchInsert implements store.Backend. Failed items are isolated and
// skipped; the returned IDs cover successful inserts only.
func (b *Backend) BatchInsert(ctx context.Context, collection string, recs []store.Record) ([]string, error) {
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		id, err := b.Insert(ctx, collection, rec)
		if err != nil {
			b.logger.Error("batch insert item failed", "collection", collection, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BatchUpsert implements store.Backend.
func (b *Backend) BatchUpsert(ctx context.Context, collection string, recs []store.Record) ([]string, error) {
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		id, err := b.Upsert(ctx, collection, rec)
		if err != nil {
			b.logger.Error("batch upsert item failed", "collection", collection, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BatchDelete implements store.Backend.
func (b *Backend) BatchDelete(ctx context.Context, collection string, filter map[string]any) (int, error) {
	matching, err := b.Filter(ctx, collection, filter, store.FilterOptions{Limit: 10000})
	if err != nil || len(matching) == 0 {
		return 0, err
	}
	ids := make([]string, 0, len(matching))
	for _, rec := range matching {
		if rec.ID != "" {
			ids = append(ids, rec.ID)
		}
	}
	return b.Delete(ctx, collection, ids)
}

// RemoveByURI implements store.Backend: deletes records whose URI is
// uri exactly or sits under it.
func (b *Backend) RemoveByURI(ctx context.Context, collection, uri string) (int, error) {
	var ids []string
	for _, entry := range b.cache.List(collection) {
		recURI := entry.Record.URI
		if recURI == uri || strings.HasPrefix(recURI, uri+"/") {
			ids = append(ids, entry.Record.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return b.Delete(ctx, collection, ids)
}
