package adapter

import (
	"context"
	"fmt"

	"github.com/jonwraymond/notebookstore/store"
)

// CreateIndex implements store.Backend. The notebook service has no
// indexing concept; the request is accepted and ignored.
func (b *Backend) CreateIndex(ctx context.Context, collection, field, indexType string) (bool, error) {
	b.logger.Debug("index creation not applicable", "collection", collection, "field", field)
	return true, nil
}

// DropIndex implements store.Backend. Accepted and ignored.
func (b *Backend) DropIndex(ctx context.Context, collection, field string) (bool, error) {
	b.logger.Debug("index drop not applicable", "collection", collection, "field", field)
	return true, nil
}

// Clear implements store.Backend: deletes every cached record of the
// collection from the notebook, then resets the collection cache.
func (b *Backend) Clear(ctx context.Context, collection string) (bool, error) {
	entries := b.cache.List(collection)
	if len(entries) > 0 {
		ids := make([]string, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.Record.ID)
		}
		if _, err := b.Delete(ctx, collection, ids); err != nil {
			b.logger.Error("clear failed", "collection", collection, "error", err)
			return false, nil
		}
	}
	b.cache.DropCollection(collection)
	b.logger.Info("cleared collection", "collection", collection)
	return true, nil
}

// Optimize implements store.Backend. Accepted and ignored.
func (b *Backend) Optimize(ctx context.Context, collection string) (bool, error) {
	b.logger.Debug("optimization not applicable", "collection", collection)
	return true, nil
}

// Close implements store.Backend: drops the cache and the service
// session. The cache is in-process only, so closing loses the record
// metadata that filter, scroll, count, and exists depend on.
func (b *Backend) Close(ctx context.Context) error {
	b.cache.Clear()
	err := b.svc.Close()
	b.logger.Info("notebook backend closed")
	return err
}

// HealthCheck implements store.Backend: healthy when the service
// answers a notebook listing.
func (b *Backend) HealthCheck(ctx context.Context) error {
	if _, err := b.svc.ListNotebooks(ctx); err != nil {
		return fmt.Errorf("%w: %v", store.ErrServiceUnavailable, err)
	}
	return nil
}

// Stats implements store.Backend.
func (b *Backend) Stats(ctx context.Context) (store.Stats, error) {
	b.mu.RLock()
	collections := len(b.cfg.NotebookMapping)
	tiers := make(map[string]int, len(b.cfg.TierConfig))
	for tier, limit := range b.cfg.TierConfig {
		tiers[string(tier)] = limit
	}
	b.mu.RUnlock()

	return store.Stats{
		Collections:  collections,
		TotalRecords: b.cache.TotalEntries(),
		Backend:      b.Mode(),
		TierConfig:   tiers,
	}, nil
}
