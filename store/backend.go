package store

import "context"

// CollectionInfo describes a collection and its backing notebook.
type CollectionInfo struct {
	Name        string `json:"name"`
	NotebookID  string `json:"notebook_id"`
	Title       string `json:"title"`
	SourceCount int    `json:"source_count"`
	Status      string `json:"status"`
}

// Stats summarizes a backend's contents.
type Stats struct {
	Collections  int            `json:"collections"`
	TotalRecords int            `json:"total_records"`
	Backend      string         `json:"backend"`
	TierConfig   map[string]int `json:"tier_config,omitempty"`
}

// SearchOptions configures Search. QueryVector and SparseQueryVector
// exist for interface compatibility with vector backends and are
// ignored here; the query text is extracted from Filter instead.
type SearchOptions struct {
	QueryVector       []float32
	SparseQueryVector map[string]float32
	Filter            map[string]any
	Limit             int
	Offset            int
	OutputFields      []string
	WithVector        bool
}

// FilterOptions configures Filter.
type FilterOptions struct {
	Limit        int
	Offset       int
	OutputFields []string
	OrderBy      string
	OrderDesc    bool
}

// ScrollOptions configures Scroll. Cursor is the opaque value returned
// by the previous page; empty starts from the beginning.
type ScrollOptions struct {
	Filter       map[string]any
	Limit        int
	Cursor       string
	OutputFields []string
}

// UpdateResult reports the outcome of an update. Updates are
// delete-then-reinsert and not atomic: Lost is set when the old source
// was deleted but the reinsert failed, meaning the record is gone from
// both the cache and the external store.
type UpdateResult struct {
	Updated bool
	Lost    bool
}

// Backend is the document-collection storage contract.
//
// Existence, filtering, pagination, and counting are defined over the
// backend's local record cache, which mirrors records successfully
// written through it within the current process lifetime.
type Backend interface {
	// CreateCollection creates a collection. Returns false when the
	// collection already exists.
	CreateCollection(ctx context.Context, name string, schema map[string]any) (bool, error)
	// DropCollection deletes a collection and its cached records.
	DropCollection(ctx context.Context, name string) (bool, error)
	// CollectionExists reports whether the collection resolves and its
	// notebook is reachable.
	CollectionExists(ctx context.Context, name string) (bool, error)
	// ListCollections returns the mapped collection names.
	ListCollections(ctx context.Context) ([]string, error)
	// CollectionInfo returns collection metadata, or nil when the
	// collection cannot be resolved or described.
	CollectionInfo(ctx context.Context, name string) (*CollectionInfo, error)

	// Insert stores a record and returns its ID, generating one when
	// the record carries none.
	Insert(ctx context.Context, collection string, rec Record) (string, error)
	// Update merges fields into the record with the given ID and
	// replaces it wholesale.
	Update(ctx context.Context, collection, id string, upd Record) (UpdateResult, error)
	// Upsert updates when the ID is known, otherwise inserts.
	Upsert(ctx context.Context, collection string, rec Record) (string, error)
	// Delete removes records by ID, best effort. The returned count
	// reflects confirmed deletions only.
	Delete(ctx context.Context, collection string, ids []string) (int, error)
	// Get returns the cached records for the given IDs, skipping
	// unknown ones.
	Get(ctx context.Context, collection string, ids []string) ([]Record, error)
	// Exists reports whether the ID is present in the cache.
	Exists(ctx context.Context, collection, id string) (bool, error)

	// BatchInsert inserts records one by one; failed items are skipped.
	BatchInsert(ctx context.Context, collection string, recs []Record) ([]string, error)
	// BatchUpsert upserts records one by one; failed items are skipped.
	BatchUpsert(ctx context.Context, collection string, recs []Record) ([]string, error)
	// BatchDelete deletes all records matching the filter payload.
	BatchDelete(ctx context.Context, collection string, filter map[string]any) (int, error)
	// RemoveByURI deletes records whose URI equals uri or sits below it.
	RemoveByURI(ctx context.Context, collection, uri string) (int, error)

	// Search runs a semantic query against the backing service. Vector
	// parameters are ignored; an empty extracted query returns no
	// results without an external call.
	Search(ctx context.Context, collection string, opts SearchOptions) ([]Record, error)
	// Filter returns cached records matching the filter payload.
	Filter(ctx context.Context, collection string, filter map[string]any, opts FilterOptions) ([]Record, error)
	// Scroll pages through cached records; the returned cursor is empty
	// on the final page.
	Scroll(ctx context.Context, collection string, opts ScrollOptions) ([]Record, string, error)
	// Count returns the number of cached records matching the filter.
	Count(ctx context.Context, collection string, filter map[string]any) (int, error)

	// CreateIndex accepts and ignores index creation.
	CreateIndex(ctx context.Context, collection, field, indexType string) (bool, error)
	// DropIndex accepts and ignores index removal.
	DropIndex(ctx context.Context, collection, field string) (bool, error)

	// Clear deletes every cached record in the collection.
	Clear(ctx context.Context, collection string) (bool, error)
	// Optimize accepts and ignores optimization requests.
	Optimize(ctx context.Context, collection string) (bool, error)
	// Close releases the cache and the service session.
	Close(ctx context.Context) error

	// HealthCheck returns nil when the backing service answers.
	HealthCheck(ctx context.Context) error
	// Stats returns backend statistics.
	Stats(ctx context.Context) (Stats, error)
	// Mode identifies the backend implementation.
	Mode() string
}
