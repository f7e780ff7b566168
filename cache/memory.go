package cache

import (
	"sync"

	"github.com/jonwraymond/notebookstore/naming"
	"github.com/jonwraymond/notebookstore/store"
)

// Entry is a cached record together with the metadata needed to manage
// its backing source in the notebook service.
type Entry struct {
	Record store.Record
	// SourceName is the encoded title the source was stored under.
	SourceName string
	// SourceID is the external handle returned when the source was
	// added; deletions go through it.
	SourceID string
	Tier     naming.Tier
}

// Store is the record cache contract.
type Store interface {
	// Put stores or replaces an entry.
	Put(collection string, e Entry)
	// Get returns the entry for an ID.
	Get(collection, id string) (Entry, bool)
	// Delete removes an entry. Unknown IDs are ignored.
	Delete(collection, id string)
	// List returns all entries of a collection.
	List(collection string) []Entry
	// Len returns the number of entries in a collection.
	Len(collection string) int
	// DropCollection removes a collection and its entries.
	DropCollection(collection string)
	// Collections returns the number of collections holding entries.
	Collections() int
	// TotalEntries returns the number of entries across collections.
	TotalEntries() int
	// Clear removes everything.
	Clear()
}

// Memory is the map-backed Store. The mutex keeps overlapping callers
// from corrupting the maps; it does not serialize the multi-step
// update/delete flows above it.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Entry
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]Entry)}
}

// Put implements Store.
func (m *Memory) Put(collection string, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs, ok := m.data[collection]
	if !ok {
		recs = make(map[string]Entry)
		m.data[collection] = recs
	}
	recs[e.Record.ID] = e
}

// Get implements Store.
func (m *Memory) Get(collection, id string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[collection][id]
	return e, ok
}

// Delete implements Store.
func (m *Memory) Delete(collection, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[collection], id)
}

// List implements Store.
func (m *Memory) List(collection string) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.data[collection]
	if len(recs) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(recs))
	for _, e := range recs {
		out = append(out, e)
	}
	return out
}

// Len implements Store.
func (m *Memory) Len(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[collection])
}

// DropCollection implements Store.
func (m *Memory) DropCollection(collection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, collection)
}

// Collections implements Store.
func (m *Memory) Collections() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// TotalEntries implements Store.
func (m *Memory) TotalEntries() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, recs := range m.data {
		total += len(recs)
	}
	return total
}

// Clear implements Store.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[string]Entry)
}
