package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jonwraymond/notebookstore/cache"
	"github.com/jonwraymond/notebookstore/config"
	"github.com/jonwraymond/notebookstore/naming"
	"github.com/jonwraymond/notebookstore/notebooklm"
	"github.com/jonwraymond/notebookstore/store"
)

// URIScheme prefixes generated record URIs.
const URIScheme = "viking"

// notebookTitlePrefix marks notebooks created by this adapter.
const notebookTitlePrefix = "NotebookStore"

// ErrLocalSearchUnsupported is returned by LocalSearch when the
// injected cache maintains no keyword index.
var ErrLocalSearchUnsupported = errors.New("cache has no keyword index")

// Service is the notebook service boundary the adapter talks to.
// *notebooklm.Client implements it.
type Service interface {
	Connect(ctx context.Context) error
	Close() error
	ListNotebooks(ctx context.Context) ([]notebooklm.Notebook, error)
	CreateNotebook(ctx context.Context, name, description string) (string, error)
	DeleteNotebook(ctx context.Context, notebookID string) (bool, error)
	DescribeNotebook(ctx context.Context, notebookID string) (*notebooklm.NotebookInfo, error)
	AddText(ctx context.Context, notebookID, text, title string) (notebooklm.SourceHandle, error)
	DeleteSource(ctx context.Context, notebookID, sourceID string) (bool, error)
	Query(ctx context.Context, notebookID, query string) (*notebooklm.QueryResult, error)
}

// Options configures a Backend.
type Options struct {
	// Config is required and validated eagerly.
	Config *config.Config

	// Service is the notebook service client. If nil, a
	// notebooklm.Client is built from Config.Service; call Connect
	// before use.
	Service Service

	// Cache is the record cache. If nil, an indexed in-memory cache is
	// created, which also enables LocalSearch.
	Cache cache.Store

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Backend adapts the document-collection storage contract onto the
// notebook service.
type Backend struct {
	cfg     *config.Config
	svc     Service
	cache   cache.Store
	pattern naming.Pattern
	logger  *slog.Logger

	// mu guards the collection mapping, which CreateCollection and
	// DropCollection mutate.
	mu sync.RWMutex
}

var _ store.Backend = (*Backend)(nil)

// New builds a Backend. Configuration violations are fatal here, not
// deferred to first use.
func New(opts Options) (*Backend, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("%w: config is required", store.ErrInvalidConfig)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidConfig, err)
	}
	pattern, err := opts.Config.Pattern()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidConfig, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	svc := opts.Service
	if svc == nil {
		headers, err := serviceHeaders(opts.Config)
		if err != nil {
			return nil, err
		}
		svc = notebooklm.NewClient(notebooklm.Config{
			URL:        opts.Config.Service.URL,
			Command:    opts.Config.Service.Command,
			Headers:    headers,
			MaxRetries: opts.Config.Service.MaxRetries,
			Timeouts: notebooklm.Timeouts{
				Default: opts.Config.Service.Timeouts.Default(),
				AddText: opts.Config.Service.Timeouts.AddText(),
				Query:   opts.Config.Service.Timeouts.Query(),
			},
		})
	}

	c := opts.Cache
	if c == nil {
		indexed, err := cache.NewIndexed()
		if err != nil {
			return nil, fmt.Errorf("create cache index: %w", err)
		}
		c = indexed
	}

	return &Backend{
		cfg:     opts.Config,
		svc:     svc,
		cache:   c,
		pattern: pattern,
		logger:  logger,
	}, nil
}

// serviceHeaders merges the configured headers with the bearer token
// read from AuthTokenPath, when set.
func serviceHeaders(cfg *config.Config) (map[string]string, error) {
	if cfg.AuthTokenPath == "" {
		return cfg.Service.Headers, nil
	}
	token, err := os.ReadFile(cfg.AuthTokenPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read auth token: %v", store.ErrServiceUnavailable, err)
	}
	headers := make(map[string]string, len(cfg.Service.Headers)+1)
	for k, v := range cfg.Service.Headers {
		headers[k] = v
	}
	headers["Authorization"] = "Bearer " + strings.TrimSpace(string(token))
	return headers, nil
}

// Connect establishes the service session.
func (b *Backend) Connect(ctx context.Context) error {
	if err := b.svc.Connect(ctx); err != nil {
		return err
	}
	b.mu.RLock()
	mapped := len(b.cfg.NotebookMapping)
	b.mu.RUnlock()
	b.logger.Info("notebook backend connected", "mapped_notebooks", mapped)
	return nil
}

// Mode implements store.Backend.
func (b *Backend) Mode() string { return "notebooklm" }

// notebookID resolves a collection under the mapping lock.
func (b *Backend) notebookID(collection string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	id, err := b.cfg.NotebookID(collection)
	if err != nil {
		return "", fmt.Errorf("%w: %s", store.ErrCollectionNotFound, collection)
	}
	return id, nil
}

// CreateCollection implements store.Backend. Mapped collections are a
// no-op returning false; otherwise a notebook is created and added to
// the mapping.
func (b *Backend) CreateCollection(ctx context.Context, name string, schema map[string]any) (bool, error) {
	b.mu.RLock()
	_, mapped := b.cfg.NotebookMapping[name]
	b.mu.RUnlock()
	if mapped {
		b.logger.Debug("collection already mapped", "collection", name)
		return false, nil
	}

	description, _ := schema["description"].(string)
	if description == "" {
		description = fmt.Sprintf("%s collection: %s", notebookTitlePrefix, name)
	}

	notebookID, err := b.svc.CreateNotebook(ctx, notebookTitlePrefix+"-"+name, description)
	if err != nil {
		b.logger.Error("create notebook failed", "collection", name, "error", err)
		return false, nil
	}

	b.mu.Lock()
	b.cfg.NotebookMapping[name] = notebookID
	b.mu.Unlock()

	b.logger.Info("created notebook for collection", "collection", name, "notebook_id", notebookID)
	return true, nil
}

// DropCollection implements store.Backend.
func (b *Backend) DropCollection(ctx context.Context, name string) (bool, error) {
	notebookID, err := b.notebookID(name)
	if err != nil {
		b.logger.Warn("collection not found", "collection", name)
		return false, nil
	}

	if _, err := b.svc.DeleteNotebook(ctx, notebookID); err != nil {
		b.logger.Error("delete notebook failed", "collection", name, "error", err)
		return false, nil
	}

	b.mu.Lock()
	delete(b.cfg.NotebookMapping, name)
	b.mu.Unlock()
	b.cache.DropCollection(name)

	b.logger.Info("dropped collection", "collection", name)
	return true, nil
}

// CollectionExists implements store.Backend.
func (b *Backend) CollectionExists(ctx context.Context, name string) (bool, error) {
	notebookID, err := b.notebookID(name)
	if err != nil {
		return false, nil
	}
	if _, err := b.svc.DescribeNotebook(ctx, notebookID); err != nil {
		return false, nil
	}
	return true, nil
}

// ListCollections implements store.Backend.
func (b *Backend) ListCollections(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	names := make([]string, 0, len(b.cfg.NotebookMapping))
	for name := range b.cfg.NotebookMapping {
		names = append(names, name)
	}
	b.mu.RUnlock()
	sort.Strings(names)
	return names, nil
}

// CollectionInfo implements store.Backend.
func (b *Backend) CollectionInfo(ctx context.Context, name string) (*store.CollectionInfo, error) {
	notebookID, err := b.notebookID(name)
	if err != nil {
		return nil, nil
	}

	info, err := b.svc.DescribeNotebook(ctx, notebookID)
	if err != nil {
		b.logger.Error("describe notebook failed", "collection", name, "error", err)
		return nil, nil
	}

	title := info.Title
	if title == "" {
		title = name
	}
	return &store.CollectionInfo{
		Name:        name,
		NotebookID:  notebookID,
		Title:       title,
		SourceCount: info.SourceCount,
		Status:      "active",
	}, nil
}
