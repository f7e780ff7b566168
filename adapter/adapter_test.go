package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonwraymond/notebookstore/config"
	"github.com/jonwraymond/notebookstore/naming"
	"github.com/jonwraymond/notebookstore/notebooklm"
	"github.com/jonwraymond/notebookstore/store"
)

// fakeService is an in-memory stand-in for the notebook service.
type fakeService struct {
	notebooks map[string]*fakeNotebook
	nextID    int

	failAddText      bool
	failAddTextOn    string // substring of text that triggers failure
	failDeleteSource string // source ID that refuses deletion
	failQuery        bool
	failList         bool
	queryCalls       int
}

type fakeNotebook struct {
	title   string
	sources []fakeSource
}

type fakeSource struct {
	id    string
	title string
	text  string
}

func newFakeService() *fakeService {
	return &fakeService{notebooks: map[string]*fakeNotebook{
		"nb-resources": {title: "Resources"},
		"nb-memories":  {title: "Memories"},
	}}
}

func (f *fakeService) Connect(ctx context.Context) error { return nil }
func (f *fakeService) Close() error                      { return nil }

func (f *fakeService) ListNotebooks(ctx context.Context) ([]notebooklm.Notebook, error) {
	if f.failList {
		return nil, notebooklm.ErrOperation
	}
	var out []notebooklm.Notebook
	for id, nb := range f.notebooks {
		out = append(out, notebooklm.Notebook{ID: id, Title: nb.title, SourceCount: len(nb.sources)})
	}
	return out, nil
}

func (f *fakeService) CreateNotebook(ctx context.Context, name, description string) (string, error) {
	f.nextID++
	id := fmt.Sprintf("nb-new-%d", f.nextID)
	f.notebooks[id] = &fakeNotebook{title: name}
	return id, nil
}

func (f *fakeService) DeleteNotebook(ctx context.Context, notebookID string) (bool, error) {
	if _, ok := f.notebooks[notebookID]; !ok {
		return false, fmt.Errorf("%w: notebook not found", notebooklm.ErrOperation)
	}
	delete(f.notebooks, notebookID)
	return true, nil
}

func (f *fakeService) DescribeNotebook(ctx context.Context, notebookID string) (*notebooklm.NotebookInfo, error) {
	nb, ok := f.notebooks[notebookID]
	if !ok {
		return nil, fmt.Errorf("%w: notebook not found", notebooklm.ErrOperation)
	}
	info := &notebooklm.NotebookInfo{ID: notebookID, Title: nb.title, SourceCount: len(nb.sources)}
	for _, s := range nb.sources {
		info.Sources = append(info.Sources, notebooklm.SourceInfo{ID: s.id, Title: s.title})
	}
	return info, nil
}

func (f *fakeService) AddText(ctx context.Context, notebookID, text, title string) (notebooklm.SourceHandle, error) {
	if f.failAddText || (f.failAddTextOn != "" && strings.Contains(text, f.failAddTextOn)) {
		return notebooklm.SourceHandle{}, fmt.Errorf("%w: add text refused", notebooklm.ErrOperation)
	}
	nb, ok := f.notebooks[notebookID]
	if !ok {
		return notebooklm.SourceHandle{}, fmt.Errorf("%w: notebook not found", notebooklm.ErrOperation)
	}
	f.nextID++
	src := fakeSource{id: fmt.Sprintf("src-%d", f.nextID), title: title, text: text}
	nb.sources = append(nb.sources, src)
	return notebooklm.SourceHandle{ID: src.id, Title: title}, nil
}

func (f *fakeService) DeleteSource(ctx context.Context, notebookID, sourceID string) (bool, error) {
	if sourceID == f.failDeleteSource {
		return false, fmt.Errorf("%w: delete refused", notebooklm.ErrOperation)
	}
	nb, ok := f.notebooks[notebookID]
	if !ok {
		return false, fmt.Errorf("%w: notebook not found", notebooklm.ErrOperation)
	}
	for i, s := range nb.sources {
		if s.id == sourceID {
			nb.sources = append(nb.sources[:i], nb.sources[i+1:]...)
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: source not found", notebooklm.ErrOperation)
}

func (f *fakeService) Query(ctx context.Context, notebookID, query string) (*notebooklm.QueryResult, error) {
	f.queryCalls++
	if f.failQuery {
		return nil, fmt.Errorf("%w: query refused", notebooklm.ErrOperation)
	}
	nb, ok := f.notebooks[notebookID]
	if !ok {
		return nil, fmt.Errorf("%w: notebook not found", notebooklm.ErrOperation)
	}
	result := &notebooklm.QueryResult{Answer: "answer to " + query}
	for _, s := range nb.sources {
		result.Sources = append(result.Sources, notebooklm.QuerySource{
			SourceID: s.id,
			Title:    s.title,
			Snippet:  "snippet: " + s.text,
		})
	}
	return result, nil
}

// hasSource reports whether the notebook holds a source with the ID.
func (f *fakeService) hasSource(notebookID, sourceID string) bool {
	nb, ok := f.notebooks[notebookID]
	if !ok {
		return false
	}
	for _, s := range nb.sources {
		if s.id == sourceID {
			return true
		}
	}
	return false
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.NotebookMapping = map[string]string{
		"resources": "nb-resources",
		"memories":  "nb-memories",
	}
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBackend(t *testing.T) (*Backend, *fakeService) {
	t.Helper()
	svc := newFakeService()
	b, err := New(Options{Config: testConfig(), Service: svc, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return b, svc
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(Options{})
	if !errors.Is(err, store.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewRejectsIncompleteTiers(t *testing.T) {
	cfg := testConfig()
	cfg.TierConfig = naming.Thresholds{naming.TierL0: 100, naming.TierL1: 2000}

	_, err := New(Options{Config: cfg, Service: newFakeService(), Logger: quietLogger()})
	if err == nil {
		t.Fatal("expected construction failure for missing L2")
	}
	if !errors.Is(err, store.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewReadsAuthToken(t *testing.T) {
	cfg := testConfig()
	cfg.AuthTokenPath = filepath.Join(t.TempDir(), "absent")

	_, err := New(Options{Config: cfg, Logger: quietLogger()})
	if !errors.Is(err, store.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable for missing token, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg = testConfig()
	cfg.AuthTokenPath = path
	if _, err := New(Options{Config: cfg, Logger: quietLogger()}); err != nil {
		t.Fatalf("New failed with readable token: %v", err)
	}
}

func TestNewRejectsUnmappedConfig(t *testing.T) {
	cfg := config.New()

	_, err := New(Options{Config: cfg, Service: newFakeService(), Logger: quietLogger()})
	if !errors.Is(err, store.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestCreateCollection(t *testing.T) {
	b, svc := newTestBackend(t)
	ctx := context.Background()

	created, err := b.CreateCollection(ctx, "resources", nil)
	if err != nil || created {
		t.Fatalf("mapped collection should be a no-op, got (%v, %v)", created, err)
	}

	created, err = b.CreateCollection(ctx, "skills", map[string]any{"description": "skill docs"})
	if err != nil || !created {
		t.Fatalf("CreateCollection = (%v, %v)", created, err)
	}

	id, err := b.notebookID("skills")
	if err != nil {
		t.Fatalf("new collection not mapped: %v", err)
	}
	if _, ok := svc.notebooks[id]; !ok {
		t.Error("notebook not created in service")
	}
}

func TestDropCollection(t *testing.T) {
	b, svc := newTestBackend(t)
	ctx := context.Background()

	if _, err := b.Insert(ctx, "resources", store.Record{Content: "doomed"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	ok, err := b.DropCollection(ctx, "resources")
	if err != nil || !ok {
		t.Fatalf("DropCollection = (%v, %v)", ok, err)
	}
	if _, exists := svc.notebooks["nb-resources"]; exists {
		t.Error("notebook not deleted")
	}
	if _, err := b.notebookID("resources"); err == nil {
		t.Error("mapping entry not removed")
	}
	if n, _ := b.Count(ctx, "resources", nil); n != 0 {
		t.Error("cache entries survived drop")
	}

	ok, err = b.DropCollection(ctx, "unknown")
	if err != nil || ok {
		t.Errorf("unknown collection should be soft failure, got (%v, %v)", ok, err)
	}
}

func TestCollectionExists(t *testing.T) {
	b, svc := newTestBackend(t)
	ctx := context.Background()

	if ok, _ := b.CollectionExists(ctx, "resources"); !ok {
		t.Error("mapped collection should exist")
	}
	if ok, _ := b.CollectionExists(ctx, "unknown"); ok {
		t.Error("unmapped collection should not exist")
	}

	delete(svc.notebooks, "nb-resources")
	if ok, _ := b.CollectionExists(ctx, "resources"); ok {
		t.Error("collection with missing notebook should not exist")
	}
}

func TestListCollections(t *testing.T) {
	b, _ := newTestBackend(t)

	names, err := b.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections failed: %v", err)
	}
	if len(names) != 2 || names[0] != "memories" || names[1] != "resources" {
		t.Errorf("unexpected collections: %v", names)
	}
}

func TestCollectionInfo(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	if _, err := b.Insert(ctx, "resources", store.Record{Content: "a doc"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	info, err := b.CollectionInfo(ctx, "resources")
	if err != nil {
		t.Fatalf("CollectionInfo failed: %v", err)
	}
	if info == nil {
		t.Fatal("expected info")
	}
	if info.Name != "resources" || info.NotebookID != "nb-resources" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.SourceCount != 1 {
		t.Errorf("source count = %d, want 1", info.SourceCount)
	}

	if info, _ := b.CollectionInfo(ctx, "unknown"); info != nil {
		t.Errorf("expected nil info for unknown collection, got %+v", info)
	}
}

func TestHealthCheck(t *testing.T) {
	b, svc := newTestBackend(t)
	ctx := context.Background()

	if err := b.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	svc.failList = true
	if err := b.HealthCheck(ctx); !errors.Is(err, store.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestStats(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := b.Insert(ctx, "resources", store.Record{Content: fmt.Sprintf("doc %d", i)}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	stats, err := b.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Collections != 2 || stats.TotalRecords != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Backend != "notebooklm" {
		t.Errorf("backend = %q", stats.Backend)
	}
	if stats.TierConfig["L0"] != 100 {
		t.Errorf("tier config missing: %v", stats.TierConfig)
	}
}

func TestIndexOpsAreNoops(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	if ok, err := b.CreateIndex(ctx, "resources", "uri", "scalar"); !ok || err != nil {
		t.Errorf("CreateIndex = (%v, %v)", ok, err)
	}
	if ok, err := b.DropIndex(ctx, "resources", "uri"); !ok || err != nil {
		t.Errorf("DropIndex = (%v, %v)", ok, err)
	}
	if ok, err := b.Optimize(ctx, "resources"); !ok || err != nil {
		t.Errorf("Optimize = (%v, %v)", ok, err)
	}
}

func TestClear(t *testing.T) {
	b, svc := newTestBackend(t)
	ctx := context.Background()

	id, err := b.Insert(ctx, "resources", store.Record{Content: "to be cleared"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	ok, err := b.Clear(ctx, "resources")
	if err != nil || !ok {
		t.Fatalf("Clear = (%v, %v)", ok, err)
	}
	if exists, _ := b.Exists(ctx, "resources", id); exists {
		t.Error("record survived clear")
	}
	if len(svc.notebooks["nb-resources"].sources) != 0 {
		t.Error("external sources survived clear")
	}
}

func TestCloseResetsCache(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	id, err := b.Insert(ctx, "resources", store.Record{Content: "ephemeral"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := b.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if exists, _ := b.Exists(ctx, "resources", id); exists {
		t.Error("cache survived close")
	}
}

func TestMode(t *testing.T) {
	b, _ := newTestBackend(t)
	if b.Mode() != "notebooklm" {
		t.Errorf("Mode = %q", b.Mode())
	}
}
