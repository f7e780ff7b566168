package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/notebookstore/naming"
)

func TestValidateWithMapping(t *testing.T) {
	cfg := New()
	cfg.NotebookMapping = map[string]string{
		"resources": "notebook-id-1",
		"memories":  "notebook-id-2",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidateWithDefaultOnly(t *testing.T) {
	cfg := New()
	cfg.DefaultNotebookID = "default-notebook-id"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidateRequiresNotebooks(t *testing.T) {
	cfg := New()

	if err := cfg.Validate(); !errors.Is(err, ErrNoNotebooks) {
		t.Fatalf("expected ErrNoNotebooks, got %v", err)
	}
}

func TestValidateMissingTier(t *testing.T) {
	cfg := New()
	cfg.DefaultNotebookID = "test-id"
	cfg.TierConfig = naming.Thresholds{naming.TierL0: 100, naming.TierL1: 2000}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing L2 tier")
	}
	if !strings.Contains(err.Error(), "L2") {
		t.Errorf("error should cite the missing tier, got: %v", err)
	}
}

func TestValidatePatternPlaceholder(t *testing.T) {
	cfg := New()
	cfg.DefaultNotebookID = "test-id"
	cfg.SourceNamingPattern = "no-tier-placeholder"

	if err := cfg.Validate(); !errors.Is(err, naming.ErrMissingTierPlaceholder) {
		t.Fatalf("expected ErrMissingTierPlaceholder, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := New()

	if cfg.TierConfig[naming.TierL0] != 100 || cfg.TierConfig[naming.TierL1] != 2000 || cfg.TierConfig[naming.TierL2] != 0 {
		t.Errorf("unexpected default tiers: %v", cfg.TierConfig)
	}
	if !strings.Contains(cfg.SourceNamingPattern, "{tier}") {
		t.Errorf("default pattern missing {tier}: %s", cfg.SourceNamingPattern)
	}
	if !strings.Contains(cfg.SourceNamingPattern, "ACTIVE") {
		t.Errorf("default pattern missing status flag: %s", cfg.SourceNamingPattern)
	}
}

func TestNotebookID(t *testing.T) {
	cfg := New()
	cfg.NotebookMapping = map[string]string{"resources": "notebook-id-1"}
	cfg.DefaultNotebookID = "default-id"

	if id, err := cfg.NotebookID("resources"); err != nil || id != "notebook-id-1" {
		t.Errorf("mapped lookup = (%q, %v)", id, err)
	}
	if id, err := cfg.NotebookID("unknown"); err != nil || id != "default-id" {
		t.Errorf("fallback lookup = (%q, %v)", id, err)
	}

	cfg.DefaultNotebookID = ""
	_, err := cfg.NotebookID("unknown")
	if err == nil {
		t.Fatal("expected error for unmapped collection without default")
	}
	if !strings.Contains(err.Error(), "unknown") {
		t.Errorf("error should name the collection, got: %v", err)
	}
}

func TestTimeouts(t *testing.T) {
	var zero Timeouts
	if zero.Default() != 30*time.Second {
		t.Errorf("default timeout = %s", zero.Default())
	}
	if zero.AddText() != 120*time.Second {
		t.Errorf("add-text timeout = %s", zero.AddText())
	}
	if zero.Query() != 120*time.Second {
		t.Errorf("query timeout = %s", zero.Query())
	}

	set := Timeouts{DefaultSeconds: 5, AddTextSeconds: 10, QuerySeconds: 15}
	if set.Default() != 5*time.Second || set.AddText() != 10*time.Second || set.Query() != 15*time.Second {
		t.Errorf("explicit timeouts not honored: %+v", set)
	}
}
