package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/notebookstore/naming"
)

// Default timeout settings, in seconds. Content-bearing inserts and
// free-text queries get a longer budget than management calls.
const (
	DefaultTimeoutSeconds = 30
	AddTextTimeoutSeconds = 120
	QueryTimeoutSeconds   = 120
)

// Validation errors reported by Validate.
var (
	ErrNoNotebooks = errors.New("config requires either a notebook mapping or a default notebook ID")
)

// Timeouts fixes the per-operation-kind budgets for calls to the
// notebook service. Values are in seconds; zero means the default.
type Timeouts struct {
	DefaultSeconds int `json:"defaultSeconds" yaml:"default_seconds" envconfig:"TIMEOUT_DEFAULT_SECONDS"`
	AddTextSeconds int `json:"addTextSeconds" yaml:"add_text_seconds" envconfig:"TIMEOUT_ADD_TEXT_SECONDS"`
	QuerySeconds   int `json:"querySeconds" yaml:"query_seconds" envconfig:"TIMEOUT_QUERY_SECONDS"`
}

// Default returns the management-call timeout.
func (t Timeouts) Default() time.Duration {
	return secondsOr(t.DefaultSeconds, DefaultTimeoutSeconds)
}

// AddText returns the content-bearing insert timeout.
func (t Timeouts) AddText() time.Duration {
	return secondsOr(t.AddTextSeconds, AddTextTimeoutSeconds)
}

// Query returns the free-text query timeout.
func (t Timeouts) Query() time.Duration {
	return secondsOr(t.QuerySeconds, QueryTimeoutSeconds)
}

func secondsOr(s, fallback int) time.Duration {
	if s <= 0 {
		s = fallback
	}
	return time.Duration(s) * time.Second
}

// ServiceConfig describes how to reach the notebook service.
// Either URL (http(s)://, sse://, stdio://) or Command (argv of a
// server spawned as a subprocess over stdio) must be set to connect.
type ServiceConfig struct {
	URL        string            `json:"url" yaml:"url" envconfig:"SERVICE_URL"`
	Command    []string          `json:"command,omitempty" yaml:"command,omitempty" envconfig:"SERVICE_COMMAND"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	MaxRetries int               `json:"maxRetries,omitempty" yaml:"max_retries,omitempty" envconfig:"SERVICE_MAX_RETRIES"`
	Timeouts   Timeouts          `json:"timeouts" yaml:"timeouts"`
}

// Config is the adapter configuration.
type Config struct {
	// NotebookMapping maps collection names to notebook IDs.
	NotebookMapping map[string]string `json:"notebookMapping" yaml:"notebook_mapping" envconfig:"NOTEBOOK_MAPPING"`

	// DefaultNotebookID is the fallback for unmapped collections.
	// Empty means unmapped collections fail to resolve.
	DefaultNotebookID string `json:"defaultNotebookId,omitempty" yaml:"default_notebook_id,omitempty" envconfig:"DEFAULT_NOTEBOOK_ID"`

	// AuthTokenPath points at the service's token file. Empty leaves
	// credential handling to the service itself.
	AuthTokenPath string `json:"authTokenPath,omitempty" yaml:"auth_token_path,omitempty" envconfig:"AUTH_TOKEN_PATH"`

	// TierConfig sets the word-count limits for L0/L1/L2.
	// All three tiers must be present.
	TierConfig naming.Thresholds `json:"tierConfig" yaml:"tier_config" envconfig:"TIER_CONFIG"`

	// SourceNamingPattern lays out source names. Must contain {tier}.
	SourceNamingPattern string `json:"sourceNamingPattern" yaml:"source_naming_pattern" envconfig:"SOURCE_NAMING_PATTERN"`

	// Service configures the connection to the notebook service.
	Service ServiceConfig `json:"service" yaml:"service"`
}

// New returns a Config with default tier thresholds and naming pattern.
// The result does not validate until a notebook mapping or default
// notebook ID is set.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.NotebookMapping == nil {
		c.NotebookMapping = make(map[string]string)
	}
	if c.TierConfig == nil {
		c.TierConfig = naming.DefaultThresholds()
	}
	if c.SourceNamingPattern == "" {
		c.SourceNamingPattern = naming.DefaultPattern
	}
}

// Validate checks configuration invariants. Violations are fatal: the
// adapter refuses to construct with an invalid Config.
func (c *Config) Validate() error {
	if len(c.NotebookMapping) == 0 && c.DefaultNotebookID == "" {
		return ErrNoNotebooks
	}
	if err := c.TierConfig.Validate(); err != nil {
		return err
	}
	if _, err := naming.NewPattern(c.SourceNamingPattern); err != nil {
		return err
	}
	return nil
}

// NotebookID resolves a collection name to its notebook ID: the mapped
// ID when present, else the default, else an error naming the
// collection.
func (c *Config) NotebookID(collection string) (string, error) {
	if id, ok := c.NotebookMapping[collection]; ok {
		return id, nil
	}
	if c.DefaultNotebookID != "" {
		return c.DefaultNotebookID, nil
	}
	return "", fmt.Errorf("collection %q not mapped and no default notebook ID configured", collection)
}

// Pattern returns the validated naming pattern.
func (c *Config) Pattern() (naming.Pattern, error) {
	return naming.NewPattern(c.SourceNamingPattern)
}
