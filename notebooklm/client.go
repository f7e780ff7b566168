package notebooklm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Sentinel errors for consistent error handling.
var (
	ErrNotConnected = errors.New("notebook client not connected")
	ErrOperation    = errors.New("notebook operation failed")
)

// MCP tool names fixed by the notebook service.
const (
	toolNotebookList     = "notebook_list"
	toolNotebookCreate   = "notebook_create"
	toolNotebookDelete   = "notebook_delete"
	toolNotebookDescribe = "notebook_describe"
	toolNotebookAddText  = "notebook_add_text"
	toolSourceDelete     = "source_delete"
	toolNotebookQuery    = "notebook_query"
)

// Timeouts fixes the per-operation-kind call budgets. Zero fields fall
// back to 30s for management calls and 120s for content-bearing adds
// and free-text queries.
type Timeouts struct {
	Default time.Duration
	AddText time.Duration
	Query   time.Duration
}

func (t Timeouts) defaultBudget() time.Duration { return durationOr(t.Default, 30*time.Second) }
func (t Timeouts) addTextBudget() time.Duration { return durationOr(t.AddText, 120*time.Second) }
func (t Timeouts) queryBudget() time.Duration   { return durationOr(t.Query, 120*time.Second) }

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Config describes the connection to the notebook service.
type Config struct {
	// URL is the MCP server URL (http(s)://, sse://, stdio://).
	URL string
	// Command is the argv of a server to spawn as a subprocess and
	// reach over stdio. Takes precedence over URL.
	Command []string
	// Headers are optional HTTP headers for authenticated servers.
	Headers map[string]string
	// MaxRetries controls reconnect attempts for streamable HTTP transport.
	MaxRetries int
	// Timeouts are the per-operation-kind call budgets.
	Timeouts Timeouts
	// Transport overrides URL/Command handling when provided (useful for tests).
	Transport mcp.Transport
}

// Client is an MCP client session against the notebook service.
type Client struct {
	config    Config
	mu        sync.RWMutex
	client    *mcp.Client
	session   *mcp.ClientSession
	connected bool
}

// NewClient returns an unconnected Client.
func NewClient(cfg Config) *Client {
	return &Client{config: cfg}
}

// Connect establishes the MCP session. Connecting an already connected
// client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	transport, err := c.transport(ctx)
	if err != nil {
		return err
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "notebookstore"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("connect notebook service: %w", err)
	}

	c.mu.Lock()
	c.client = client
	c.session = session
	c.connected = true
	c.mu.Unlock()
	return nil
}

// Close tears down the MCP session.
func (c *Client) Close() error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return nil
	}
	session := c.session
	c.client = nil
	c.session = nil
	c.connected = false
	c.mu.Unlock()

	if session != nil {
		return session.Close()
	}
	return nil
}

// Connected reports whether the client holds a live session.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// ListNotebooks returns every notebook the service knows about.
func (c *Client) ListNotebooks(ctx context.Context) ([]Notebook, error) {
	var out struct {
		envelope
		Notebooks []Notebook `json:"notebooks"`
	}
	if err := c.call(ctx, toolNotebookList, nil, c.config.Timeouts.defaultBudget(), &out); err != nil {
		return nil, err
	}
	return out.Notebooks, nil
}

// CreateNotebook creates a notebook and returns its ID.
func (c *Client) CreateNotebook(ctx context.Context, name, description string) (string, error) {
	var out struct {
		envelope
		NotebookID string `json:"notebook_id"`
	}
	args := map[string]any{"name": name, "description": description}
	if err := c.call(ctx, toolNotebookCreate, args, c.config.Timeouts.defaultBudget(), &out); err != nil {
		return "", err
	}
	if out.NotebookID == "" {
		return "", fmt.Errorf("%w: %s returned no notebook ID", ErrOperation, toolNotebookCreate)
	}
	return out.NotebookID, nil
}

// DeleteNotebook deletes a notebook.
func (c *Client) DeleteNotebook(ctx context.Context, notebookID string) (bool, error) {
	args := map[string]any{"notebook_id": notebookID, "confirm": true}
	if err := c.call(ctx, toolNotebookDelete, args, c.config.Timeouts.defaultBudget(), nil); err != nil {
		return false, err
	}
	return true, nil
}

// DescribeNotebook returns notebook metadata including its source list.
func (c *Client) DescribeNotebook(ctx context.Context, notebookID string) (*NotebookInfo, error) {
	var out struct {
		envelope
		NotebookInfo
	}
	args := map[string]any{"notebook_id": notebookID}
	if err := c.call(ctx, toolNotebookDescribe, args, c.config.Timeouts.defaultBudget(), &out); err != nil {
		return nil, err
	}
	info := out.NotebookInfo
	if info.ID == "" {
		info.ID = notebookID
	}
	return &info, nil
}

// AddText adds a text source to a notebook under the given title.
func (c *Client) AddText(ctx context.Context, notebookID, text, title string) (SourceHandle, error) {
	var out struct {
		envelope
		SourceHandle
	}
	args := map[string]any{"notebook_id": notebookID, "text": text, "title": title}
	if err := c.call(ctx, toolNotebookAddText, args, c.config.Timeouts.addTextBudget(), &out); err != nil {
		return SourceHandle{}, err
	}
	if out.SourceHandle.Title == "" {
		out.SourceHandle.Title = title
	}
	return out.SourceHandle, nil
}

// DeleteSource removes a source from a notebook.
func (c *Client) DeleteSource(ctx context.Context, notebookID, sourceID string) (bool, error) {
	args := map[string]any{"notebook_id": notebookID, "source_id": sourceID}
	if err := c.call(ctx, toolSourceDelete, args, c.config.Timeouts.defaultBudget(), nil); err != nil {
		return false, err
	}
	return true, nil
}

// Query runs a natural-language query over a notebook's sources.
func (c *Client) Query(ctx context.Context, notebookID, query string) (*QueryResult, error) {
	var out struct {
		envelope
		QueryResult
	}
	args := map[string]any{"notebook_id": notebookID, "query": query}
	if err := c.call(ctx, toolNotebookQuery, args, c.config.Timeouts.queryBudget(), &out); err != nil {
		return nil, err
	}
	return &out.QueryResult, nil
}

func (c *Client) call(ctx context.Context, tool string, args map[string]any, budget time.Duration, out any) error {
	c.mu.RLock()
	session := c.session
	connected := c.connected
	c.mu.RUnlock()

	if !connected || session == nil {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOperation, tool, err)
	}
	if result == nil {
		return nil
	}
	if result.IsError {
		return fmt.Errorf("%w: %s: %s", ErrOperation, tool, resultError(result))
	}

	payload, err := resultPayload(result)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOperation, tool, err)
	}
	if len(payload) == 0 {
		return nil
	}

	var env envelope
	_ = json.Unmarshal(payload, &env)
	if env.Status == "error" {
		msg := env.Error
		if msg == "" {
			msg = "service reported an error"
		}
		return fmt.Errorf("%w: %s: %s", ErrOperation, tool, msg)
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("%w: %s: decode result: %v", ErrOperation, tool, err)
		}
	}
	return nil
}

// resultPayload extracts the JSON body of a tool result: structured
// content when present, otherwise a single text content block.
func resultPayload(result *mcp.CallToolResult) ([]byte, error) {
	if result.StructuredContent != nil {
		return json.Marshal(result.StructuredContent)
	}
	if len(result.Content) == 1 {
		if text, ok := result.Content[0].(*mcp.TextContent); ok {
			return []byte(text.Text), nil
		}
	}
	if len(result.Content) == 0 {
		return nil, nil
	}
	return nil, errors.New("unexpected result content shape")
}

func resultError(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok && text.Text != "" {
			return text.Text
		}
	}
	if result.StructuredContent != nil {
		return fmt.Sprintf("%v", result.StructuredContent)
	}
	return "tool execution failed"
}

func (c *Client) transport(_ context.Context) (mcp.Transport, error) {
	if c.config.Transport != nil {
		return c.config.Transport, nil
	}
	if len(c.config.Command) > 0 {
		// The subprocess must outlive the Connect context.
		cmd := exec.Command(c.config.Command[0], c.config.Command[1:]...)
		return &mcp.CommandTransport{Command: cmd}, nil
	}
	if strings.TrimSpace(c.config.URL) == "" {
		return nil, errors.New("notebook service URL or command is required")
	}

	parsed, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid notebook service URL: %w", err)
	}

	httpClient := httpClientWithHeaders(c.config.Headers)

	switch parsed.Scheme {
	case "http", "https":
		return &mcp.StreamableClientTransport{
			Endpoint:   c.config.URL,
			HTTPClient: httpClient,
			MaxRetries: c.config.MaxRetries,
		}, nil
	case "sse":
		parsed.Scheme = "http"
		return &mcp.SSEClientTransport{
			Endpoint:   parsed.String(),
			HTTPClient: httpClient,
		}, nil
	case "stdio":
		return &mcp.StdioTransport{}, nil
	default:
		return nil, fmt.Errorf("unsupported notebook service URL scheme %q", parsed.Scheme)
	}
}

func httpClientWithHeaders(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return nil
	}
	clone := make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		clone[k] = v
	}
	if len(clone) == 0 {
		return nil
	}
	return &http.Client{
		Transport: &headerRoundTripper{
			base:    http.DefaultTransport,
			headers: clone,
		},
	}
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := h.base
	if base == nil {
		base = http.DefaultTransport
	}
	for key, value := range h.headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	return base.RoundTrip(req)
}
