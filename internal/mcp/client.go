// Package mcp bridges remote tool-provider sessions reached over the Model
// Context Protocol. It implements tools.Provider; nothing outside this
// package touches SDK types.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ternlabs/tern/conversation"
	"github.com/ternlabs/tern/tools"
)

// transportBuilder is overridden in tests to stub the transport factory.
var transportBuilder = buildTransport

// Client is one remote tool-provider session. It connects lazily on first
// use and keeps a single session for the process lifetime; the orchestrator
// guarantees one outstanding call at a time.
type Client struct {
	implClient    *mcpsdk.Client
	session       *mcpsdk.ClientSession
	transportSpec string
	once          sync.Once
	connectErr    error
}

// NewClient constructs a client for the given transport spec:
// "stdio://<command args>", an http(s) URL, or "sse://<endpoint>".
// A bare command string defaults to stdio.
func NewClient(spec string) *Client {
	impl := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "tern", Version: "dev"}, nil)
	return &Client{implClient: impl, transportSpec: spec}
}

func (c *Client) ensureConnected(ctx context.Context) error {
	c.once.Do(func() {
		transport, err := transportBuilder(ctx, c.transportSpec)
		if err != nil {
			c.connectErr = fmt.Errorf("build transport: %w", err)
			return
		}
		session, err := c.implClient.Connect(ctx, transport, nil)
		if err != nil {
			c.connectErr = err
			return
		}
		c.session = session
	})
	return c.connectErr
}

// ListTools fetches the provider's tool list and converts each descriptor
// to a registry definition.
func (c *Client) ListTools(ctx context.Context) ([]tools.Definition, error) {
	if err := c.ensureConnected(ctx); err != nil {
		return nil, err
	}
	var defs []tools.Definition
	for tool, err := range c.session.Tools(ctx, nil) {
		if err != nil {
			return nil, err
		}
		def, convErr := toDefinition(tool)
		if convErr != nil {
			return nil, convErr
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// CallTool forwards one invocation and maps the reply's content and error
// flag into a tool result.
func (c *Client) CallTool(ctx context.Context, name string, input json.RawMessage) (tools.Result, error) {
	if err := c.ensureConnected(ctx); err != nil {
		return tools.Result{}, err
	}
	var args map[string]any
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return tools.Result{}, fmt.Errorf("decode tool input: %w", err)
		}
	}
	res, err := c.session.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return tools.Result{}, err
	}
	return toResult(res), nil
}

// Close shuts down the underlying session, if any.
func (c *Client) Close() error {
	if c == nil || c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

func toDefinition(tool *mcpsdk.Tool) (tools.Definition, error) {
	def := tools.Definition{Name: tool.Name, Description: tool.Description}
	if tool.InputSchema == nil {
		def.InputSchema = tools.InputSchema{Type: "object"}
		return def, nil
	}
	b, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return tools.Definition{}, fmt.Errorf("tool %s: encode schema: %w", tool.Name, err)
	}
	var schema tools.InputSchema
	if err := json.Unmarshal(b, &schema); err != nil {
		return tools.Definition{}, fmt.Errorf("tool %s: decode schema: %w", tool.Name, err)
	}
	if schema.Type == "" {
		schema.Type = "object"
	}
	def.InputSchema = schema
	return def, nil
}

func toResult(res *mcpsdk.CallToolResult) tools.Result {
	out := tools.Result{IsError: res.IsError}
	for _, content := range res.Content {
		switch v := content.(type) {
		case *mcpsdk.TextContent:
			out.Content = append(out.Content, conversation.Text{Text: v.Text})
		default:
			// Non-text content is passed through as its JSON form rather
			// than dropped.
			if b, err := json.Marshal(v); err == nil {
				out.Content = append(out.Content, conversation.Text{Text: string(b)})
			}
		}
	}
	return out
}

const (
	stdioSchemePrefix = "stdio://"
	sseSchemePrefix   = "sse://"
)

func buildTransport(ctx context.Context, spec string) (mcpsdk.Transport, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("transport spec is empty")
	}
	lowered := strings.ToLower(spec)
	switch {
	case strings.HasPrefix(lowered, stdioSchemePrefix):
		return buildCommandTransport(ctx, spec[len(stdioSchemePrefix):])
	case strings.HasPrefix(lowered, sseSchemePrefix):
		endpoint, err := normalizeHTTPURL(spec[len(sseSchemePrefix):])
		if err != nil {
			return nil, fmt.Errorf("invalid SSE endpoint: %w", err)
		}
		return &mcpsdk.SSEClientTransport{Endpoint: endpoint}, nil
	case strings.HasPrefix(lowered, "http://"), strings.HasPrefix(lowered, "https://"):
		return &mcpsdk.StreamableClientTransport{Endpoint: spec}, nil
	}
	return buildCommandTransport(ctx, spec)
}

// normalizeHTTPURL validates an SSE endpoint, guessing https only when the
// spec carries no scheme of its own.
func normalizeHTTPURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("endpoint is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("missing host")
	}
	parsed.Scheme = scheme
	return parsed.String(), nil
}

func buildCommandTransport(ctx context.Context, cmdSpec string) (mcpsdk.Transport, error) {
	parts := strings.Fields(strings.TrimSpace(cmdSpec))
	if len(parts) == 0 {
		return nil, fmt.Errorf("stdio command is empty")
	}
	command := exec.CommandContext(ctx, parts[0], parts[1:]...)
	return &mcpsdk.CommandTransport{Command: command}, nil
}
