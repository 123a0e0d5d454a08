package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the narrow contract of a remote tool-provider session. The
// core depends only on this surface, never on the provider's transport.
// The session is a single logical client with one outstanding call at a time.
type Provider interface {
	ListTools(ctx context.Context) ([]Definition, error)
	CallTool(ctx context.Context, name string, input json.RawMessage) (Result, error)
}

// RemoteTool bridges one logical tool exposed by a remote provider. Execute
// forwards the invocation and maps the reply's content and error flag
// directly into the result.
type RemoteTool struct {
	provider Provider
	def      Definition
}

// NewRemoteTool wraps a single remote tool definition.
func NewRemoteTool(p Provider, def Definition) *RemoteTool {
	return &RemoteTool{provider: p, def: def}
}

func (t *RemoteTool) Definition() Definition { return t.def }

func (t *RemoteTool) Execute(ctx context.Context, input json.RawMessage) (Result, error) {
	res, err := t.provider.CallTool(ctx, t.def.Name, input)
	if err != nil {
		return Result{}, fmt.Errorf("remote tool %s: %w", t.def.Name, err)
	}
	return res, nil
}

// RemoteTools queries a provider once for its tool list and returns one
// RemoteTool per definition, ready for registration.
func RemoteTools(ctx context.Context, p Provider) ([]Tool, error) {
	defs, err := p.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote tools: %w", err)
	}
	out := make([]Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, NewRemoteTool(p, def))
	}
	return out, nil
}
