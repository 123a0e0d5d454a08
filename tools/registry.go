package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/ternlabs/tern/conversation"
	"github.com/ternlabs/tern/internal/telemetry"
)

// Registry owns a fixed set of tools for the process lifetime. It is built
// once before the loop starts and is lookup-only afterwards, so no locking
// is needed.
type Registry struct {
	order  []Tool
	byName map[string]Tool
}

// NewRegistry builds a registry from the given tools. A later registration
// under an existing name replaces the earlier tool.
func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{byName: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		r.Register(t)
	}
	return r
}

// Register adds a tool. Call only during registry construction, before the
// loop starts.
func (r *Registry) Register(t Tool) {
	name := t.Definition().Name
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, t)
	}
	r.byName[name] = t
}

// Find returns the tool registered under name.
func (r *Registry) Find(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Definitions returns every tool definition in registration order, for
// submission to the language-model service.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, t := range r.order {
		defs = append(defs, t.Definition())
	}
	return defs
}

// Dispatch resolves and executes one invocation, always yielding a single
// ToolResult correlated by the invocation ID. An unknown name or a failed
// execution produces an error result for the model; neither is a fault.
func (r *Registry) Dispatch(ctx context.Context, inv conversation.ToolUse) conversation.ToolResult {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	start := time.Now()
	emit := func(outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   inv.Name,
			"duration_ms": time.Since(start).Milliseconds(),
			"input_size":  len(inv.Input),
			"output_size": outputSize,
			"turn_id":     turnID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	t, ok := r.byName[inv.Name]
	if !ok {
		emit(0, "tool not found")
		return conversation.TextResult(inv.ID, fmt.Sprintf("unsupported tool: %q", inv.Name), true)
	}

	res, err := t.Execute(ctx, inv.Input)
	if err != nil {
		// Keep telemetry payload-free; the detailed message goes to the model.
		emit(0, "tool error")
		return conversation.TextResult(inv.ID, err.Error(), true)
	}

	out := conversation.ToolResult{ToolUseID: inv.ID, Content: res.Content, IsError: res.IsError}
	// The service protocol requires one result per invocation, so normalize
	// empty output to an empty text block.
	if len(out.Content) == 0 {
		out.Content = []conversation.Block{conversation.Text{}}
	}
	emit(len(out.Flatten()), "")
	return out
}
