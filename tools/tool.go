package tools

import (
	"context"
	"encoding/json"

	"github.com/ternlabs/tern/conversation"
)

// InputSchema describes a tool's structured input as a JSON Schema object.
type InputSchema struct {
	Type       string   `json:"type"`
	Properties any      `json:"properties,omitempty"`
	Required   []string `json:"required,omitempty"`
}

// Definition is the immutable identity of a tool, exported to the
// language-model service so it knows what it may invoke.
type Definition struct {
	Name        string
	Description string
	InputSchema InputSchema
}

// Result is a tool's execution outcome: the content blocks to return to the
// model and whether they describe a failure.
type Result struct {
	Content []conversation.Block
	IsError bool
}

// Tool is one invocable capability. Execute runs a single invocation with
// the raw structured input from the model and blocks until done; a returned
// error is mapped to an error tool result by the registry, never surfaced as
// a process fault.
type Tool interface {
	Definition() Definition
	Execute(ctx context.Context, input json.RawMessage) (Result, error)
}

// TextResult builds a Result holding a single text block.
func TextResult(text string, isError bool) Result {
	return Result{Content: []conversation.Block{conversation.Text{Text: text}}, IsError: isError}
}
