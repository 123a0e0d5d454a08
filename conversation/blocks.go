package conversation

import (
	"encoding/json"
	"strings"
)

// Block is one typed unit of dialogue content: text, a tool invocation,
// or a tool result.
type Block interface {
	isBlock()
}

// Text is a plain text block.
type Text struct {
	Text string
}

// ToolUse is a model-issued request to run a named tool with structured input.
// ID is unique within the response that produced it.
type ToolUse struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult is the outcome of executing a ToolUse, correlated to it by
// ToolUseID. Content is the result payload; IsError marks failures the model
// should adapt to.
type ToolResult struct {
	ToolUseID string
	Content   []Block
	IsError   bool
}

func (Text) isBlock()       {}
func (ToolUse) isBlock()    {}
func (ToolResult) isBlock() {}

// TextResult builds the common single-text ToolResult.
func TextResult(toolUseID, text string, isError bool) ToolResult {
	return ToolResult{
		ToolUseID: toolUseID,
		Content:   []Block{Text{Text: text}},
		IsError:   isError,
	}
}

// Flatten joins the text content of a ToolResult for display and for
// protocols that carry tool results as a single string. Non-text content
// is skipped.
func (r ToolResult) Flatten() string {
	var parts []string
	for _, b := range r.Content {
		if t, ok := b.(Text); ok {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, "\n")
}
