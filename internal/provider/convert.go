package provider

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ternlabs/tern/conversation"
	"github.com/ternlabs/tern/tools"
)

// Request is everything one service call carries: the full history, the
// registry's exported tool definitions, and the optional system prompt.
type Request struct {
	Model        anthropic.Model
	History      []conversation.Turn
	Tools        []tools.Definition
	SystemPrompt string
	MaxTokens    int64
}

// BuildParams assembles the SDK request parameters from a Request.
func BuildParams(req Request) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages:  BuildMessages(req.History),
		Tools:     BuildTools(req.Tools),
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}
	return params
}

// BuildMessages converts the ordered turn sequence to SDK message params,
// preserving turn and block order exactly.
func BuildMessages(history []conversation.Turn) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history))
	for _, turn := range history {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(turn.Blocks))
		for _, b := range turn.Blocks {
			switch v := b.(type) {
			case conversation.Text:
				blocks = append(blocks, anthropic.NewTextBlock(v.Text))
			case conversation.ToolUse:
				blocks = append(blocks, anthropic.ContentBlockParamUnion{OfToolUse: &anthropic.ToolUseBlockParam{
					Type:  "tool_use",
					ID:    v.ID,
					Name:  v.Name,
					Input: v.Input,
				}})
			case conversation.ToolResult:
				blocks = append(blocks, anthropic.NewToolResultBlock(v.ToolUseID, v.Flatten(), v.IsError))
			}
		}
		if turn.Speaker == conversation.Assistant {
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		} else {
			out = append(out, anthropic.NewUserMessage(blocks...))
		}
	}
	return out
}

// BuildTools converts registry definitions to SDK tool params.
func BuildTools(defs []tools.Definition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, d := range defs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        d.Name,
			Description: anthropic.String(d.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: d.InputSchema.Properties,
				Required:   d.InputSchema.Required,
			},
		}})
	}
	return out
}

// ParseMessage maps a service response into content blocks, in the order
// the service returned them.
func ParseMessage(msg *anthropic.Message) []conversation.Block {
	var out []conversation.Block
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			out = append(out, conversation.Text{Text: v.Text})
		case anthropic.ToolUseBlock:
			// Pass raw JSON input through to the tool implementation.
			out = append(out, conversation.ToolUse{
				ID:    v.ID,
				Name:  v.Name,
				Input: json.RawMessage(v.JSON.Input.Raw()),
			})
		}
	}
	return out
}
