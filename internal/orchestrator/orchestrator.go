package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ternlabs/tern/conversation"
	"github.com/ternlabs/tern/internal/provider"
	"github.com/ternlabs/tern/internal/telemetry"
	"github.com/ternlabs/tern/tools"
)

// ErrInputClosed reports that the input source was exhausted. Exhaustion is
// a fatal condition that terminates the loop; the conversation is not
// persisted.
var ErrInputClosed = errors.New("input source closed")

// Presenter receives every produced content block for display, in the exact
// order blocks are processed. Display never fails the loop and never alters
// what is appended to the conversation.
type Presenter interface {
	ShowText(conversation.Text)
	ShowToolUse(conversation.ToolUse)
	ShowToolResult(conversation.ToolResult)
}

// InputSource supplies user input lines. NextLine blocks until a line is
// available and returns io.EOF when the source is exhausted.
type InputSource interface {
	NextLine(ctx context.Context) (string, error)
}

// Options configure one Orchestrator. Zero values fall back to provider
// defaults.
type Options struct {
	Model        anthropic.Model
	SystemPrompt string
	MaxTokens    int64
}

// Orchestrator drives the conversation: it acquires user input when needed,
// calls the language-model service with the full history, dispatches tool
// invocations sequentially through the registry, and appends results. It is
// the single writer of the conversation log.
type Orchestrator struct {
	client    *anthropic.Client
	registry  *tools.Registry
	presenter Presenter
	input     InputSource
	log       *conversation.Log
	opts      Options
}

// New builds an Orchestrator with a fresh, empty conversation log.
func New(client *anthropic.Client, registry *tools.Registry, presenter Presenter, input InputSource, opts Options) *Orchestrator {
	if opts.Model == "" {
		opts.Model = provider.DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = provider.DefaultMaxTokens
	}
	return &Orchestrator{
		client:    client,
		registry:  registry,
		presenter: presenter,
		input:     input,
		log:       &conversation.Log{},
		opts:      opts,
	}
}

// History exposes the conversation log's turn sequence (a copy).
func (o *Orchestrator) History() []conversation.Turn { return o.log.History() }

// Run iterates the two-state loop until the context is cancelled, the input
// source is exhausted, or a service call fails. There is no other exit: each
// iteration either awaits fresh input or continues straight into the next
// service call after tool results.
func (o *Orchestrator) Run(ctx context.Context) error {
	needInput := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if needInput {
			line, err := o.input.NextLine(ctx)
			if errors.Is(err, io.EOF) {
				return ErrInputClosed
			}
			if err != nil {
				return err
			}
			o.log.AppendUserText(line)
		}
		var err error
		needInput, err = o.step(ctx)
		if err != nil {
			return err
		}
	}
}

// step runs one service round trip and reports whether the next iteration
// needs fresh user input (true when the response carried no tool invocation).
func (o *Orchestrator) step(ctx context.Context) (bool, error) {
	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = telemetry.NewTurnID()
		ctx = telemetry.WithTurnID(ctx, turnID)
	}

	params := provider.BuildParams(provider.Request{
		Model:        o.opts.Model,
		History:      o.log.History(),
		Tools:        o.registry.Definitions(),
		SystemPrompt: o.opts.SystemPrompt,
		MaxTokens:    o.opts.MaxTokens,
	})

	// A failed service call is fatal for the loop: no retry, no backoff.
	msg, err := o.client.Messages.New(ctx, params)
	if err != nil {
		return false, fmt.Errorf("service call: %w", err)
	}
	blocks := provider.ParseMessage(msg)
	// The whole response is appended as one turn; partial appends are never
	// visible.
	o.log.AppendAssistant(blocks)

	telemetry.Emit("service_call", map[string]any{
		"turn_id":     turnID,
		"model":       string(o.opts.Model),
		"history_len": o.log.Len(),
		"block_count": len(blocks),
	})

	var results []conversation.Block
	for _, b := range blocks {
		switch v := b.(type) {
		case conversation.Text:
			o.presenter.ShowText(v)
		case conversation.ToolUse:
			o.presenter.ShowToolUse(v)
			res := o.registry.Dispatch(ctx, v)
			o.presenter.ShowToolResult(res)
			results = append(results, res)
		}
	}

	if len(results) == 0 {
		return true, nil
	}
	o.log.AppendToolResults(results)
	return false, nil
}
