// Package provider wraps the Anthropic Messages API: client construction and
// conversion between the conversation model and SDK wire types.
package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// NewClient returns a client using the API key from the environment.
func NewClient() *anthropic.Client {
	c := anthropic.NewClient()
	return &c
}

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

// DefaultMaxTokens bounds each response; the loop never streams partial output.
const DefaultMaxTokens = int64(1024)
