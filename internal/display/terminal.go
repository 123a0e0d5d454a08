// Package display renders content blocks to a terminal. It is a pure
// consumer: nothing it does feeds back into the conversation log.
package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ternlabs/tern/conversation"
)

var (
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	toolStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Options configure a Terminal at construction time; they are never mutated
// afterwards.
type Options struct {
	// HideToolResults suppresses tool-result display. Suppression affects
	// display only, never what is appended to the conversation.
	HideToolResults bool
}

// Terminal writes styled blocks to w.
type Terminal struct {
	w    io.Writer
	opts Options
}

// NewTerminal builds a Terminal presenter writing to w.
func NewTerminal(w io.Writer, opts Options) *Terminal {
	return &Terminal{w: w, opts: opts}
}

// UserPrompt returns the styled input prompt shown before reading a line.
func UserPrompt() string {
	return userStyle.Render("You") + ": "
}

func (t *Terminal) ShowText(b conversation.Text) {
	fmt.Fprintf(t.w, "%s: %s\n", assistantStyle.Render("Agent"), b.Text)
}

func (t *Terminal) ShowToolUse(b conversation.ToolUse) {
	fmt.Fprintf(t.w, "%s: %s(%s)\n", toolStyle.Render("tool"), b.Name, string(b.Input))
}

func (t *Terminal) ShowToolResult(b conversation.ToolResult) {
	if t.opts.HideToolResults {
		return
	}
	label := toolStyle.Render("result")
	if b.IsError {
		label = errorStyle.Render("result(error)")
	}
	fmt.Fprintf(t.w, "%s: %s\n", label, b.Flatten())
}
