package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ternlabs/tern/internal/workspace"
)

// ReadFileInput is the structured input for read_file.
type ReadFileInput struct {
	Path   string `json:"path" jsonschema_description:"Relative file path within the workspace."`
	Offset int    `json:"offset,omitempty" jsonschema_description:"Line offset (0-based) to start reading from."`
	Limit  int    `json:"limit,omitempty" jsonschema_description:"Maximum lines to return from offset (default 200)."`
}

const defaultReadFileLimit = 200
const truncationSentinel = "-- truncated; use offset/limit to fetch more --\n"
const maxLineRunes = 2000     // per-line clamp
const overallRuneCap = 12_000 // overall cap after join

var readFileInputSchema = GenerateSchema[ReadFileInput]()

// ReadFileTool reads workspace files with deterministic pagination caps so
// tool results stay predictably small.
type ReadFileTool struct{}

func (ReadFileTool) Definition() Definition {
	return Definition{
		Name:        "read_file",
		Description: "Read the contents of a file addressed by a relative file path within the workspace. Directory paths and unsafe paths are rejected.",
		InputSchema: readFileInputSchema,
	}
}

func (ReadFileTool) Execute(ctx context.Context, input json.RawMessage) (Result, error) {
	var in ReadFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, err
	}

	content, err := workspace.ReadFile(in.Path)
	if err != nil {
		return Result{}, err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultReadFileLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	lines := strings.Split(content, "\n")
	if offset > len(lines) {
		offset = len(lines)
	}
	end := offset + limit
	if end > len(lines) {
		end = len(lines)
	}

	truncated := end < len(lines)
	for i := offset; i < end; i++ {
		if r := []rune(lines[i]); len(r) > maxLineRunes {
			lines[i] = string(r[:maxLineRunes])
			truncated = true
		}
	}

	out := strings.Join(lines[offset:end], "\n")
	// Overall cap after join so the result stays bounded even when every
	// selected line is at the per-line maximum.
	if r := []rune(out); len(r) > overallRuneCap {
		out = string(r[:overallRuneCap])
		truncated = true
	}
	if truncated {
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += truncationSentinel
	}
	return TextResult(out, false), nil
}
