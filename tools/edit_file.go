package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternlabs/tern/internal/workspace"
)

// EditFileInput is the structured input for edit_file.
type EditFileInput struct {
	Path   string `json:"path" jsonschema_description:"Target relative file path."`
	OldStr string `json:"old_str" jsonschema_description:"Exact text to replace; must be present when editing an existing file."`
	NewStr string `json:"new_str" jsonschema_description:"New text to write or replace old_str with."`
}

var editFileInputSchema = GenerateSchema[EditFileInput]()

// EditFileTool creates or modifies workspace text files by exact string
// replacement.
type EditFileTool struct{}

func (EditFileTool) Definition() Definition {
	return Definition{
		Name: "edit_file",
		Description: `Create or modify a text file addressed by a relative path within the workspace.

When old_str is empty and the file doesn't exist, a new file is created with new_str as its content.

When editing an existing file, all occurrences of old_str are replaced with new_str; old_str and new_str must be different.
`,
		InputSchema: editFileInputSchema,
	}
}

func (EditFileTool) Execute(ctx context.Context, input json.RawMessage) (Result, error) {
	var in EditFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, err
	}

	if in.Path == "" || in.OldStr == in.NewStr {
		return Result{}, fmt.Errorf("invalid edit parameters")
	}

	oldContent, readErr := workspace.ReadFile(in.Path)
	if readErr != nil {
		// Missing file plus empty old_str means create.
		if in.OldStr == "" {
			if err := workspace.WriteFile(in.Path, in.NewStr); err != nil {
				return Result{}, err
			}
			return TextResult(fmt.Sprintf("Successfully created file %s", in.Path), false), nil
		}
		return Result{}, readErr
	}

	if in.OldStr == "" {
		return Result{}, fmt.Errorf("old_str must be provided when editing an existing file")
	}

	newContent := strings.ReplaceAll(oldContent, in.OldStr, in.NewStr)
	if newContent == oldContent {
		return Result{}, fmt.Errorf("old_str not found in file")
	}

	if err := workspace.WriteFile(in.Path, newContent); err != nil {
		return Result{}, err
	}
	return TextResult("OK", false), nil
}
