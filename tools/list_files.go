package tools

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/ternlabs/tern/internal/workspace"
)

// ListFilesInput is the structured input for list_files.
type ListFilesInput struct {
	Path     string `json:"path,omitempty" jsonschema_description:"Optional relative path to list files from (defaults to the workspace root)."`
	Page     int    `json:"page,omitempty" jsonschema_description:"1-based page number (default 1)."`
	PageSize int    `json:"page_size,omitempty" jsonschema_description:"Page size (default 200)."`
}

const defaultListFilesPageSize = 200

var listFilesInputSchema = GenerateSchema[ListFilesInput]()

// ListFilesTool lists non-recursive directory entries under the workspace,
// sorted and paged so output is deterministic across filesystems.
type ListFilesTool struct{}

func (ListFilesTool) Definition() Definition {
	return Definition{
		Name:        "list_files",
		Description: "List names of files in a directory within the workspace (non-recursive). Directories are suffixed with /.",
		InputSchema: listFilesInputSchema,
	}
}

func (ListFilesTool) Execute(ctx context.Context, input json.RawMessage) (Result, error) {
	var in ListFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, err
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultListFilesPageSize
	}

	names, err := workspace.ListDir(in.Path)
	if err != nil {
		return Result{}, err
	}
	sort.Strings(names)

	start := (page - 1) * pageSize
	if start >= len(names) {
		return TextResult("[]", false), nil
	}
	end := start + pageSize
	if end > len(names) {
		end = len(names)
	}

	b, err := json.Marshal(names[start:end])
	if err != nil {
		return Result{}, err
	}
	return TextResult(string(b), false), nil
}
