package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
)

// ShellInput is the structured input for run_terminal_command.
type ShellInput struct {
	Cmd  string   `json:"cmd" jsonschema_description:"Executable to run."`
	Args []string `json:"args,omitempty" jsonschema_description:"Arguments passed to cmd, one element per argument."`
}

var shellInputSchema = GenerateSchema[ShellInput]()

// ShellTool runs an external command and returns its standard output.
// Execution is synchronous and unbounded: the loop waits for the process,
// and no timeout is enforced at this layer.
type ShellTool struct {
	// MergeStderr folds standard error into the captured output. Set at
	// construction time, immutable afterwards.
	MergeStderr bool
}

func (t *ShellTool) Definition() Definition {
	return Definition{
		Name:        "run_terminal_command",
		Description: "Run an external command with arguments and return its standard output. A non-zero exit status is reported as an error result.",
		InputSchema: shellInputSchema,
	}
}

func (t *ShellTool) Execute(ctx context.Context, input json.RawMessage) (Result, error) {
	var in ShellInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, err
	}
	if in.Cmd == "" {
		return Result{}, fmt.Errorf("cmd is required")
	}

	cmd := exec.CommandContext(ctx, in.Cmd, in.Args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if t.MergeStderr {
		cmd.Stderr = &out
	}

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The process ran and failed; report output plus status so the
			// model can adapt.
			text := out.String()
			if text != "" {
				text += "\n"
			}
			return TextResult(text+err.Error(), true), nil
		}
		return Result{}, fmt.Errorf("run %s: %w", in.Cmd, err)
	}
	return TextResult(out.String(), false), nil
}
