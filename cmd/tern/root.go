package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/ternlabs/tern/internal/config"
	"github.com/ternlabs/tern/internal/display"
	"github.com/ternlabs/tern/internal/input"
	"github.com/ternlabs/tern/internal/mcp"
	"github.com/ternlabs/tern/internal/orchestrator"
	"github.com/ternlabs/tern/internal/provider"
	"github.com/ternlabs/tern/tools"
)

type rootFlags struct {
	promptFile       string
	systemPromptFile string
	mcpConfig        string
	model            string
	hideToolResults  bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "tern",
		Short: "Chat with a language model that can run local and remote tools",
		Long: `tern drives a multi-turn conversation with the Anthropic Messages API.
The model may request tool executions mid-conversation; tern runs them and
feeds the results back so the model can continue.

Built-in tools: run_terminal_command, read_file, list_files, edit_file.
Remote tools are bridged from MCP servers listed in --mcp-config, e.g.:

  servers:
    - name: files
      spec: stdio://mcp-server-files --root .
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.promptFile, "prompt-file", "", "read the first user turn from this file, then continue interactively")
	cmd.Flags().StringVar(&flags.systemPromptFile, "system-prompt-file", "", "load the system prompt from this file (silently unset if unreadable)")
	cmd.Flags().StringVar(&flags.mcpConfig, "mcp-config", "", "YAML file listing MCP tool servers to bridge")
	cmd.Flags().StringVar(&flags.model, "model", string(provider.DefaultModel), "model to converse with")
	cmd.Flags().BoolVar(&flags.hideToolResults, "hide-tool-results", false, "suppress display of tool results (conversation content is unaffected)")
	return cmd
}

func run(ctx context.Context, flags rootFlags) error {
	// Basic env check (the SDK also reads the API key).
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return fmt.Errorf("missing ANTHROPIC_API_KEY; export it before running")
	}

	registry := tools.NewRegistry(
		&tools.ShellTool{MergeStderr: true},
		tools.ReadFileTool{},
		tools.ListFilesTool{},
		tools.EditFileTool{},
	)

	mcpCfg, err := config.LoadMCPConfig(flags.mcpConfig)
	if err != nil {
		return err
	}
	for _, server := range mcpCfg.Servers {
		client := mcp.NewClient(server.Spec)
		defer client.Close()
		remote, err := tools.RemoteTools(ctx, client)
		if err != nil {
			return fmt.Errorf("mcp server %q: %w", server.Name, err)
		}
		for _, t := range remote {
			registry.Register(t)
		}
	}

	var src orchestrator.InputSource = input.NewReader(os.Stdin, os.Stdout, display.UserPrompt())
	if flags.promptFile != "" {
		first, err := config.LoadPromptFile(flags.promptFile)
		if err != nil {
			return err
		}
		src = input.WithPreface(first, src)
	}

	presenter := display.NewTerminal(os.Stdout, display.Options{HideToolResults: flags.hideToolResults})

	o := orchestrator.New(provider.NewClient(), registry, presenter, src, orchestrator.Options{
		Model:        anthropic.Model(flags.model),
		SystemPrompt: config.LoadSystemPrompt(flags.systemPromptFile),
	})

	fmt.Println("Chat with the agent (Ctrl-C to quit)")
	err = o.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Println("\nExiting...")
		return nil
	case errors.Is(err, orchestrator.ErrInputClosed):
		// Exhausted input ends the session; nothing is persisted.
		return nil
	default:
		return err
	}
}
