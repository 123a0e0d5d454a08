// Package config loads optional process configuration: the system prompt
// file and the MCP server list.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// MCPServer names one remote tool-provider and how to reach it. Spec is a
// transport string: "stdio://<command>", an http(s) URL, or "sse://<host>".
type MCPServer struct {
	Name string `yaml:"name"`
	Spec string `yaml:"spec"`
}

// MCPConfig is the YAML file passed via --mcp-config.
type MCPConfig struct {
	Servers []MCPServer `yaml:"servers"`
}

// LoadMCPConfig parses the server list. A missing path is not an error; the
// registry simply carries no remote tools.
func LoadMCPConfig(path string) (*MCPConfig, error) {
	if path == "" {
		return &MCPConfig{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mcp config: %w", err)
	}
	var cfg MCPConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse mcp config: %w", err)
	}
	for _, s := range cfg.Servers {
		if s.Spec == "" {
			return nil, fmt.Errorf("mcp config: server %q has no spec", s.Name)
		}
	}
	return &cfg, nil
}

// LoadSystemPrompt reads the system prompt file. An empty path or an
// unreadable file silently falls back to an unset prompt.
func LoadSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// LoadPromptFile reads the first user turn from a file. Unlike the system
// prompt, an unreadable prompt file is a startup error.
func LoadPromptFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
