// Package tools defines tool contracts, the registry, and implementations.
//
// Includes:
//   - Tool: the capability interface {Definition, Execute}.
//   - Registry: name -> Tool lookup with error-result synthesis for unknown
//     names; built once before the loop, read-only after.
//   - GenerateSchema[T](): derive a JSON input schema from a Go struct.
//   - Built-ins: run_terminal_command, read_file, list_files, edit_file.
//   - RemoteTool: bridge to a remote tool-provider session via Provider.
package tools
