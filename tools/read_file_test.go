package tools_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ternlabs/tern/tools"
)

func execReadFile(t *testing.T, in tools.ReadFileInput) (tools.Result, error) {
	t.Helper()
	b, _ := json.Marshal(in)
	return tools.ReadFileTool{}.Execute(context.Background(), b)
}

func TestReadFile_Basic(t *testing.T) {
	p := rel(t, "hello.txt")
	if err := os.MkdirAll(filepath.Join(sharedDir, t.Name()), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sharedDir, p), []byte("line1\nline2\n"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	res, err := execReadFile(t, tools.ReadFileInput{Path: p})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := flatten(res); got != "line1\nline2\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestReadFile_OffsetAndLimit_WithSentinel(t *testing.T) {
	p := rel(t, "paged.txt")
	if err := os.MkdirAll(filepath.Join(sharedDir, t.Name()), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	content := "a\nb\nc\nd\ne"
	if err := os.WriteFile(filepath.Join(sharedDir, p), []byte(content), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	res, err := execReadFile(t, tools.ReadFileInput{Path: p, Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := flatten(res)
	if !strings.HasPrefix(got, "b\nc") {
		t.Fatalf("window = %q, want to start with b\\nc", got)
	}
	if !strings.Contains(got, "truncated") {
		t.Fatalf("expected truncation sentinel, got %q", got)
	}
}

func TestReadFile_OverallCap_WithSentinel(t *testing.T) {
	p := rel(t, "big.txt")
	if err := os.MkdirAll(filepath.Join(sharedDir, t.Name()), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	// 10 lines of 2000 runes each stay under the per-line clamp but blow
	// past the overall cap after joining.
	line := strings.Repeat("x", 2000)
	content := strings.TrimSuffix(strings.Repeat(line+"\n", 10), "\n")
	if err := os.WriteFile(filepath.Join(sharedDir, p), []byte(content), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	res, err := execReadFile(t, tools.ReadFileInput{Path: p})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := flatten(res)
	if !strings.Contains(got, "truncated") {
		t.Fatalf("expected truncation sentinel, got tail %q", got[len(got)-80:])
	}
	// 12k cap + newline + sentinel is the most the result may carry.
	if max := 12_000 + 1 + len("-- truncated; use offset/limit to fetch more --\n"); len([]rune(got)) > max {
		t.Fatalf("result length %d exceeds overall cap budget %d", len([]rune(got)), max)
	}
}

func TestReadFile_Directory_Error(t *testing.T) {
	dir := rel(t)
	if err := os.MkdirAll(filepath.Join(sharedDir, dir), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if _, err := execReadFile(t, tools.ReadFileInput{Path: dir}); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestReadFile_EscapeAttempt_Error(t *testing.T) {
	if _, err := execReadFile(t, tools.ReadFileInput{Path: filepath.Join("..", "outside.txt")}); err == nil {
		t.Fatal("expected policy error for parent traversal")
	}
}
