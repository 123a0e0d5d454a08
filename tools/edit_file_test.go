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

func execEditFile(t *testing.T, in tools.EditFileInput) (tools.Result, error) {
	t.Helper()
	b, _ := json.Marshal(in)
	return tools.EditFileTool{}.Execute(context.Background(), b)
}

func TestEditFile_CreateNewFile(t *testing.T) {
	p := rel(t, "new.txt")

	res, err := execEditFile(t, tools.EditFileInput{Path: p, OldStr: "", NewStr: "content"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(flatten(res), "created") {
		t.Fatalf("unexpected message: %q", flatten(res))
	}

	got, err := os.ReadFile(filepath.Join(sharedDir, p))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "content" {
		t.Fatalf("file content = %q", string(got))
	}
}

func TestEditFile_ReplaceAllOccurrences(t *testing.T) {
	p := rel(t, "edit.txt")
	if err := os.MkdirAll(filepath.Join(sharedDir, t.Name()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sharedDir, p), []byte("foo bar foo"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execEditFile(t, tools.EditFileInput{Path: p, OldStr: "foo", NewStr: "baz"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, _ := os.ReadFile(filepath.Join(sharedDir, p))
	if string(got) != "baz bar baz" {
		t.Fatalf("file content = %q", string(got))
	}
}

func TestEditFile_OldStrNotFound_Error(t *testing.T) {
	p := rel(t, "miss.txt")
	if err := os.MkdirAll(filepath.Join(sharedDir, t.Name()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sharedDir, p), []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execEditFile(t, tools.EditFileInput{Path: p, OldStr: "zzz", NewStr: "yyy"}); err == nil {
		t.Fatal("expected error when old_str is absent")
	}
}

func TestEditFile_InvalidParams(t *testing.T) {
	if _, err := execEditFile(t, tools.EditFileInput{Path: "", OldStr: "a", NewStr: "b"}); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := execEditFile(t, tools.EditFileInput{Path: rel(t, "x.txt"), OldStr: "same", NewStr: "same"}); err == nil {
		t.Fatal("expected error for old_str == new_str")
	}
}

func TestEditFile_ExistingFileEmptyOldStr_Error(t *testing.T) {
	p := rel(t, "exists.txt")
	if err := os.MkdirAll(filepath.Join(sharedDir, t.Name()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sharedDir, p), []byte("body"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execEditFile(t, tools.EditFileInput{Path: p, OldStr: "", NewStr: "replacement"}); err == nil {
		t.Fatal("expected error for empty old_str on existing file")
	}
}
