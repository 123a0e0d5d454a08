package tools_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ternlabs/tern/tools"
)

func execListFiles(t *testing.T, in tools.ListFilesInput) ([]string, error) {
	t.Helper()
	b, _ := json.Marshal(in)
	res, err := tools.ListFilesTool{}.Execute(context.Background(), b)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal([]byte(flatten(res)), &names); err != nil {
		t.Fatalf("invalid JSON output: %v; raw=%q", err, flatten(res))
	}
	return names, nil
}

func TestListFiles_NonRecursive_Basic(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte(""), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "nested.txt"), []byte(""), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	got, err := execListFiles(t, tools.ListFilesInput{Path: rel(t)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	set := map[string]struct{}{}
	for _, x := range got {
		set[x] = struct{}{}
	}
	if _, ok := set["a.txt"]; !ok {
		t.Fatalf("missing a.txt; got %v", got)
	}
	if _, ok := set["sub/"]; !ok {
		t.Fatalf("missing sub/; got %v", got)
	}
	if _, ok := set["sub/nested.txt"]; ok {
		t.Fatalf("unexpected nested entry in non-recursive output; got %v", got)
	}
}

func TestListFiles_InvalidPath_Error(t *testing.T) {
	if _, err := execListFiles(t, tools.ListFilesInput{Path: rel(t, "does", "not", "exist")}); err == nil {
		t.Fatal("expected error for invalid path")
	}
}

func TestListFiles_SortingAndPaging(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"c.txt", "a.txt", "b.txt", "z.txt", "m.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(""), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := execListFiles(t, tools.ListFilesInput{Path: rel(t), Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0] != "a.txt" || got[1] != "b.txt" {
		t.Fatalf("page 1 = %v, want [a.txt b.txt]", got)
	}

	got, err = execListFiles(t, tools.ListFilesInput{Path: rel(t), Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0] != "z.txt" {
		t.Fatalf("page 3 = %v, want [z.txt]", got)
	}
}

func TestListFiles_OutOfRangePage_EmptyArray(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := execListFiles(t, tools.ListFilesInput{Path: rel(t), Page: 99})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty page, got %v", got)
	}
}
