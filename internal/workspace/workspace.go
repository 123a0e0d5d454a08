// Package workspace provides sandboxed file access for the built-in file
// tools. All paths are relative to a single workspace root.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// PolicyError is a machine-readable error body surfaced to the model as a
// tool result. Error renders compact single-line JSON to keep results small.
type PolicyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e PolicyError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

var (
	rootOnce sync.Once
	absRoot  string
	rootErr  error
)

// Root returns the absolute workspace root, initialised once on first use
// from TERN_WORKSPACE_ROOT (default: the current working directory).
func Root() (string, error) {
	rootOnce.Do(initRoot)
	return absRoot, rootErr
}

func initRoot() {
	root := os.Getenv("TERN_WORKSPACE_ROOT")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			rootErr = fmt.Errorf("getwd: %w", err)
			return
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		rootErr = fmt.Errorf("abs(root): %w", err)
		return
	}
	// Resolve symlinks so later boundary checks are reliable.
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	absRoot = root
}

// resetForTest clears the cached root so tests can point TERN_WORKSPACE_ROOT
// at a fresh directory.
func resetForTest() {
	rootOnce = sync.Once{}
	absRoot, rootErr = "", nil
}

// Resolve validates rel against the workspace root and returns the absolute
// path inside it. Absolute inputs, parent traversal, and symlink escapes are
// rejected, as are paths under .git/ and .tern/.
func Resolve(rel string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}

	if filepath.IsAbs(rel) {
		return "", PolicyError{Code: "ERR_PATH_OUTSIDE_WORKSPACE", Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(rel)
	if cleaned == "" {
		cleaned = "."
	}
	candidate := filepath.Join(root, cleaned)

	// Resolve symlinks where possible: the whole candidate if it exists,
	// otherwise its parent, so escapes through a symlinked parent are caught
	// even when the leaf does not exist yet.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else if parent, err := filepath.EvalSymlinks(filepath.Dir(candidate)); err == nil {
		candidate = filepath.Join(parent, filepath.Base(candidate))
	}

	relBack, err := filepath.Rel(root, candidate)
	if err != nil || relBack == ".." || strings.HasPrefix(relBack, ".."+string(filepath.Separator)) || filepath.IsAbs(relBack) {
		return "", PolicyError{Code: "ERR_PATH_OUTSIDE_WORKSPACE", Message: "requested path resolves outside the workspace root"}
	}

	slashed := filepath.ToSlash(relBack)
	for _, denied := range []string{".git", ".tern"} {
		if slashed == denied || strings.HasPrefix(slashed, denied+"/") {
			return "", PolicyError{Code: "ERR_DENIED_PATH", Message: fmt.Sprintf("access under %s/ is not allowed", denied)}
		}
	}
	return candidate, nil
}

// ReadFile reads a regular file addressed by a workspace-relative path.
func ReadFile(rel string) (string, error) {
	abs, err := Resolve(rel)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", PolicyError{Code: "ERR_NOT_A_FILE", Message: "path is a directory"}
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile writes content to a workspace-relative path, creating parent
// directories as needed.
func WriteFile(rel, content string) error {
	abs, err := Resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return err
	}
	return os.WriteFile(abs, []byte(content), 0o644)
}

// ListDir returns the non-recursive entry names of a workspace-relative
// directory, with directories suffixed by "/".
func ListDir(rel string) ([]string, error) {
	if rel == "" {
		rel = "."
	}
	abs, err := Resolve(rel)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}
