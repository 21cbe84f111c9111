// Package testutil stages throwaway tools directories with shell-script
// helpers for dispatcher tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable /bin/sh script under dir and returns its path.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// ToolsDir creates a temp tools directory holding one script per entry.
// Script bodies are plain /bin/sh, without the shebang line.
func ToolsDir(t *testing.T, scripts map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range scripts {
		WriteScript(t, dir, name, body)
	}
	return dir
}

// NonExecutable writes a script-shaped file without the executable bit.
func NonExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", name, err)
	}
	return path
}
