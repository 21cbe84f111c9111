package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
)

// ToolsDirName is the helper directory expected next to the executable.
const ToolsDirName = "tools"

// ExecutableDir returns the directory holding the running binary, with
// symlinks resolved so the tools directory is found next to the real file.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
