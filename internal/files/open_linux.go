//go:build linux

package files

import (
	"os/exec"
	"path/filepath"
)

func openCommand(path string) (*exec.Cmd, error) {
	return exec.Command("xdg-open", path), nil
}

// Revealing a single file is not portable across Linux file managers,
// so open the containing directory instead.
func revealCommand(path string) (*exec.Cmd, error) {
	return exec.Command("xdg-open", filepath.Dir(path)), nil
}
