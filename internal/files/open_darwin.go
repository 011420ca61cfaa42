//go:build darwin

package files

import "os/exec"

func openCommand(path string) (*exec.Cmd, error) {
	return exec.Command("open", path), nil
}

func revealCommand(path string) (*exec.Cmd, error) {
	return exec.Command("open", "-R", path), nil
}
