//go:build windows

package files

import "os/exec"

func openCommand(path string) (*exec.Cmd, error) {
	return exec.Command("cmd", "/C", "start", "", path), nil
}

func revealCommand(path string) (*exec.Cmd, error) {
	return exec.Command("explorer", "/select,", path), nil
}
