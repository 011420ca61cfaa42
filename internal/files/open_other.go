//go:build !darwin && !linux && !windows

package files

import "os/exec"

func openCommand(string) (*exec.Cmd, error) {
	return nil, unsupported("opening files")
}

func revealCommand(string) (*exec.Cmd, error) {
	return nil, unsupported("revealing files")
}
