// Package files holds the file tray helpers: opening and revealing
// paths with the platform file manager and resolving dropped paths.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Open launches the file with its default application.
func Open(path string) error {
	cmd, err := openCommand(path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Reveal shows the file in the platform file manager.
func Reveal(path string) error {
	cmd, err := revealCommand(path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Resolve canonicalizes a dropped path, following symlinks.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}

// OnDrop logs a file dropped onto the tray.
func OnDrop(path string) {
	logrus.Debugf("files: dropped %s", path)
}

// SaveDragIcon writes drag image bytes to a temp file and returns the
// path, so the frontend can hand it to the OS drag session.
func SaveDragIcon(iconData []byte) (string, error) {
	path := filepath.Join(os.TempDir(), "temp_drag_icon.png")
	if err := os.WriteFile(path, iconData, 0o644); err != nil {
		return "", fmt.Errorf("save drag icon: %w", err)
	}
	return path, nil
}

func unsupported(action string) error {
	return fmt.Errorf("%s not supported on %s", action, runtime.GOOS)
}
