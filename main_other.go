//go:build !windows

package main

import "fmt"

// GetActiveWindow returns the title of the currently active window (stub for non-Windows)
func (a *App) GetActiveWindow() (string, error) {
	return "", fmt.Errorf("GetActiveWindow not supported on this platform")
}

// IsOverlayFocused checks if the overlay window is currently focused (stub for non-Windows)
func (a *App) IsOverlayFocused() bool {
	return false
}
