//go:build windows

package main

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"notch-overlay/internal/window"
)

// GetActiveWindow returns the title of the currently active window
func (a *App) GetActiveWindow() (string, error) {
	var (
		user32                  = windows.NewLazyDLL("user32.dll")
		procGetWindowText       = user32.NewProc("GetWindowTextW")
		procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	)

	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", fmt.Errorf("no foreground window found")
	}

	titleBuf := make([]uint16, 256)
	ret, _, _ := procGetWindowText.Call(
		hwnd,
		uintptr(unsafe.Pointer(&titleBuf[0])),
		uintptr(len(titleBuf)),
	)

	if ret == 0 {
		return "", fmt.Errorf("failed to get window title")
	}

	return windows.UTF16ToString(titleBuf), nil
}

// IsOverlayFocused checks if the overlay window is currently focused
func (a *App) IsOverlayFocused() bool {
	activeWindow, err := a.GetActiveWindow()
	if err != nil {
		return false
	}
	return activeWindow == window.Title
}
