//go:build windows

package window

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows constants for extended window styles
const (
	_GWL_EXSTYLE       int32 = -20
	_WS_EX_TRANSPARENT int32 = 0x00000020
	_WS_EX_LAYERED     int32 = 0x00080000

	_SW_RESTORE = 9
)

type winEffects struct {
	user32             *windows.LazyDLL
	procFindWindowW    *windows.LazyProc
	procGetWindowLongW *windows.LazyProc
	procSetWindowLongW *windows.LazyProc
	procSetForeground  *windows.LazyProc
	procShowWindow     *windows.LazyProc

	hwnd uintptr
}

func newEffects() Effects {
	user32 := windows.NewLazyDLL("user32.dll")
	return &winEffects{
		user32:             user32,
		procFindWindowW:    user32.NewProc("FindWindowW"),
		procGetWindowLongW: user32.NewProc("GetWindowLongW"),
		procSetWindowLongW: user32.NewProc("SetWindowLongW"),
		procSetForeground:  user32.NewProc("SetForegroundWindow"),
		procShowWindow:     user32.NewProc("ShowWindow"),
	}
}

// resolveHWND finds and caches the overlay window handle by its title.
func (e *winEffects) resolveHWND() uintptr {
	if e.hwnd != 0 {
		return e.hwnd
	}

	title, err := windows.UTF16PtrFromString(Title)
	if err != nil {
		return 0
	}
	hwnd, _, _ := e.procFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd != 0 {
		e.hwnd = hwnd
	}
	return e.hwnd
}

// SetClickThrough toggles WS_EX_TRANSPARENT so mouse events pass through
// the window.
func (e *winEffects) SetClickThrough(ignore bool) error {
	hwnd := e.resolveHWND()
	if hwnd == 0 {
		return fmt.Errorf("overlay window handle not found")
	}

	idx := _GWL_EXSTYLE
	exStyle, _, _ := e.procGetWindowLongW.Call(hwnd, uintptr(idx))
	newStyle := int32(exStyle) | _WS_EX_LAYERED
	if ignore {
		newStyle = newStyle | _WS_EX_TRANSPARENT
	} else {
		newStyle = newStyle &^ _WS_EX_TRANSPARENT
	}

	e.procSetWindowLongW.Call(hwnd, uintptr(idx), uintptr(newStyle))
	return nil
}

// Activate restores the window if minimized and brings it to the
// foreground.
func (e *winEffects) Activate() error {
	hwnd := e.resolveHWND()
	if hwnd == 0 {
		return fmt.Errorf("overlay window handle not found")
	}

	e.procShowWindow.Call(hwnd, uintptr(_SW_RESTORE))
	ret, _, _ := e.procSetForeground.Call(hwnd)
	if ret == 0 {
		return fmt.Errorf("SetForegroundWindow refused")
	}
	return nil
}
