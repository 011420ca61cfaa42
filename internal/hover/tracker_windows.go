//go:build windows

package hover

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

type winTracker struct {
	getCursorPos *windows.LazyProc
}

type winPoint struct {
	X int32
	Y int32
}

// NewTracker returns the Windows cursor tracker, backed by
// user32 GetCursorPos.
func NewTracker() (CursorTracker, error) {
	user32 := windows.NewLazyDLL("user32.dll")
	return &winTracker{
		getCursorPos: user32.NewProc("GetCursorPos"),
	}, nil
}

func (t *winTracker) Position() (Point, error) {
	var p winPoint
	ret, _, _ := t.getCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if ret == 0 {
		return Point{}, fmt.Errorf("GetCursorPos failed")
	}
	return Point{X: float64(p.X), Y: float64(p.Y)}, nil
}

func (t *winTracker) Origin() Origin {
	return OriginTopLeft
}
