//go:build windows

package geometry

import (
	"golang.org/x/sys/windows"
)

const (
	_SM_CXSCREEN = 0
	_SM_CYSCREEN = 1
)

type windowsProvider struct {
	getSystemMetrics *windows.LazyProc
}

// NewProvider returns the Windows geometry provider, backed by
// user32 GetSystemMetrics. Windows hardware has no notch, so the
// geometry always carries the fallback hit-zone footprint.
func NewProvider() Provider {
	user32 := windows.NewLazyDLL("user32.dll")
	return &windowsProvider{
		getSystemMetrics: user32.NewProc("GetSystemMetrics"),
	}
}

func (p *windowsProvider) Query() ScreenGeometry {
	w, _, _ := p.getSystemMetrics.Call(uintptr(_SM_CXSCREEN))
	h, _, _ := p.getSystemMetrics.Call(uintptr(_SM_CYSCREEN))

	if w == 0 || h == 0 {
		return DefaultGeometry()
	}
	return Approximate(float64(w), float64(h), 0)
}
