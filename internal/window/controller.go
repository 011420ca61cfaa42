// Package window applies geometry and interaction decisions to the
// actual overlay window: fixed-size layout, click-through toggling, and
// app activation.
package window

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"notch-overlay/internal/geometry"
	"notch-overlay/internal/state"
)

// Title is the overlay window title, also used by platform code to
// resolve the native window handle.
const Title = "Notch Overlay"

// defaultAccentColor is the system blue used when no preference can be
// read.
const defaultAccentColor = "#007AFF"

// Effects is the per-platform capability for the two window operations
// the runtime layer cannot do itself.
type Effects interface {
	// SetClickThrough toggles whether pointer events pass through the
	// window to whatever is beneath it. Safe to call redundantly.
	SetClickThrough(ignore bool) error
	// Activate brings the window and application to the foreground.
	Activate() error
}

// Controller mutates the overlay window. All operations are best-effort:
// a failed resize or focus is a UX degradation, not a correctness
// violation, so errors are logged and the caller may ignore them.
type Controller struct {
	provider geometry.Provider
	settings *state.SettingsStore
	effects  Effects

	mu         sync.Mutex
	ctx        context.Context
	lastIgnore *bool
}

// NewController builds a controller with the platform effects for this
// build.
func NewController(provider geometry.Provider, settings *state.SettingsStore) *Controller {
	return &Controller{
		provider: provider,
		settings: settings,
		effects:  newEffects(),
	}
}

// NewControllerWithEffects injects effects, used by tests.
func NewControllerWithEffects(provider geometry.Provider, settings *state.SettingsStore, effects Effects) *Controller {
	return &Controller{
		provider: provider,
		settings: settings,
		effects:  effects,
	}
}

// Bind attaches the Wails runtime context once the app has started.
// Before then, runtime-backed operations are skipped with a warning.
func (c *Controller) Bind(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
}

func (c *Controller) runtimeCtx() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}

// ApplyFixedSize computes the window footprint from current geometry and
// settings and applies it. Called at startup and after settings changes.
func (c *Controller) ApplyFixedSize() {
	ctx := c.runtimeCtx()
	if ctx == nil {
		logrus.Warn("window: fixed-size requested before runtime startup")
		return
	}

	layout := geometry.Compute(c.provider.Query(), c.settings.Get())
	logrus.Debugf("window: applying fixed size %vx%v at (%v, %v)",
		layout.Width, layout.Height, layout.X, layout.Y)

	wailsruntime.WindowSetSize(ctx, int(layout.Width), int(layout.Height))
	wailsruntime.WindowSetPosition(ctx, int(layout.X), int(layout.Y))
}

// PositionAtNotch centers the window horizontally over the notch at the
// top of the screen without resizing it. Legacy manual positioning.
func (c *Controller) PositionAtNotch() {
	ctx := c.runtimeCtx()
	if ctx == nil {
		return
	}

	geo := c.provider.Query()
	targetWidth := geo.NotchWidth
	if targetWidth <= 0 {
		w, _ := wailsruntime.WindowGetSize(ctx)
		targetWidth = float64(w)
	}

	x := (geo.ScreenWidth - targetWidth) / 2
	wailsruntime.WindowSetPosition(ctx, int(x), 0)
}

// FitToNotch resizes the window to the given size and re-centers it at
// the top of the screen. Legacy manual sizing; bypasses the fixed-size
// invariant.
func (c *Controller) FitToNotch(width, height float64) {
	ctx := c.runtimeCtx()
	if ctx == nil {
		return
	}

	geo := c.provider.Query()
	wailsruntime.WindowSetSize(ctx, int(width), int(height))
	wailsruntime.WindowSetPosition(ctx, int((geo.ScreenWidth-width)/2), 0)
}

// SetClickThrough toggles pointer-event pass-through. Redundant calls
// with the unchanged value are dropped before reaching the platform
// layer.
func (c *Controller) SetClickThrough(ignore bool) error {
	c.mu.Lock()
	if c.lastIgnore != nil && *c.lastIgnore == ignore {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.effects.SetClickThrough(ignore); err != nil {
		logrus.Warnf("window: click-through toggle failed: %v", err)
		return err
	}

	c.mu.Lock()
	v := ignore
	c.lastIgnore = &v
	c.mu.Unlock()
	return nil
}

// Activate brings the window and application to the foreground.
// Best-effort: failures are logged and swallowed.
func (c *Controller) Activate() error {
	if ctx := c.runtimeCtx(); ctx != nil {
		wailsruntime.WindowShow(ctx)
	}

	if err := c.effects.Activate(); err != nil {
		logrus.Warnf("window: activation failed: %v", err)
	}
	return nil
}
