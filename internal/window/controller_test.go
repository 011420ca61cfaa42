package window

import (
	"errors"
	"testing"

	"notch-overlay/internal/geometry"
	"notch-overlay/internal/state"
)

type recordingEffects struct {
	clickThrough []bool
	activations  int
	failNext     bool
}

func (r *recordingEffects) SetClickThrough(ignore bool) error {
	if r.failNext {
		r.failNext = false
		return errors.New("window handle busy")
	}
	r.clickThrough = append(r.clickThrough, ignore)
	return nil
}

func (r *recordingEffects) Activate() error {
	r.activations++
	return nil
}

func newTestController(effects Effects) *Controller {
	provider := geometry.StaticProvider{Geometry: geometry.DefaultGeometry()}
	return NewControllerWithEffects(provider, state.NewSettingsStore(nil), effects)
}

func TestSetClickThrough_Idempotent(t *testing.T) {
	effects := &recordingEffects{}
	c := newTestController(effects)

	if err := c.SetClickThrough(true); err != nil {
		t.Fatalf("SetClickThrough failed: %v", err)
	}
	if err := c.SetClickThrough(true); err != nil {
		t.Fatalf("redundant SetClickThrough failed: %v", err)
	}

	if len(effects.clickThrough) != 1 {
		t.Errorf("platform calls = %d; want 1 for redundant toggles", len(effects.clickThrough))
	}
}

func TestSetClickThrough_TogglesReachPlatform(t *testing.T) {
	effects := &recordingEffects{}
	c := newTestController(effects)

	c.SetClickThrough(true)
	c.SetClickThrough(false)
	c.SetClickThrough(true)

	want := []bool{true, false, true}
	if len(effects.clickThrough) != len(want) {
		t.Fatalf("platform calls = %v; want %v", effects.clickThrough, want)
	}
	for i, v := range want {
		if effects.clickThrough[i] != v {
			t.Errorf("call %d = %v; want %v", i, effects.clickThrough[i], v)
		}
	}
}

func TestSetClickThrough_RetriesAfterFailure(t *testing.T) {
	effects := &recordingEffects{failNext: true}
	c := newTestController(effects)

	if err := c.SetClickThrough(true); err == nil {
		t.Fatal("expected error from failing platform call")
	}

	// The failed toggle must not be remembered as applied.
	if err := c.SetClickThrough(true); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(effects.clickThrough) != 1 {
		t.Errorf("platform calls = %d; want 1 after retry", len(effects.clickThrough))
	}
}

func TestActivate_SwallowsPlatformFailure(t *testing.T) {
	c := newTestController(failingEffects{})

	// Activation is best-effort; the error is logged, not returned.
	if err := c.Activate(); err != nil {
		t.Errorf("Activate returned %v; want nil", err)
	}
}

func TestApplyFixedSize_BeforeStartupIsSafe(t *testing.T) {
	c := newTestController(&recordingEffects{})

	// No runtime context bound yet; the call must be a no-op rather
	// than a panic.
	c.ApplyFixedSize()
	c.PositionAtNotch()
	c.FitToNotch(400, 200)
}

type failingEffects struct{}

func (failingEffects) SetClickThrough(bool) error { return errors.New("no window") }
func (failingEffects) Activate() error            { return errors.New("no window") }
