// Package hover runs the overlay's interaction engine: a fixed-cadence
// poll loop that samples the global cursor, hit-tests it against the
// overlay's interactive region with hysteresis, and toggles click-through
// and focus on state transitions.
package hover

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"notch-overlay/internal/geometry"
	"notch-overlay/internal/state"
)

// Event names emitted to the UI layer, at most once per transition.
const (
	EventEntered = "mouse-entered-notch"
	EventExited  = "mouse-exited-notch"
)

// WindowEffects applies hover decisions to the overlay window. Both
// operations are fire-and-forget from the loop's point of view: errors
// are logged and never affect its control flow.
type WindowEffects interface {
	SetClickThrough(ignore bool) error
	Activate() error
}

// Notifier delivers zone-transition events to the UI layer.
type Notifier interface {
	Emit(event string, data ...interface{})
}

// Config tunes the detector. All fields have working defaults; the enter
// padding must stay strictly below the exit padding for the hysteresis to
// suppress flicker at the boundary.
type Config struct {
	PollInterval time.Duration

	EnterPadding float64
	ExitPadding  float64

	// Broad pre-filter bounds around the fallback zone. When the cursor
	// is outside them and the state is Outside, the tick does no further
	// work.
	BroadPaddingX float64
	BroadLimitY   float64

	// Tighter pre-filter bounds used in non-notch mode.
	NonNotchBroadPaddingX float64
	NonNotchBroadLimitY   float64

	// ScreenRefreshTicks is how many ticks pass between re-queries of
	// the screen geometry; re-querying every tick would dominate the
	// loop's cost.
	ScreenRefreshTicks uint16
}

// DefaultConfig returns the tuned constants used in production.
func DefaultConfig() Config {
	return Config{
		PollInterval:          20 * time.Millisecond,
		EnterPadding:          20,
		ExitPadding:           30,
		BroadPaddingX:         300,
		BroadLimitY:           250,
		NonNotchBroadPaddingX: 60,
		NonNotchBroadLimitY:   50,
		ScreenRefreshTicks:    500,
	}
}

// Detector is the hysteresis-based inside/outside state machine. One
// Detector runs per process on a dedicated goroutine for the lifetime of
// the process; it is never joined or cancelled.
type Detector struct {
	cfg      Config
	settings *state.SettingsStore
	bounds   *state.BoundsStore
	provider geometry.Provider
	tracker  CursorTracker
	window   WindowEffects
	notify   Notifier

	inside atomic.Bool

	// Loop-local state, touched only by the detector goroutine (and by
	// tests driving ticks synchronously).
	geo            geometry.ScreenGeometry
	refreshCounter uint16
}

// New wires a detector. tracker may be nil on platforms without global
// cursor sampling; Start then logs and disables the loop.
func New(cfg Config, settings *state.SettingsStore, bounds *state.BoundsStore, provider geometry.Provider, tracker CursorTracker, window WindowEffects, notify Notifier) *Detector {
	d := &Detector{
		cfg:      cfg,
		settings: settings,
		bounds:   bounds,
		provider: provider,
		tracker:  tracker,
		window:   window,
		notify:   notify,
	}
	d.geo = provider.Query()
	return d
}

// Inside reports the current hover state.
func (d *Detector) Inside() bool {
	return d.inside.Load()
}

// Start launches the poll loop on its own goroutine. The loop runs until
// process exit; there is no stop.
func (d *Detector) Start() {
	if d.tracker == nil {
		logrus.Info("hover: global cursor tracking not available on this platform; hover detection disabled")
		return
	}

	logrus.Debugf("hover: starting poll loop, interval=%v", d.cfg.PollInterval)
	go d.loop()
}

func (d *Detector) loop() {
	for {
		d.tick()
		time.Sleep(d.cfg.PollInterval)
	}
}

// tick samples the cursor, normalizes it to a top-left origin, and runs
// one step of the state machine.
func (d *Detector) tick() {
	pos, err := d.tracker.Position()
	if err != nil {
		return
	}

	d.refreshCounter++
	if d.refreshCounter%d.cfg.ScreenRefreshTicks == 0 {
		d.geo = d.provider.Query()
	}

	x, y := pos.X, pos.Y
	if d.tracker.Origin() == OriginBottomLeft {
		y = d.geo.ScreenHeight - pos.Y
	}

	d.step(x, y)
}

// step evaluates one normalized cursor sample. y is distance from the top
// of the screen.
func (d *Detector) step(x, y float64) {
	settings := d.settings.Get()
	geo := d.geo

	effNotchWidth := geometry.EffectiveNotchWidth(geo, settings)
	fallbackXStart := (geo.ScreenWidth - effNotchWidth) / 2
	fallbackXEnd := fallbackXStart + effNotchWidth
	fallbackYEnd := geo.NotchHeight
	if settings.NonNotchMode {
		fallbackYEnd = 1.0
	}

	wasInside := d.inside.Load()

	// Broad pre-filter: skip precise hit-testing while the cursor is
	// nowhere near the overlay and we are not waiting for an exit.
	broadPadX, broadLimY := d.cfg.BroadPaddingX, d.cfg.BroadLimitY
	if settings.NonNotchMode {
		broadPadX, broadLimY = d.cfg.NonNotchBroadPaddingX, d.cfg.NonNotchBroadLimitY
	}
	inBroadZone := x >= fallbackXStart-broadPadX &&
		x <= fallbackXEnd+broadPadX &&
		y <= broadLimY
	if !inBroadZone && !wasInside {
		return
	}

	padding := d.cfg.EnterPadding
	if wasInside {
		padding = d.cfg.ExitPadding
	}

	var inArea bool
	if bounds, ok := d.bounds.TryGet(); ok {
		// UI bounds are window-local; translate by the window's computed
		// x-position. The window is top-anchored, so y needs no shift.
		layout := geometry.Compute(geo, settings)
		sx := layout.X + bounds.X
		sy := bounds.Y
		inArea = x >= sx-padding &&
			x <= sx+bounds.Width+padding &&
			y >= sy-padding &&
			y <= sy+bounds.Height+padding
	} else {
		inArea = x >= fallbackXStart-padding &&
			x <= fallbackXEnd+padding &&
			y >= -padding &&
			y <= fallbackYEnd+padding
	}

	switch {
	case inArea && !wasInside:
		d.inside.Store(true)
		logrus.Debugf("hover: entered at (%.0f, %.0f)", x, y)

		// Event first, for UI responsiveness.
		d.notify.Emit(EventEntered)
		if err := d.window.SetClickThrough(false); err != nil {
			logrus.Warnf("hover: disabling click-through failed: %v", err)
		}
		if err := d.window.Activate(); err != nil {
			logrus.Warnf("hover: window activation failed: %v", err)
		}

	case !inArea && wasInside:
		d.inside.Store(false)
		logrus.Debugf("hover: exited at (%.0f, %.0f)", x, y)

		d.notify.Emit(EventExited)
		if err := d.window.SetClickThrough(true); err != nil {
			logrus.Warnf("hover: enabling click-through failed: %v", err)
		}
	}
}
