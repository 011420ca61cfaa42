package hover

import (
	"testing"

	"notch-overlay/internal/geometry"
	"notch-overlay/internal/state"
)

// fakeEffects records window side effects.
type fakeEffects struct {
	clickThrough []bool
	activations  int
}

func (f *fakeEffects) SetClickThrough(ignore bool) error {
	f.clickThrough = append(f.clickThrough, ignore)
	return nil
}

func (f *fakeEffects) Activate() error {
	f.activations++
	return nil
}

// fakeNotifier records emitted events.
type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Emit(event string, data ...interface{}) {
	f.events = append(f.events, event)
}

func (f *fakeNotifier) count(event string) int {
	n := 0
	for _, e := range f.events {
		if e == event {
			n++
		}
	}
	return n
}

// countingProvider counts geometry queries.
type countingProvider struct {
	geo     geometry.ScreenGeometry
	queries int
}

func (p *countingProvider) Query() geometry.ScreenGeometry {
	p.queries++
	return p.geo
}

// stubTracker replays a fixed position.
type stubTracker struct {
	pos    Point
	origin Origin
}

func (s *stubTracker) Position() (Point, error) { return s.pos, nil }
func (s *stubTracker) Origin() Origin           { return s.origin }

// testGeo is sized so that Compute with ExtraWidth=400 puts the window at
// x=500: width = 220 + 160 + 400 = 780, x = (1780 - 780) / 2 = 500.
func testGeo() geometry.ScreenGeometry {
	return geometry.ScreenGeometry{
		ScreenWidth:  1780,
		ScreenHeight: 1200,
		NotchWidth:   220,
		NotchHeight:  40,
		HasNotch:     true,
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.EnterPadding = 3
	cfg.ExitPadding = 8
	return cfg
}

func newTestDetector(cfg Config, tracker CursorTracker) (*Detector, *fakeEffects, *fakeNotifier, *state.BoundsStore, *state.SettingsStore) {
	settings := state.NewSettingsStore(nil)
	bounds := state.NewBoundsStore()
	effects := &fakeEffects{}
	notifier := &fakeNotifier{}
	provider := geometry.StaticProvider{Geometry: testGeo()}

	d := New(cfg, settings, bounds, provider, tracker, effects, notifier)
	return d, effects, notifier, bounds, settings
}

func TestDefaultConfig_EnterBelowExit(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.EnterPadding >= cfg.ExitPadding {
		t.Errorf("EnterPadding %v must be strictly below ExitPadding %v",
			cfg.EnterPadding, cfg.ExitPadding)
	}
}

func TestStep_EnterViaUIBounds(t *testing.T) {
	d, effects, notifier, bounds, _ := newTestDetector(testConfig(), nil)
	bounds.Set(state.UIBounds{X: 0, Y: 0, Width: 100, Height: 40})

	// Cursor at (550, 10): inside the bounds translated to [500, 600],
	// enter padding 3.
	d.step(550, 10)

	if !d.Inside() {
		t.Fatal("expected transition to Inside")
	}
	if got := notifier.count(EventEntered); got != 1 {
		t.Errorf("entered events = %d; want 1", got)
	}
	if len(effects.clickThrough) != 1 || effects.clickThrough[0] != false {
		t.Errorf("clickThrough calls = %v; want [false]", effects.clickThrough)
	}
	if effects.activations != 1 {
		t.Errorf("activations = %d; want 1", effects.activations)
	}
}

func TestStep_ExitHysteresisHoldsInsideEdge(t *testing.T) {
	d, _, notifier, bounds, _ := newTestDetector(testConfig(), nil)
	bounds.Set(state.UIBounds{X: 0, Y: 0, Width: 100, Height: 40})

	d.step(550, 10) // enter

	// 5px outside the left edge: within the exit padding of 8, so the
	// state stays sticky.
	d.step(495, 10)
	if !d.Inside() {
		t.Fatal("cursor within exit padding must not exit")
	}
	if got := notifier.count(EventExited); got != 0 {
		t.Errorf("exited events = %d; want 0", got)
	}
}

func TestStep_ExitBeyondPadding(t *testing.T) {
	d, effects, notifier, bounds, _ := newTestDetector(testConfig(), nil)
	bounds.Set(state.UIBounds{X: 0, Y: 0, Width: 100, Height: 40})

	d.step(550, 10) // enter

	// 9px outside the left edge: beyond the exit padding of 8.
	d.step(491, 10)
	if d.Inside() {
		t.Fatal("expected transition to Outside")
	}
	if got := notifier.count(EventExited); got != 1 {
		t.Errorf("exited events = %d; want 1", got)
	}
	// Click-through re-enabled on exit.
	last := effects.clickThrough[len(effects.clickThrough)-1]
	if last != true {
		t.Errorf("final clickThrough = %v; want true", last)
	}
}

func TestStep_NoFlickerWithinHysteresisGap(t *testing.T) {
	d, _, notifier, _, _ := newTestDetector(testConfig(), nil)

	// No UI bounds: the fallback zone starts at x = (1780-220)/2 = 780.
	// Enter boundary is 777, exit boundary is 772. Oscillate between a
	// point past the enter boundary and a point inside the gap.
	d.step(700, 10) // well outside
	trajectory := []float64{778, 775, 778, 775, 778, 775}
	for _, x := range trajectory {
		d.step(x, 10)
	}

	if got := notifier.count(EventEntered); got != 1 {
		t.Errorf("entered events = %d; want exactly 1", got)
	}
	if got := notifier.count(EventExited); got != 0 {
		t.Errorf("exited events = %d; want 0 while inside the gap", got)
	}

	// Leaving past the exit boundary produces the single exit.
	d.step(770, 10)
	if got := notifier.count(EventExited); got != 1 {
		t.Errorf("exited events = %d; want exactly 1", got)
	}
}

func TestStep_FallbackZoneUsedWithoutBounds(t *testing.T) {
	d, _, notifier, _, _ := newTestDetector(testConfig(), nil)

	// Fallback zone spans x [780, 1000], y [0, 40].
	d.step(890, 20)
	if !d.Inside() {
		t.Fatal("expected enter via fallback zone")
	}

	d.step(890, 60) // below the zone, beyond exit padding
	if d.Inside() {
		t.Fatal("expected exit below the fallback zone")
	}
	if notifier.count(EventEntered) != 1 || notifier.count(EventExited) != 1 {
		t.Errorf("events = %v; want one enter and one exit", notifier.events)
	}
}

func TestStep_NonNotchModeCollapsesFallback(t *testing.T) {
	d, _, _, _, settings := newTestDetector(testConfig(), nil)
	settings.Restore(state.WindowSettings{ExtraWidth: 400, ExtraHeight: 200, NonNotchMode: true})

	// Effective notch width is 0: the zone degenerates to a sliver at
	// x = 890 with vertical extent 1, regardless of the 40px notch.
	d.step(890, 20)
	if d.Inside() {
		t.Error("cursor 20px down must not enter the collapsed zone")
	}

	d.step(890, 0.5)
	if !d.Inside() {
		t.Error("cursor on the collapsed sliver should enter")
	}
}

func TestStep_BroadPrefilterDoesNotBlockExit(t *testing.T) {
	d, _, notifier, bounds, _ := newTestDetector(testConfig(), nil)
	bounds.Set(state.UIBounds{X: 0, Y: 0, Width: 100, Height: 40})

	d.step(550, 10) // enter

	// Far outside the broad pre-filter region; the exit path must still
	// run because the state is Inside.
	d.step(10, 900)
	if d.Inside() {
		t.Error("expected exit even when far outside the broad zone")
	}
	if got := notifier.count(EventExited); got != 1 {
		t.Errorf("exited events = %d; want 1", got)
	}
}

func TestTick_BottomLeftOriginFlipsY(t *testing.T) {
	tracker := &stubTracker{origin: OriginBottomLeft}
	d, _, notifier, bounds, _ := newTestDetector(testConfig(), tracker)
	bounds.Set(state.UIBounds{X: 0, Y: 0, Width: 100, Height: 40})

	// Native y=1190 with a 1200px screen normalizes to 10 from the top.
	tracker.pos = Point{X: 550, Y: 1190}
	d.tick()

	if !d.Inside() {
		t.Fatal("expected enter after y-flip normalization")
	}
	if got := notifier.count(EventEntered); got != 1 {
		t.Errorf("entered events = %d; want 1", got)
	}
}

func TestTick_PeriodicScreenRefresh(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenRefreshTicks = 2

	settings := state.NewSettingsStore(nil)
	bounds := state.NewBoundsStore()
	provider := &countingProvider{geo: testGeo()}
	tracker := &stubTracker{pos: Point{X: 0, Y: 900}, origin: OriginTopLeft}

	d := New(cfg, settings, bounds, provider, tracker, &fakeEffects{}, &fakeNotifier{})
	initial := provider.queries // one query at construction

	for i := 0; i < 4; i++ {
		d.tick()
	}

	if got := provider.queries - initial; got != 2 {
		t.Errorf("geometry refreshes over 4 ticks = %d; want 2", got)
	}
}

func TestStep_IdempotentWhileInside(t *testing.T) {
	d, effects, notifier, bounds, _ := newTestDetector(testConfig(), nil)
	bounds.Set(state.UIBounds{X: 0, Y: 0, Width: 100, Height: 40})

	for i := 0; i < 10; i++ {
		d.step(550, 10)
	}

	// One transition, one set of side effects.
	if got := notifier.count(EventEntered); got != 1 {
		t.Errorf("entered events = %d; want 1", got)
	}
	if len(effects.clickThrough) != 1 {
		t.Errorf("clickThrough calls = %d; want 1", len(effects.clickThrough))
	}
	if effects.activations != 1 {
		t.Errorf("activations = %d; want 1", effects.activations)
	}
}
