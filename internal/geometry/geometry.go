// Package geometry knows how big the screen is, how big the notch is, and
// where the overlay window belongs. Platform specifics live behind the
// Provider interface; everything downstream of it is pure arithmetic.
package geometry

// ScreenGeometry is a normalized snapshot of the primary display. Derived
// per query, never persisted.
type ScreenGeometry struct {
	ScreenWidth  float64 `json:"screen_width"`
	ScreenHeight float64 `json:"screen_height"`
	NotchHeight  float64 `json:"notch_height"`
	NotchWidth   float64 `json:"notch_width"`
	// HasNotch reports whether the platform actually reported a top inset.
	// NotchWidth/NotchHeight stay non-zero even without one (fallback
	// constants) so the hover fallback zone keeps a stable default size.
	HasNotch bool `json:"has_notch"`
}

// NotchInfo is the snapshot handed to the frontend.
type NotchInfo struct {
	HasNotch      bool    `json:"has_notch"`
	NotchHeight   float64 `json:"notch_height"`
	NotchWidth    float64 `json:"notch_width"`
	ScreenWidth   float64 `json:"screen_width"`
	ScreenHeight  float64 `json:"screen_height"`
	VisibleHeight float64 `json:"visible_height"`
}

// Provider queries the OS for display characteristics. Implementations
// never return an error: on any failure to reach the display subsystem
// they return DefaultGeometry so callers degrade to a small overlay
// instead of crashing.
type Provider interface {
	Query() ScreenGeometry
}

const (
	defaultScreenWidth  = 1920.0
	defaultScreenHeight = 1080.0

	// Fallback notch footprint used when the platform reports no inset.
	fallbackNotchWidth  = 180.0
	fallbackNotchHeight = 40.0

	// Heuristic clamp bands for screens that do report an inset. The
	// exact hardware cutout is not queryable, so the size is approximated
	// from a percentage of the screen dimensions.
	notchHeightMin = 38.0
	notchHeightMax = 52.0
	notchWidthMin  = 200.0
	notchWidthMax  = 260.0
)

// DefaultGeometry is the documented degenerate result for failed queries.
func DefaultGeometry() ScreenGeometry {
	return Approximate(defaultScreenWidth, defaultScreenHeight, 0)
}

// Approximate normalizes raw platform readings into a ScreenGeometry.
// topInset is the reported non-usable inset at the top of the screen,
// in logical pixels; zero or negative means no notch.
func Approximate(screenWidth, screenHeight, topInset float64) ScreenGeometry {
	g := ScreenGeometry{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}

	if topInset > 0 {
		g.HasNotch = true
		g.NotchHeight = clamp(screenHeight*0.1, notchHeightMin, notchHeightMax)
		g.NotchWidth = clamp(screenWidth*0.1, notchWidthMin, notchWidthMax)
	} else {
		g.NotchWidth = fallbackNotchWidth
		g.NotchHeight = fallbackNotchHeight
	}

	return g
}

// Info converts a geometry snapshot into the frontend-facing record.
func (g ScreenGeometry) Info() NotchInfo {
	return NotchInfo{
		HasNotch:      g.HasNotch,
		NotchHeight:   g.NotchHeight,
		NotchWidth:    g.NotchWidth,
		ScreenWidth:   g.ScreenWidth,
		ScreenHeight:  g.ScreenHeight,
		VisibleHeight: g.ScreenHeight - g.NotchHeight,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StaticProvider returns a fixed geometry, used as the cross-platform
// fallback and in tests.
type StaticProvider struct {
	Geometry ScreenGeometry
}

func (p StaticProvider) Query() ScreenGeometry {
	return p.Geometry
}
