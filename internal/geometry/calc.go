package geometry

import (
	"notch-overlay/internal/state"
)

// baseWidthMargin is the width of the interactive "wings" flanking the
// notch footprint.
const baseWidthMargin = 160.0

// Layout is a computed window footprint: size plus the centered,
// top-anchored position.
type Layout struct {
	Width  float64
	Height float64
	X      float64
	Y      float64
}

// EffectiveNotchWidth is the notch width used for sizing and hit-zones:
// zero when non-notch mode is active, the geometry's notch width otherwise.
func EffectiveNotchWidth(g ScreenGeometry, s state.WindowSettings) float64 {
	if s.NonNotchMode {
		return 0
	}
	return g.NotchWidth
}

// Compute derives the overlay window's fixed footprint from screen
// geometry and user settings. Pure and deterministic:
//
//	width  = effectiveNotchWidth + 160 + extraWidth
//	height = notchHeight + extraHeight
//	x      = (screenWidth - width) / 2
//	y      = 0
func Compute(g ScreenGeometry, s state.WindowSettings) Layout {
	width := EffectiveNotchWidth(g, s) + baseWidthMargin + s.ExtraWidth
	height := g.NotchHeight + s.ExtraHeight

	return Layout{
		Width:  width,
		Height: height,
		X:      (g.ScreenWidth - width) / 2,
		Y:      0,
	}
}
