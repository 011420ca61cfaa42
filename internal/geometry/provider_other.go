//go:build !windows && !linux && !darwin

package geometry

// NewProvider returns a static provider with the documented default
// geometry on platforms without a display query implementation.
func NewProvider() Provider {
	return StaticProvider{Geometry: DefaultGeometry()}
}
