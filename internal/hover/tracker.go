package hover

// Origin identifies the coordinate convention of a cursor tracker's
// native space.
type Origin int

const (
	// OriginTopLeft means y grows downward from the top of the screen.
	OriginTopLeft Origin = iota
	// OriginBottomLeft means y grows upward from the bottom of the
	// screen and must be flipped before hit-testing.
	OriginBottomLeft
)

// Point is a cursor position in the tracker's native coordinate space.
type Point struct {
	X float64
	Y float64
}

// CursorTracker samples the global cursor position outside the windowing
// system's own event stream.
type CursorTracker interface {
	// Position returns the cursor position in the tracker's native
	// coordinates. Errors are per-sample and non-fatal; the detector
	// skips the tick.
	Position() (Point, error)
	// Origin reports the native coordinate convention.
	Origin() Origin
}
