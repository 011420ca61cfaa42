//go:build linux

package hover

import (
	"notch-overlay/internal/x11"
)

type x11Tracker struct {
	conn *x11.Connection
}

// NewTracker returns the Linux cursor tracker, backed by an X11
// QueryPointer on the root window. Wayland sessions without XWayland
// cannot sample the global pointer; the connection error disables hover
// detection.
func NewTracker() (CursorTracker, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, err
	}
	return &x11Tracker{conn: conn}, nil
}

func (t *x11Tracker) Position() (Point, error) {
	x, y, err := t.conn.PointerPosition()
	if err != nil {
		return Point{}, err
	}
	return Point{X: float64(x), Y: float64(y)}, nil
}

func (t *x11Tracker) Origin() Origin {
	return OriginTopLeft
}
