//go:build linux

package geometry

import (
	"sync"

	"github.com/sirupsen/logrus"

	"notch-overlay/internal/x11"
)

type x11Provider struct {
	mu   sync.Mutex
	conn *x11.Connection
}

// NewProvider returns the Linux geometry provider, backed by X11 RandR.
// Linux hardware reports no notch inset; the geometry carries the
// fallback hit-zone footprint.
func NewProvider() Provider {
	return &x11Provider{}
}

func (p *x11Provider) Query() ScreenGeometry {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		conn, err := x11.NewConnection()
		if err != nil {
			logrus.Debugf("geometry: x11 connection failed: %v", err)
			return DefaultGeometry()
		}
		p.conn = conn
	}

	display, err := p.conn.PrimaryDisplay()
	if err != nil {
		logrus.Debugf("geometry: primary display query failed: %v", err)
		return DefaultGeometry()
	}

	return Approximate(float64(display.Width), float64(display.Height), 0)
}
