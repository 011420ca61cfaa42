//go:build linux

// Package x11 is a thin layer over the X protocol for the two queries the
// overlay needs: primary display geometry and the global pointer position.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// Display is the geometry of one physical display.
type Display struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewConnection establishes a connection to the X server.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// PrimaryDisplay returns the geometry of the primary display via RandR,
// falling back to the root screen dimensions when RandR is unavailable.
func (c *Connection) PrimaryDisplay() (Display, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return c.rootDisplay()
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return c.rootDisplay()
	}

	primary, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply()
	var primaryOutput randr.Output
	if err == nil {
		primaryOutput = primary.Output
	}

	var first *Display
	for _, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		d := Display{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		if first == nil {
			first = &d
		}
		for _, out := range crtcInfo.Outputs {
			if out == primaryOutput {
				return d, nil
			}
		}
	}

	if first != nil {
		return *first, nil
	}
	return c.rootDisplay()
}

func (c *Connection) rootDisplay() (Display, error) {
	screen := c.XUtil.Screen()
	if screen == nil {
		return Display{}, fmt.Errorf("no root screen available")
	}
	return Display{
		Width:  int(screen.WidthInPixels),
		Height: int(screen.HeightInPixels),
	}, nil
}

// PointerPosition returns the global pointer position in root-window
// coordinates (top-left origin).
func (c *Connection) PointerPosition() (int, int, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer failed: %w", err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}
