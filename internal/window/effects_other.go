//go:build !windows

package window

import (
	"github.com/sirupsen/logrus"
)

type noopEffects struct {
	warned bool
}

func newEffects() Effects {
	return &noopEffects{}
}

func (e *noopEffects) SetClickThrough(ignore bool) error {
	if !e.warned {
		logrus.Debug("window: native click-through not available on this platform")
		e.warned = true
	}
	return nil
}

func (e *noopEffects) Activate() error {
	// Foregrounding is handled by the runtime's WindowShow in the
	// controller.
	return nil
}
