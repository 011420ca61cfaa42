//go:build !windows && !linux

package hover

import (
	"fmt"
	"runtime"
)

// NewTracker reports that global cursor sampling is not implemented on
// this platform. The detector stays disabled; the UI remains usable
// through the manual click-through command.
func NewTracker() (CursorTracker, error) {
	return nil, fmt.Errorf("global cursor tracking not implemented on %s", runtime.GOOS)
}
