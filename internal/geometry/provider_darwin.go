//go:build darwin

package geometry

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

type darwinProvider struct{}

// NewProvider returns the macOS geometry provider. Screen dimensions come
// from osascript; the notch inset is inferred from the display's aspect
// ratio, since notched MacBook panels add extra rows above the classic
// 16:10 area for the menu bar strip.
func NewProvider() Provider {
	return darwinProvider{}
}

func (darwinProvider) Query() ScreenGeometry {
	out, err := exec.Command("osascript", "-e",
		`tell application "Finder" to get bounds of window of desktop`).Output()
	if err != nil {
		logrus.Debugf("geometry: osascript screen query failed: %v", err)
		return DefaultGeometry()
	}

	width, height, ok := parseDesktopBounds(string(out))
	if !ok {
		return DefaultGeometry()
	}

	return Approximate(width, height, inferTopInset(width, height))
}

// parseDesktopBounds parses osascript output of the form "0, 0, 1512, 982".
func parseDesktopBounds(s string) (width, height float64, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return 0, 0, false
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, false
		}
		vals[i] = v
	}

	return vals[2] - vals[0], vals[3] - vals[1], true
}

// inferTopInset returns the extra logical rows above a 16:10 panel, the
// signature of a notched built-in display (e.g. 1512x982 -> 37). Regular
// 16:10 and wider displays yield zero.
func inferTopInset(width, height float64) float64 {
	base := width * 10 / 16
	if height > base {
		return height - base
	}
	return 0
}
