//go:build darwin

package window

import (
	"os/exec"
	"strings"
)

// accentColors maps the AppleAccentColor preference to hex values.
var accentColors = map[string]string{
	"-1": "#8e8e93", // graphite
	"0":  "#ff3b30", // red
	"1":  "#ff9500", // orange
	"2":  "#ffcc00", // yellow
	"3":  "#34c759", // green
	"4":  "#007aff", // blue
	"5":  "#af52de", // purple
	"6":  "#ff2d55", // pink
}

// AccentColor reads the user's accent color preference. The preference
// is unset when the default blue is selected.
func AccentColor() string {
	out, err := exec.Command("defaults", "read", "-g", "AppleAccentColor").Output()
	if err != nil {
		return defaultAccentColor
	}
	if color, ok := accentColors[strings.TrimSpace(string(out))]; ok {
		return color
	}
	return defaultAccentColor
}
