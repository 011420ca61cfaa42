//go:build !darwin

package window

// AccentColor returns the default accent on platforms where reading the
// system preference is not implemented.
func AccentColor() string {
	return defaultAccentColor
}
