//go:build darwin

package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// macSource reads playback state from Spotify and Music via AppleScript.
type macSource struct {
	// last remembers which player answered most recently so transport
	// controls go to the right one.
	last playerTarget
}

// NewPlatformSource returns the macOS media source.
func NewPlatformSource() (Source, error) {
	src := &macSource{}
	src.last.Set("Spotify")
	return src, nil
}

func runOsascript(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// queryPlayer asks one player app for its state. The script returns
// fields joined by a separator unlikely to appear in track metadata.
func queryPlayer(ctx context.Context, app string) (NowPlaying, error) {
	script := fmt.Sprintf(`
tell application "System Events"
	if not (exists process "%s") then return ""
end tell
tell application "%s"
	if player state is not playing and player state is not paused then return ""
	set sep to "||"
	set trackName to name of current track
	set trackArtist to artist of current track
	set trackAlbum to album of current track
	set trackDuration to duration of current track
	set pos to player position
	set playing to (player state is playing)
	return trackName & sep & trackArtist & sep & trackAlbum & sep & trackDuration & sep & pos & sep & playing
end tell`, app, app)

	out, err := runOsascript(ctx, script)
	if err != nil || out == "" {
		return NowPlaying{}, err
	}

	parts := strings.Split(out, "||")
	if len(parts) < 6 {
		return NowPlaying{}, fmt.Errorf("unexpected player reply from %s", app)
	}

	duration, _ := strconv.ParseFloat(parts[3], 64)
	elapsed, _ := strconv.ParseFloat(parts[4], 64)
	// Spotify reports duration in milliseconds, Music in seconds.
	if app == "Spotify" {
		duration /= 1000
	}

	return NowPlaying{
		Title:       parts[0],
		Artist:      parts[1],
		Album:       parts[2],
		Duration:    duration,
		ElapsedTime: elapsed,
		IsPlaying:   parts[5] == "true",
		AppName:     app,
	}, nil
}

func (m *macSource) NowPlaying(ctx context.Context) (NowPlaying, error) {
	for _, app := range []string{"Spotify", "Music"} {
		np, err := queryPlayer(ctx, app)
		if err != nil {
			continue
		}
		if np.Title != "" {
			m.last.Set(app)
			if app == "Spotify" {
				if url, err := runOsascript(ctx, `tell application "Spotify" to get artwork url of current track`); err == nil {
					np.ArtworkURL = url
				}
			}
			return np, nil
		}
	}
	return NowPlaying{}, nil
}

func (m *macSource) control(verb string) error {
	_, err := runOsascript(context.Background(),
		fmt.Sprintf(`tell application "%s" to %s`, m.last.Get(), verb))
	return err
}

func (m *macSource) PlayPause() error {
	return m.control("playpause")
}

func (m *macSource) NextTrack() error {
	return m.control("next track")
}

func (m *macSource) PreviousTrack() error {
	return m.control("previous track")
}

func (m *macSource) Seek(seconds float64) error {
	return m.control(fmt.Sprintf("set player position to %f", seconds))
}

func (m *macSource) ActivateApp(appName string) error {
	if appName == "" {
		appName = m.last.Get()
	}
	_, err := runOsascript(context.Background(),
		fmt.Sprintf(`tell application "%s" to activate`, appName))
	return err
}
