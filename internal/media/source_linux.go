//go:build linux

package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	mprisPrefix      = "org.mpris.MediaPlayer2."
	mprisPath        = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	mprisRootIface   = "org.mpris.MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
)

// mprisSource talks to MPRIS players on the session bus.
type mprisSource struct {
	conn *dbus.Conn

	// last holds the bus name of the player that answered last, so
	// transport controls target the player the user is looking at.
	last playerTarget
}

// NewPlatformSource returns the Linux media source.
func NewPlatformSource() (Source, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &mprisSource{conn: conn}, nil
}

// playerNames lists the MPRIS bus names currently registered.
func (m *mprisSource) playerNames() ([]string, error) {
	var names []string
	err := m.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	if err != nil {
		return nil, fmt.Errorf("list bus names: %w", err)
	}

	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			players = append(players, name)
		}
	}
	return players, nil
}

func (m *mprisSource) playerProp(name, prop string) (dbus.Variant, error) {
	obj := m.conn.Object(name, mprisPath)
	return obj.GetProperty(mprisPlayerIface + "." + prop)
}

func (m *mprisSource) NowPlaying(ctx context.Context) (NowPlaying, error) {
	players, err := m.playerNames()
	if err != nil {
		return NowPlaying{}, err
	}

	var paused *NowPlaying
	var pausedName string
	for _, name := range players {
		np, ok := m.readPlayer(name)
		if !ok {
			continue
		}
		if np.IsPlaying {
			m.last.Set(name)
			return np, nil
		}
		if paused == nil {
			saved := np
			paused = &saved
			pausedName = name
		}
	}

	if paused != nil {
		m.last.Set(pausedName)
		return *paused, nil
	}
	return NowPlaying{}, nil
}

// readPlayer reads one player's metadata and status. ok is false when the
// player has no current track or does not answer.
func (m *mprisSource) readPlayer(name string) (NowPlaying, bool) {
	statusVar, err := m.playerProp(name, "PlaybackStatus")
	if err != nil {
		return NowPlaying{}, false
	}
	status, _ := statusVar.Value().(string)
	if status != "Playing" && status != "Paused" {
		return NowPlaying{}, false
	}

	metaVar, err := m.playerProp(name, "Metadata")
	if err != nil {
		return NowPlaying{}, false
	}
	meta, _ := metaVar.Value().(map[string]dbus.Variant)
	if meta == nil {
		return NowPlaying{}, false
	}

	np := NowPlaying{
		IsPlaying: status == "Playing",
		AppName:   strings.TrimPrefix(name, mprisPrefix),
	}
	if v, ok := meta["xesam:title"]; ok {
		np.Title, _ = v.Value().(string)
	}
	if v, ok := meta["xesam:artist"]; ok {
		if artists, ok := v.Value().([]string); ok && len(artists) > 0 {
			np.Artist = artists[0]
		}
	}
	if v, ok := meta["xesam:album"]; ok {
		np.Album, _ = v.Value().(string)
	}
	if v, ok := meta["mpris:length"]; ok {
		np.Duration = float64(asInt64(v.Value())) / 1e6
	}
	if v, ok := meta["mpris:artUrl"]; ok {
		np.ArtworkURL, _ = v.Value().(string)
	}
	if np.Title == "" {
		return NowPlaying{}, false
	}

	if posVar, err := m.playerProp(name, "Position"); err == nil {
		np.ElapsedTime = float64(asInt64(posVar.Value())) / 1e6
	}
	return np, true
}

// asInt64 normalizes the integer types players use for microsecond values.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case uint64:
		return int64(n)
	case int32:
		return int64(n)
	case uint32:
		return int64(n)
	}
	return 0
}

// target returns the bus name transport controls should address,
// falling back to the first registered player.
func (m *mprisSource) target() (string, error) {
	if name := m.last.Get(); name != "" {
		return name, nil
	}
	players, err := m.playerNames()
	if err != nil {
		return "", err
	}
	if len(players) == 0 {
		return "", fmt.Errorf("no media player found")
	}
	m.last.Set(players[0])
	return players[0], nil
}

func (m *mprisSource) call(method string, args ...interface{}) error {
	name, err := m.target()
	if err != nil {
		return err
	}
	obj := m.conn.Object(name, mprisPath)
	return obj.Call(mprisPlayerIface+"."+method, 0, args...).Err
}

func (m *mprisSource) PlayPause() error {
	return m.call("PlayPause")
}

func (m *mprisSource) NextTrack() error {
	return m.call("Next")
}

func (m *mprisSource) PreviousTrack() error {
	return m.call("Previous")
}

func (m *mprisSource) Seek(seconds float64) error {
	name, err := m.target()
	if err != nil {
		return err
	}
	metaVar, err := m.playerProp(name, "Metadata")
	if err != nil {
		return err
	}
	meta, _ := metaVar.Value().(map[string]dbus.Variant)
	trackVar, ok := meta["mpris:trackid"]
	if !ok {
		return fmt.Errorf("player does not expose a track id")
	}
	trackID, ok := trackVar.Value().(dbus.ObjectPath)
	if !ok {
		return fmt.Errorf("unexpected track id type")
	}
	return m.call("SetPosition", trackID, int64(seconds*1e6))
}

func (m *mprisSource) ActivateApp(appName string) error {
	name := m.last.Get()
	if appName != "" {
		name = mprisPrefix + appName
	}
	if name == "" {
		return fmt.Errorf("no media player to activate")
	}
	obj := m.conn.Object(name, mprisPath)
	return obj.Call(mprisRootIface+".Raise", 0).Err
}
