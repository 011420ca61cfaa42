// Package media surfaces what the system is currently playing and relays
// transport controls to the active player. Platform specifics live behind
// the Source interface; the service layer adds caching, artwork fetching,
// and the simulated visualizer levels.
package media

import (
	"context"
)

// NowPlaying is the track snapshot handed to the frontend.
type NowPlaying struct {
	Title         string    `json:"title,omitempty"`
	Artist        string    `json:"artist,omitempty"`
	Album         string    `json:"album,omitempty"`
	ArtworkBase64 string    `json:"artwork_base64,omitempty"`
	Duration      float64   `json:"duration,omitempty"`
	ElapsedTime   float64   `json:"elapsed_time,omitempty"`
	IsPlaying     bool      `json:"is_playing"`
	AudioLevels   []float64 `json:"audio_levels,omitempty"`
	AppName       string    `json:"app_name,omitempty"`

	// ArtworkURL is resolved to ArtworkBase64 by the service layer and
	// never serialized itself.
	ArtworkURL string `json:"-"`
}

// Source reads and controls the platform's active media player. All
// operations are thin OS-call wrappers; errors are reported but never
// fatal to the service.
type Source interface {
	NowPlaying(ctx context.Context) (NowPlaying, error)
	PlayPause() error
	NextTrack() error
	PreviousTrack() error
	// Seek jumps to an absolute position, in seconds.
	Seek(seconds float64) error
	// ActivateApp raises the named player application.
	ActivateApp(appName string) error
}

// Notifier delivers media events to the UI layer.
type Notifier interface {
	Emit(event string, data ...interface{})
}
