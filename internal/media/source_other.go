//go:build !darwin && !linux

package media

import (
	"context"
	"fmt"
	"runtime"
)

// stubSource covers platforms without a local player integration. The
// Spotify Web API fallback still works there.
type stubSource struct{}

// NewPlatformSource returns a source that reports nothing playing.
func NewPlatformSource() (Source, error) {
	return stubSource{}, nil
}

func (stubSource) NowPlaying(ctx context.Context) (NowPlaying, error) {
	return NowPlaying{}, nil
}

func (stubSource) PlayPause() error         { return stubErr() }
func (stubSource) NextTrack() error         { return stubErr() }
func (stubSource) PreviousTrack() error     { return stubErr() }
func (stubSource) Seek(float64) error       { return stubErr() }
func (stubSource) ActivateApp(string) error { return stubErr() }

func stubErr() error {
	return fmt.Errorf("media controls not implemented on %s", runtime.GOOS)
}
