package media

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventNowPlayingChanged fires when the reported track changes.
const EventNowPlayingChanged = "now-playing-changed"

// Service polls the platform source, keeps the latest snapshot, and
// remembers the last played track so the UI has something to show while
// paused or idle.
type Service struct {
	source  Source
	spotify *SpotifySource
	vis     *Visualizer
	artwork *ArtworkCache
	notify  Notifier

	mu         sync.RWMutex
	current    NowPlaying
	lastPlayed *NowPlaying
	updatedAt  time.Time

	pollInterval time.Duration
	stopChan     chan struct{}
	isPolling    bool
	pollMu       sync.Mutex
}

// NewService wires a media service. spotify may be nil; it is only used
// as a fallback source when the local player query finds nothing.
func NewService(source Source, spotify *SpotifySource, vis *Visualizer, notify Notifier) *Service {
	return &Service{
		source:       source,
		spotify:      spotify,
		vis:          vis,
		artwork:      NewArtworkCache(50),
		notify:       notify,
		pollInterval: 2 * time.Second,
	}
}

// Start begins polling the active player. It may be called again after
// Stop, which starts a fresh poll loop.
func (s *Service) Start() {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	if s.isPolling {
		return
	}
	s.isPolling = true
	s.stopChan = make(chan struct{})
	go s.pollLoop(s.stopChan)
	logrus.Debug("media: polling started")
}

// Stop halts polling.
func (s *Service) Stop() {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	if !s.isPolling {
		return
	}
	s.isPolling = false
	close(s.stopChan)
	logrus.Debug("media: polling stopped")
}

func (s *Service) pollLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.poll()
		}
	}
}

func (s *Service) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	np, err := s.source.NowPlaying(ctx)
	if err != nil {
		logrus.Debugf("media: local source query failed: %v", err)
	}

	if (err != nil || np.Title == "") && s.spotify != nil && s.spotify.IsAuthenticated() {
		if webNP, webErr := s.spotify.NowPlaying(ctx); webErr == nil && webNP.Title != "" {
			np = webNP
		}
	}

	s.apply(np)
}

// apply folds a fresh snapshot into the service state.
func (s *Service) apply(np NowPlaying) {
	if np.Title != "" && np.ArtworkBase64 == "" {
		np.ArtworkBase64 = s.resolveArtwork(np)
	}

	if s.vis != nil {
		s.vis.SetPlaying(np.IsPlaying)
	}

	s.mu.Lock()
	changed := np.Title != s.current.Title || np.Artist != s.current.Artist ||
		np.IsPlaying != s.current.IsPlaying
	s.current = np
	s.updatedAt = time.Now()
	if np.Title != "" {
		saved := np
		s.lastPlayed = &saved
	}
	s.mu.Unlock()

	if changed && s.notify != nil {
		s.notify.Emit(EventNowPlayingChanged)
	}
}

// resolveArtwork returns cached artwork for the track, fetching and
// caching it when a URL is available.
func (s *Service) resolveArtwork(np NowPlaying) string {
	if art, ok := s.artwork.Get(np.Artist, np.Title); ok {
		return art
	}
	if np.ArtworkURL == "" {
		return ""
	}

	art, err := fetchArtwork(np.ArtworkURL)
	if err != nil {
		logrus.Debugf("media: artwork fetch failed: %v", err)
		return ""
	}
	s.artwork.Set(np.Artist, np.Title, art)
	return art
}

// fetchArtwork downloads an image and returns it base64-encoded.
func fetchArtwork(url string) (string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// GetNowPlaying returns the latest snapshot. While playing, the elapsed
// time is extrapolated from the poll timestamp so the UI progress stays
// smooth between polls. When nothing is playing, the last played track is
// returned paused so the widget is not empty.
func (s *Service) GetNowPlaying() NowPlaying {
	s.mu.RLock()
	np := s.current
	last := s.lastPlayed
	updatedAt := s.updatedAt
	s.mu.RUnlock()

	if np.Title == "" && last != nil {
		np = *last
		np.IsPlaying = false
	} else if np.IsPlaying && !updatedAt.IsZero() {
		np.ElapsedTime += time.Since(updatedAt).Seconds()
		if np.Duration > 0 && np.ElapsedTime > np.Duration {
			np.ElapsedTime = np.Duration
		}
	}

	if s.vis != nil {
		np.AudioLevels = s.vis.Levels()
	}
	return np
}

// AudioLevels returns the current visualizer bands.
func (s *Service) AudioLevels() []float64 {
	if s.vis == nil {
		return nil
	}
	return s.vis.Levels()
}

// PlayPause toggles playback on the active player.
func (s *Service) PlayPause() error {
	return s.source.PlayPause()
}

// NextTrack skips forward.
func (s *Service) NextTrack() error {
	return s.source.NextTrack()
}

// PreviousTrack skips backward.
func (s *Service) PreviousTrack() error {
	return s.source.PreviousTrack()
}

// Seek jumps to an absolute position in seconds.
func (s *Service) Seek(seconds float64) error {
	return s.source.Seek(seconds)
}

// ActivateMediaApp raises the named player application.
func (s *Service) ActivateMediaApp(appName string) error {
	return s.source.ActivateApp(appName)
}
