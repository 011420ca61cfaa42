package media

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"notch-overlay/internal/storage"
)

const (
	spotifyCredentialsKey = "spotify_credentials"
	spotifyTokenKey       = "spotify_token"
	spotifyCallbackPort   = 8913
)

// SpotifyCredentials holds the app client pair supplied by the user.
type SpotifyCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type storedToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
}

// SpotifySource queries the Spotify Web API for playback state. It is a
// fallback for players that the local source cannot see, for example
// Spotify Connect playing on another device.
type SpotifySource struct {
	store *storage.Store

	mu            sync.Mutex
	authenticator *spotifyauth.Authenticator
	client        *spotify.Client
	server        *http.Server
	state         string
}

// NewSpotifySource restores a source from stored credentials and tokens.
// It never fails; an unconfigured source just reports unauthenticated.
func NewSpotifySource(store *storage.Store) *SpotifySource {
	s := &SpotifySource{store: store}

	creds, err := s.loadCredentials()
	if err != nil || creds.ClientID == "" {
		return s
	}
	s.authenticator = newAuthenticator(creds)

	if token := s.loadToken(); token != nil {
		s.client = spotify.New(s.authenticator.Client(context.Background(), token))
	}
	return s
}

func newAuthenticator(creds SpotifyCredentials) *spotifyauth.Authenticator {
	return spotifyauth.New(
		spotifyauth.WithRedirectURL(fmt.Sprintf("http://127.0.0.1:%d/callback", spotifyCallbackPort)),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadCurrentlyPlaying,
			spotifyauth.ScopeUserReadPlaybackState,
			spotifyauth.ScopeUserModifyPlaybackState,
		),
		spotifyauth.WithClientID(creds.ClientID),
		spotifyauth.WithClientSecret(creds.ClientSecret),
	)
}

// SetCredentials stores the client pair and resets any existing session.
func (s *SpotifySource) SetCredentials(creds SpotifyCredentials) error {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("client ID and secret are required")
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := s.store.SetSetting(spotifyCredentialsKey, string(data)); err != nil {
		return fmt.Errorf("save spotify credentials: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticator = newAuthenticator(creds)
	s.client = nil
	return nil
}

func (s *SpotifySource) loadCredentials() (SpotifyCredentials, error) {
	var creds SpotifyCredentials
	raw, ok, err := s.store.GetSetting(spotifyCredentialsKey)
	if err != nil || !ok {
		return creds, err
	}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return SpotifyCredentials{}, err
	}
	return creds, nil
}

func (s *SpotifySource) loadToken() *oauth2.Token {
	raw, ok, err := s.store.GetSetting(spotifyTokenKey)
	if err != nil || !ok || raw == "" {
		return nil
	}
	var st storedToken
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		logrus.Warnf("media: corrupt stored spotify token, ignoring: %v", err)
		return nil
	}
	return &oauth2.Token{
		AccessToken:  st.AccessToken,
		RefreshToken: st.RefreshToken,
		TokenType:    st.TokenType,
		Expiry:       time.Unix(st.ExpiresAt, 0),
	}
}

func (s *SpotifySource) saveToken(token *oauth2.Token) error {
	st := storedToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry.Unix(),
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.store.SetSetting(spotifyTokenKey, string(data))
}

// IsAuthenticated reports whether a usable session exists.
func (s *SpotifySource) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

// AuthURL starts the callback server and returns the authorization URL
// for the frontend to open in a browser.
func (s *SpotifySource) AuthURL() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticator == nil {
		return "", fmt.Errorf("spotify credentials not configured")
	}

	state, err := randomState()
	if err != nil {
		return "", fmt.Errorf("generate OAuth state: %w", err)
	}
	s.state = state

	if err := s.startCallbackServer(); err != nil {
		return "", fmt.Errorf("start callback server: %w", err)
	}
	return s.authenticator.AuthURL(state), nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *SpotifySource) startCallbackServer() error {
	if s.server != nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handleCallback)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", spotifyCallbackPort),
		Handler: mux,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Warnf("media: spotify callback server error: %v", err)
		}
	}()
	return nil
}

func (s *SpotifySource) handleCallback(w http.ResponseWriter, r *http.Request) {
	defer s.stopCallbackServer()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		http.Error(w, fmt.Sprintf("OAuth error: %s", errParam), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	state := s.state
	auth := s.authenticator
	s.mu.Unlock()

	if r.URL.Query().Get("state") != state {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	token, err := auth.Exchange(context.Background(), code)
	if err != nil {
		http.Error(w, fmt.Sprintf("Token exchange failed: %v", err), http.StatusInternalServerError)
		return
	}

	if err := s.saveToken(token); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save tokens: %v", err), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.client = spotify.New(auth.Client(context.Background(), token))
	s.mu.Unlock()

	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Notch Overlay - Connected</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h1>Spotify connected</h1>
<p>You can close this window.</p>
<script>setTimeout(() => window.close(), 3000);</script>
</body>
</html>`)
}

func (s *SpotifySource) stopCallbackServer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.server.Shutdown(ctx)
	s.server = nil
}

// Logout drops the stored token and session.
func (s *SpotifySource) Logout() {
	s.stopCallbackServer()

	s.mu.Lock()
	s.client = nil
	s.mu.Unlock()

	if err := s.store.SetSetting(spotifyTokenKey, ""); err != nil {
		logrus.Warnf("media: failed to clear spotify token: %v", err)
	}
}

func (s *SpotifySource) getClient() *spotify.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// NowPlaying queries the Web API for the current playback state.
func (s *SpotifySource) NowPlaying(ctx context.Context) (NowPlaying, error) {
	client := s.getClient()
	if client == nil {
		return NowPlaying{}, fmt.Errorf("not authenticated")
	}

	playing, err := client.PlayerCurrentlyPlaying(ctx)
	if err != nil {
		return NowPlaying{}, fmt.Errorf("query playback state: %w", err)
	}
	if playing == nil || playing.Item == nil {
		return NowPlaying{}, nil
	}

	track := playing.Item
	np := NowPlaying{
		Title:       track.Name,
		Album:       track.Album.Name,
		Duration:    float64(track.Duration) / 1000,
		ElapsedTime: float64(playing.Progress) / 1000,
		IsPlaying:   playing.Playing,
		AppName:     "Spotify",
	}
	if len(track.Artists) > 0 {
		np.Artist = track.Artists[0].Name
	}
	if len(track.Album.Images) > 0 {
		np.ArtworkURL = track.Album.Images[0].URL
	}
	return np, nil
}
