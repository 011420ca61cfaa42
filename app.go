package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"notch-overlay/internal/calendar"
	"notch-overlay/internal/files"
	"notch-overlay/internal/geometry"
	"notch-overlay/internal/hover"
	"notch-overlay/internal/media"
	"notch-overlay/internal/plugins"
	"notch-overlay/internal/state"
	"notch-overlay/internal/storage"
	"notch-overlay/internal/window"
)

// App holds the services behind the bound command surface.
type App struct {
	ctx context.Context

	store      *storage.Store
	settings   *state.SettingsStore
	bounds     *state.BoundsStore
	geo        geometry.Provider
	controller *window.Controller
	detector   *hover.Detector
	media      *media.Service
	spotify    *media.SpotifySource
	visualizer *media.Visualizer
	calendar   *calendar.Service
	plugins    *plugins.Manager
	watcher    *plugins.Watcher
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// Emit pushes an event to the frontend. Safe before startup.
func (a *App) Emit(event string, data ...interface{}) {
	if a.ctx == nil {
		return
	}
	wailsruntime.EventsEmit(a.ctx, event, data...)
}

// OnStartup is called when the app starts up
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	dbPath, err := storage.DefaultPath()
	if err == nil {
		a.store, err = storage.Open(dbPath)
	}
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	a.settings = state.NewSettingsStore(a.store.SaveWindowSettings)
	a.settings.Restore(a.store.LoadWindowSettings())
	a.bounds = state.NewBoundsStore()

	a.geo = geometry.NewProvider()
	a.controller = window.NewController(a.geo, a.settings)
	a.controller.Bind(ctx)
	a.controller.ApplyFixedSize()

	tracker, err := hover.NewTracker()
	if err != nil {
		logrus.Warnf("cursor tracking unavailable: %v", err)
	}
	a.detector = hover.New(hover.DefaultConfig(), a.settings, a.bounds, a.geo, tracker, a.controller, a)
	a.detector.Start()

	source, err := media.NewPlatformSource()
	if err != nil {
		logrus.Warnf("local media source unavailable: %v", err)
	}
	a.spotify = media.NewSpotifySource(a.store)
	a.visualizer = media.NewVisualizer()
	a.visualizer.Start(a)
	if source != nil {
		a.media = media.NewService(source, a.spotify, a.visualizer, a)
		a.media.Start()
	}

	a.calendar = calendar.NewService()
	a.plugins = plugins.NewManager("")
	a.watcher, err = plugins.NewWatcher(a.plugins, a)
	if err != nil {
		logrus.Warnf("plugin watcher unavailable: %v", err)
	}
}

// OnShutdown is called when the app is shutting down
func (a *App) OnShutdown(ctx context.Context) {
	if a.media != nil {
		a.media.Stop()
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

// --- Window and geometry commands ---

// GetNotchInfo reports the current screen and notch footprint.
func (a *App) GetNotchInfo() geometry.NotchInfo {
	return a.geo.Query().Info()
}

// PositionAtNotch centers the window over the notch without resizing.
func (a *App) PositionAtNotch() {
	a.controller.PositionAtNotch()
}

// FitToNotch resizes the window and re-centers it at the top edge.
func (a *App) FitToNotch(width, height float64) {
	a.controller.FitToNotch(width, height)
}

// SetClickThrough toggles pointer pass-through on the overlay.
func (a *App) SetClickThrough(ignore bool) error {
	return a.controller.SetClickThrough(ignore)
}

// ActivateWindow raises the overlay and gives it focus.
func (a *App) ActivateWindow() error {
	return a.controller.Activate()
}

// UpdateUIBounds records the frontend's rendered hit area, in
// window-local coordinates.
func (a *App) UpdateUIBounds(x, y, width, height float64) {
	a.bounds.Set(state.UIBounds{X: x, Y: y, Width: width, Height: height})
}

// GetWindowSettings returns the persisted window preferences.
func (a *App) GetWindowSettings() state.WindowSettings {
	return a.settings.Get()
}

// UpdateWindowSettings applies new preferences and resizes the window to
// match. The in-memory value sticks even when persistence fails, so the
// UI and the returned error can disagree on purpose.
func (a *App) UpdateWindowSettings(settings state.WindowSettings) error {
	err := a.settings.Set(settings)
	a.controller.ApplyFixedSize()
	return err
}

// GetSystemAccentColor returns the OS accent color as a hex string.
func (a *App) GetSystemAccentColor() string {
	return window.AccentColor()
}

// --- Media commands ---

// GetNowPlaying returns the current playback snapshot.
func (a *App) GetNowPlaying() media.NowPlaying {
	if a.media == nil {
		return media.NowPlaying{}
	}
	return a.media.GetNowPlaying()
}

// GetAudioLevels returns the visualizer bands.
func (a *App) GetAudioLevels() []float64 {
	return a.visualizer.Levels()
}

// MediaPlayPause toggles playback.
func (a *App) MediaPlayPause() error {
	if a.media == nil {
		return fmt.Errorf("media service not available")
	}
	return a.media.PlayPause()
}

// MediaNextTrack skips to the next track.
func (a *App) MediaNextTrack() error {
	if a.media == nil {
		return fmt.Errorf("media service not available")
	}
	return a.media.NextTrack()
}

// MediaPreviousTrack skips to the previous track.
func (a *App) MediaPreviousTrack() error {
	if a.media == nil {
		return fmt.Errorf("media service not available")
	}
	return a.media.PreviousTrack()
}

// MediaSeek jumps to a position in seconds.
func (a *App) MediaSeek(seconds float64) error {
	if a.media == nil {
		return fmt.Errorf("media service not available")
	}
	return a.media.Seek(seconds)
}

// ActivateMediaApp raises the named player application.
func (a *App) ActivateMediaApp(appName string) error {
	if a.media == nil {
		return fmt.Errorf("media service not available")
	}
	return a.media.ActivateMediaApp(appName)
}

// SetSpotifyCredentials stores the Spotify app client pair.
func (a *App) SetSpotifyCredentials(clientID, clientSecret string) error {
	return a.spotify.SetCredentials(media.SpotifyCredentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// GetSpotifyAuthURL starts the OAuth flow and returns the URL to open.
func (a *App) GetSpotifyAuthURL() (string, error) {
	return a.spotify.AuthURL()
}

// IsSpotifyAuthenticated reports whether the Web API fallback works.
func (a *App) IsSpotifyAuthenticated() bool {
	return a.spotify.IsAuthenticated()
}

// SpotifyLogout drops the Spotify session.
func (a *App) SpotifyLogout() {
	a.spotify.Logout()
}

// --- Notes commands ---

// SaveNotes persists the notes widget content.
func (a *App) SaveNotes(notes string) error {
	return a.store.SaveNotes(notes)
}

// LoadNotes returns the notes widget content.
func (a *App) LoadNotes() (string, error) {
	return a.store.LoadNotes()
}

// --- Calendar commands ---

// RequestCalendarAccess triggers the OS permission prompt by issuing a
// first fetch. Returns true once the request has been made.
func (a *App) RequestCalendarAccess() bool {
	a.calendar.UpcomingEvents(true)
	return true
}

// GetUpcomingEvents returns calendar events for the next week.
func (a *App) GetUpcomingEvents(forceRefresh bool) []calendar.Event {
	return a.calendar.UpcomingEvents(forceRefresh)
}

// GetReminders returns incomplete reminders.
func (a *App) GetReminders(forceRefresh bool) []calendar.Reminder {
	return a.calendar.Reminders(forceRefresh)
}

// CompleteReminder marks a reminder done.
func (a *App) CompleteReminder(id string) error {
	return a.calendar.CompleteReminder(id)
}

// CreateReminder adds a reminder, dueDate in unix seconds or 0 for none.
func (a *App) CreateReminder(title string, dueDate float64) error {
	return a.calendar.CreateReminder(title, dueDate)
}

// CreateCalendarEvent adds an event to the default calendar. Dates are
// unix seconds.
func (a *App) CreateCalendarEvent(title string, startDate, endDate float64, isAllDay bool, location string) error {
	return a.calendar.CreateEvent(title, startDate, endDate, isAllDay, location)
}

// OpenCalendarEvent shows the event's day in the calendar app.
func (a *App) OpenCalendarEvent(id string, date float64) error {
	return a.calendar.OpenEvent(id, date)
}

// OpenCalendarApp launches the platform calendar.
func (a *App) OpenCalendarApp() error {
	return calendar.OpenCalendarApp()
}

// OpenRemindersApp launches the platform task app.
func (a *App) OpenRemindersApp() error {
	return calendar.OpenRemindersApp()
}

// OpenPrivacySettings opens the OS calendar privacy pane.
func (a *App) OpenPrivacySettings() error {
	return calendar.OpenPrivacySettings()
}

// --- File tray commands ---

// OpenFile launches a file with its default application.
func (a *App) OpenFile(path string) error {
	return files.Open(path)
}

// RevealFile shows a file in the platform file manager.
func (a *App) RevealFile(path string) error {
	return files.Reveal(path)
}

// OnFileDrop records a file dropped onto the tray.
func (a *App) OnFileDrop(path string) {
	files.OnDrop(path)
}

// ResolvePath canonicalizes a dropped path.
func (a *App) ResolvePath(path string) (string, error) {
	return files.Resolve(path)
}

// SaveDragIcon stages drag image bytes for an OS drag session.
func (a *App) SaveDragIcon(iconData []byte) (string, error) {
	return files.SaveDragIcon(iconData)
}

// SaveFileTray replaces the persisted tray contents.
func (a *App) SaveFileTray(items []storage.TrayFile) error {
	return a.store.SaveFileTray(items)
}

// LoadFileTray returns the persisted tray contents.
func (a *App) LoadFileTray() ([]storage.TrayFile, error) {
	return a.store.LoadFileTray()
}

// --- Widget commands ---

// SaveWidgetState persists which widgets are enabled.
func (a *App) SaveWidgetState(ws storage.WidgetState) error {
	return a.store.SaveWidgetState(ws)
}

// LoadWidgetState returns the enabled-widget map.
func (a *App) LoadWidgetState() (storage.WidgetState, error) {
	return a.store.LoadWidgetState()
}

// --- Plugin commands ---

// ListPlugins scans the plugins directory.
func (a *App) ListPlugins() ([]plugins.Info, error) {
	return a.plugins.Scan()
}

// ReadPluginBundle returns a plugin's JavaScript bundle.
func (a *App) ReadPluginBundle(bundlePath string) (string, error) {
	return a.plugins.ReadBundle(bundlePath)
}

// GetPluginsDirectoryPath returns the plugins directory.
func (a *App) GetPluginsDirectoryPath() string {
	return a.plugins.Dir()
}

// InstallPluginFromFolder copies a local plugin folder into place.
func (a *App) InstallPluginFromFolder(sourcePath string) (plugins.Info, error) {
	return a.plugins.InstallFromFolder(sourcePath)
}

// DeletePlugin removes an installed plugin.
func (a *App) DeletePlugin(pluginID string) error {
	return a.plugins.Delete(pluginID)
}
