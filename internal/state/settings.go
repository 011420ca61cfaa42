package state

import (
	"sync"
)

// WindowSettings holds the user-adjustable sizing configuration for the
// overlay window. It is shared between the UI thread and the hover
// detector thread, so access always goes through a SettingsStore.
type WindowSettings struct {
	// ExtraWidth is added to the base window width (notch width + wings).
	ExtraWidth float64 `json:"extra_width"`
	// ExtraHeight is added below the notch footprint.
	ExtraHeight float64 `json:"extra_height"`
	// NonNotchMode disables notch-aware sizing (no wings, tighter collision).
	NonNotchMode bool `json:"non_notch_mode"`
}

// DefaultWindowSettings returns the settings used before anything has been
// loaded or configured.
func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		ExtraWidth:  400,
		ExtraHeight: 200,
	}
}

// PersistFunc writes settings to durable storage. A nil PersistFunc makes
// the store memory-only.
type PersistFunc func(WindowSettings) error

// SettingsStore is the process-wide, lock-protected home of WindowSettings.
// Readers always receive a copy, so a concurrent writer can never expose a
// torn value.
type SettingsStore struct {
	mu       sync.RWMutex
	settings WindowSettings
	persist  PersistFunc
}

// NewSettingsStore creates a store seeded with defaults.
func NewSettingsStore(persist PersistFunc) *SettingsStore {
	return &SettingsStore{
		settings: DefaultWindowSettings(),
		persist:  persist,
	}
}

// Get returns a copy of the current settings.
func (s *SettingsStore) Get() WindowSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Set replaces the settings and persists them. The in-memory value is
// applied even when persistence fails, so the current session keeps
// behaving correctly; the error is returned for the caller to surface.
func (s *SettingsStore) Set(ws WindowSettings) error {
	s.mu.Lock()
	s.settings = ws
	s.mu.Unlock()

	if s.persist == nil {
		return nil
	}
	return s.persist(ws)
}

// Restore replaces the settings without persisting, used when seeding the
// store from storage at startup.
func (s *SettingsStore) Restore(ws WindowSettings) {
	s.mu.Lock()
	s.settings = ws
	s.mu.Unlock()
}
