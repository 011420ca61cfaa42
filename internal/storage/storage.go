// Package storage owns the on-disk SQLite database: the settings
// key-value table plus the widget-state and file-tray tables.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"notch-overlay/internal/state"
)

const (
	settingsKeyWindow = "window_settings"
	settingsKeyNotes  = "notes"
)

// WidgetState maps widget IDs to their enabled status.
type WidgetState struct {
	Enabled map[string]bool `json:"enabled"`
}

// TrayFile is one entry of the file tray.
type TrayFile struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
	MimeType     string `json:"type"`
	LastModified int64  `json:"lastModified"`
}

// Store wraps the database handle. Safe for concurrent use; database/sql
// serializes access.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the database location under the user's home
// directory, creating the parent directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".notch-overlay")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(dir, "overlay.db"), nil
}

// Open opens (creating if necessary) the database at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS widget_state (
			id TEXT PRIMARY KEY,
			enabled BOOLEAN NOT NULL DEFAULT 0,
			config TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS file_tray (
			path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			size INTEGER,
			mime_type TEXT,
			last_modified INTEGER
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func logSQL(query string) {
	logrus.Debug("SQL: ", query)
}

// GetSetting reads one settings value. The second result reports whether
// the key exists.
func (s *Store) GetSetting(key string) (string, bool, error) {
	query := "SELECT value FROM settings WHERE key = ?"
	logSQL(query)

	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting writes one settings value, replacing any previous one.
func (s *Store) SetSetting(key, value string) error {
	query := "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)"
	logSQL(query)

	_, err := s.db.Exec(query, key, value)
	return err
}

// SaveWindowSettings persists the sizing configuration as a single JSON
// record under its settings key.
func (s *Store) SaveWindowSettings(ws state.WindowSettings) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	return s.SetSetting(settingsKeyWindow, string(data))
}

// LoadWindowSettings reads the sizing configuration, returning defaults
// when the record is missing or unreadable.
func (s *Store) LoadWindowSettings() state.WindowSettings {
	value, ok, err := s.GetSetting(settingsKeyWindow)
	if err != nil || !ok {
		if err != nil {
			logrus.Warnf("storage: reading window settings failed: %v", err)
		}
		return state.DefaultWindowSettings()
	}

	var ws state.WindowSettings
	if err := json.Unmarshal([]byte(value), &ws); err != nil {
		logrus.Warnf("storage: corrupt window settings record, using defaults: %v", err)
		return state.DefaultWindowSettings()
	}
	return ws
}

// SaveNotes stores the notes text.
func (s *Store) SaveNotes(notes string) error {
	return s.SetSetting(settingsKeyNotes, notes)
}

// LoadNotes returns the stored notes text, or empty when none exist.
func (s *Store) LoadNotes() (string, error) {
	value, _, err := s.GetSetting(settingsKeyNotes)
	return value, err
}

// SaveWidgetState replaces the enabled flags for every widget ID in the
// given state inside one transaction.
func (s *Store) SaveWidgetState(ws WidgetState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT OR REPLACE INTO widget_state (id, enabled) VALUES (?, ?)"
	for id, enabled := range ws.Enabled {
		logSQL(query)
		if _, err := tx.Exec(query, id, enabled); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadWidgetState reads the enabled flags for all widgets.
func (s *Store) LoadWidgetState() (WidgetState, error) {
	query := "SELECT id, enabled FROM widget_state"
	logSQL(query)

	rows, err := s.db.Query(query)
	if err != nil {
		return WidgetState{}, err
	}
	defer rows.Close()

	ws := WidgetState{Enabled: make(map[string]bool)}
	for rows.Next() {
		var id string
		var enabled bool
		if err := rows.Scan(&id, &enabled); err != nil {
			return WidgetState{}, err
		}
		ws.Enabled[id] = enabled
	}
	return ws, rows.Err()
}

// SaveFileTray replaces the whole tray with the given files in one
// transaction. Clearing and rewriting is simpler than diffing.
func (s *Store) SaveFileTray(files []TrayFile) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM file_tray"); err != nil {
		return err
	}

	query := "INSERT INTO file_tray (path, name, size, mime_type, last_modified) VALUES (?, ?, ?, ?, ?)"
	for _, f := range files {
		logSQL(query)
		if _, err := tx.Exec(query, f.Path, f.Name, f.Size, f.MimeType, f.LastModified); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadFileTray reads the persisted tray contents.
func (s *Store) LoadFileTray() ([]TrayFile, error) {
	query := "SELECT path, name, size, mime_type, last_modified FROM file_tray"
	logSQL(query)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []TrayFile
	for rows.Next() {
		var f TrayFile
		if err := rows.Scan(&f.Path, &f.Name, &f.Size, &f.MimeType, &f.LastModified); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
