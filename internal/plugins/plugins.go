// Package plugins discovers, installs, and removes widget plugins. A
// plugin is a directory under ~/.notch-overlay/plugins containing a
// plugin.json manifest and the JavaScript bundle it names.
package plugins

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Manifest mirrors plugin.json.
type Manifest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Description     string   `json:"description"`
	Author          string   `json:"author,omitempty"`
	Main            string   `json:"main"`
	Category        string   `json:"category"`
	MinWidth        int      `json:"minWidth,omitempty"`
	HasCompactMode  bool     `json:"hasCompactMode"`
	CompactPriority int      `json:"compactPriority,omitempty"`
	Permissions     []string `json:"permissions"`
}

// Info describes one discovered plugin.
type Info struct {
	Manifest   Manifest `json:"manifest"`
	BundlePath string   `json:"bundle_path"`
	PluginDir  string   `json:"plugin_dir"`
}

// Manager serves plugin operations against one plugins directory.
type Manager struct {
	dir string
}

// DefaultDir returns ~/.notch-overlay/plugins.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".notch-overlay", "plugins")
}

// NewManager builds a manager over dir. An empty dir selects the
// default location.
func NewManager(dir string) *Manager {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Manager{dir: dir}
}

// Dir returns the plugins directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// Scan lists all valid plugins. Directories with a missing or broken
// manifest are logged and skipped, never fatal.
func (m *Manager) Scan() ([]Info, error) {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		if err := os.MkdirAll(m.dir, 0o755); err != nil {
			return nil, fmt.Errorf("create plugins directory: %w", err)
		}
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read plugins directory: %w", err)
	}

	plugins := []Info{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(m.dir, entry.Name())
		info, err := validateFolder(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				logrus.Errorf("plugins: skipping %s: %v", dir, err)
			}
			continue
		}
		plugins = append(plugins, info)
	}
	return plugins, nil
}

// validateFolder checks a directory holds a well-formed plugin.
func validateFolder(dir string) (Info, error) {
	manifestPath := filepath.Join(dir, "plugin.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return Info{}, err
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Info{}, fmt.Errorf("invalid plugin.json: %w", err)
	}
	if manifest.ID == "" || manifest.Main == "" {
		return Info{}, fmt.Errorf("plugin.json missing id or main")
	}

	bundlePath := filepath.Join(dir, manifest.Main)
	if _, err := os.Stat(bundlePath); err != nil {
		return Info{}, fmt.Errorf("bundle file %q not found", manifest.Main)
	}

	return Info{
		Manifest:   manifest,
		BundlePath: bundlePath,
		PluginDir:  dir,
	}, nil
}

// ReadBundle returns a plugin's JavaScript bundle. The path must stay
// inside the plugins directory.
func (m *Manager) ReadBundle(bundlePath string) (string, error) {
	resolved, err := filepath.Abs(bundlePath)
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs(m.dir)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", fmt.Errorf("bundle path outside plugins directory")
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("read bundle: %w", err)
	}
	return string(data), nil
}

// InstallFromFolder validates a local plugin folder and copies it into
// the plugins directory, replacing any prior install of the same id.
func (m *Manager) InstallFromFolder(sourcePath string) (Info, error) {
	stat, err := os.Stat(sourcePath)
	if err != nil || !stat.IsDir() {
		return Info{}, fmt.Errorf("source path is not a directory")
	}

	info, err := validateFolder(sourcePath)
	if err != nil {
		return Info{}, err
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return Info{}, fmt.Errorf("create plugins directory: %w", err)
	}

	dest := filepath.Join(m.dir, info.Manifest.ID)
	if err := os.RemoveAll(dest); err != nil {
		return Info{}, fmt.Errorf("remove existing plugin: %w", err)
	}
	if err := copyDir(sourcePath, dest); err != nil {
		return Info{}, fmt.Errorf("copy plugin: %w", err)
	}

	return validateFolder(dest)
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Delete removes an installed plugin by id.
func (m *Manager) Delete(pluginID string) error {
	if pluginID == "" || strings.ContainsAny(pluginID, "/\\") || pluginID == ".." {
		return fmt.Errorf("invalid plugin id %q", pluginID)
	}

	path := filepath.Join(m.dir, pluginID)
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("plugin %q not found", pluginID)
	}
	if !stat.IsDir() {
		return fmt.Errorf("invalid plugin path")
	}
	return os.RemoveAll(path)
}
