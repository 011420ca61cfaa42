package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlugin(t *testing.T, dir, id string) string {
	t.Helper()

	pluginDir := filepath.Join(dir, id)
	require.NoError(t, os.MkdirAll(pluginDir, 0o755))

	manifest := `{
		"id": "` + id + `",
		"name": "Test Plugin",
		"version": "1.0.0",
		"description": "a plugin",
		"main": "bundle.js",
		"category": "utility",
		"hasCompactMode": true,
		"permissions": ["storage"]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, "plugin.json"), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, "bundle.js"), []byte("export default {}"), 0o644))
	return pluginDir
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "clock")
	writePlugin(t, dir, "weather")

	m := NewManager(dir)
	plugins, err := m.Scan()
	require.NoError(t, err)
	require.Len(t, plugins, 2)

	ids := []string{plugins[0].Manifest.ID, plugins[1].Manifest.ID}
	assert.Contains(t, ids, "clock")
	assert.Contains(t, ids, "weather")
	assert.True(t, plugins[0].Manifest.HasCompactMode)
}

func TestScan_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plugins")

	m := NewManager(dir)
	plugins, err := m.Scan()
	require.NoError(t, err)
	assert.Empty(t, plugins)

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestScan_SkipsBrokenPlugins(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "good")

	// Directory without a manifest.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	// Corrupt manifest.
	badDir := filepath.Join(dir, "bad")
	require.NoError(t, os.MkdirAll(badDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(badDir, "plugin.json"), []byte("{nope"), 0o644))

	// Manifest pointing at a missing bundle.
	ghostDir := filepath.Join(dir, "ghost")
	require.NoError(t, os.MkdirAll(ghostDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ghostDir, "plugin.json"),
		[]byte(`{"id":"ghost","main":"missing.js"}`), 0o644))

	m := NewManager(dir)
	plugins, err := m.Scan()
	require.NoError(t, err)
	require.Len(t, plugins, 1)
	assert.Equal(t, "good", plugins[0].Manifest.ID)
}

func TestReadBundle(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "clock")

	m := NewManager(dir)
	plugins, err := m.Scan()
	require.NoError(t, err)
	require.Len(t, plugins, 1)

	content, err := m.ReadBundle(plugins[0].BundlePath)
	require.NoError(t, err)
	assert.Equal(t, "export default {}", content)
}

func TestReadBundle_RejectsOutsidePath(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "secret.js")
	require.NoError(t, os.WriteFile(outside, []byte("nope"), 0o644))

	m := NewManager(dir)
	_, err := m.ReadBundle(outside)
	assert.Error(t, err)

	_, err = m.ReadBundle(filepath.Join(dir, "..", "escape.js"))
	assert.Error(t, err)
}

func TestInstallFromFolder(t *testing.T) {
	source := t.TempDir()
	sourcePlugin := writePlugin(t, source, "clock")

	// Nested asset survives the copy.
	require.NoError(t, os.MkdirAll(filepath.Join(sourcePlugin, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourcePlugin, "assets", "icon.svg"), []byte("<svg/>"), 0o644))

	dir := t.TempDir()
	m := NewManager(dir)

	info, err := m.InstallFromFolder(sourcePlugin)
	require.NoError(t, err)
	assert.Equal(t, "clock", info.Manifest.ID)
	assert.Equal(t, filepath.Join(dir, "clock"), info.PluginDir)

	_, err = os.Stat(filepath.Join(dir, "clock", "assets", "icon.svg"))
	assert.NoError(t, err)
}

func TestInstallFromFolder_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	old := writePlugin(t, dir, "clock")
	require.NoError(t, os.WriteFile(filepath.Join(old, "stale.txt"), []byte("old"), 0o644))

	source := writePlugin(t, t.TempDir(), "clock")
	_, err := m.InstallFromFolder(source)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "clock", "stale.txt"))
	assert.True(t, os.IsNotExist(err), "expected stale file to be gone after reinstall")
}

func TestInstallFromFolder_RejectsInvalidSource(t *testing.T) {
	m := NewManager(t.TempDir())

	_, err := m.InstallFromFolder(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	empty := t.TempDir()
	_, err = m.InstallFromFolder(empty)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "clock")

	m := NewManager(dir)
	require.NoError(t, m.Delete("clock"))

	_, err := os.Stat(filepath.Join(dir, "clock"))
	assert.True(t, os.IsNotExist(err))
}

func TestDelete_RejectsBadIDs(t *testing.T) {
	m := NewManager(t.TempDir())

	assert.Error(t, m.Delete(""))
	assert.Error(t, m.Delete(".."))
	assert.Error(t, m.Delete("../outside"))
	assert.Error(t, m.Delete("missing"))
}
