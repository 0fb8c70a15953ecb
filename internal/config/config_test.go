// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WELLIUM_HOME", dir)
	for _, k := range []string{"WELLIUM_DB", "WELLIUM_THEME", "WELLIUM_CELL_ASPECT", "WELLIUM_EPHEMERAL"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2.0, cfg.Layout.CellAspect)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 5000, cfg.Storage.BusyTimeoutMs)
	assert.True(t, cfg.UI.Mouse)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFilesUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().UI, cfg.UI)
}

func TestLoad_TOMLPartialKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[ui]\ntheme = \"light\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 2.0, cfg.Layout.CellAspect)
	assert.True(t, cfg.UI.ShowDescriptions)
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.json"), `{"layout":{"cell_aspect":2.5}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Layout.CellAspect)

	path, err := ActivePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), path)
}

func TestLoad_BrokenFileReturnsDefaultsAndError(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[ui\ntheme=")

	cfg, err := Load()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoadFromPath_InvalidValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	writeFile(t, path, "[ui]\ntheme = \"neon\"\n[layout]\ncell_aspect = -1.0\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("WELLIUM_DB", "/tmp/x.db")
	t.Setenv("WELLIUM_THEME", "light")
	t.Setenv("WELLIUM_CELL_ASPECT", "1.8")
	t.Setenv("WELLIUM_EPHEMERAL", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.Path)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 1.8, cfg.Layout.CellAspect)
	assert.True(t, cfg.Storage.Ephemeral)
}

func TestDatabasePath(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history.db"), path)

	cfg.Storage.Path = "/data/h.db"
	path, err = cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/data/h.db", path)
}

// =============================================================================
// SAVE
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.UI.Theme = "light"
	cfg.Link.Fail = true

	require.NoError(t, Save(cfg))

	path := filepath.Join(dir, "config.toml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.True(t, loaded.Link.Fail)
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	cfg := Default()
	cfg.Storage.Ephemeral = true

	require.NoError(t, SaveJSON(cfg, path))
	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.True(t, loaded.Storage.Ephemeral)
}

// =============================================================================
// GET / SET
// =============================================================================

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	require.NoError(t, cfg.Set("layout.cell_aspect", "2.25"))
	assert.Equal(t, 2.25, cfg.Layout.CellAspect)

	require.NoError(t, cfg.Set("storage.busy_timeout_ms", "100"))
	assert.Equal(t, 100, cfg.Storage.BusyTimeoutMs)

	require.NoError(t, cfg.Set("ui.show_descriptions", "false"))
	assert.False(t, cfg.UI.ShowDescriptions)

	_, err = cfg.Get("ui.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("layout.cell_aspect", "wide"))
}

func TestGetAllKeys_Resolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	got := make(chan *Config, 4)
	w, err := Watch(path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			got <- cfg
		}
	})
	require.NoError(t, err)
	defer w.Close()

	cfg := Default()
	cfg.UI.Theme = "light"
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case c := <-got:
		assert.Equal(t, "light", c.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after change")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	calls := make(chan struct{}, 4)
	w, err := Watch(path, 20*time.Millisecond, func(*Config, error) { calls <- struct{}{} })
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "other.txt"), "x")
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, w.Close())

	assert.Len(t, calls, 0)
}

// lockedBuffer is a log sink safe to read while the watcher writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_LogsWatcherErrors(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	var out lockedBuffer
	prev := log.Writer()
	log.SetOutput(&out)
	t.Cleanup(func() { log.SetOutput(prev) })

	w, err := Watch(path, 20*time.Millisecond, func(*Config, error) {})
	require.NoError(t, err)
	defer w.Close()

	w.watcher.Errors <- errors.New("queue overflow")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "WARN: config watcher: queue overflow")
	}, 2*time.Second, 10*time.Millisecond)
}
