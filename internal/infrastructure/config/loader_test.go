package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/sidebar/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestManager_LoadCreatesDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("ENV", "")

	mgr, err := config.NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, time.Second, cfg.DnD.AutoExpandDelay)
	assert.InDelta(t, 0.25, cfg.DnD.ContainerEdgeRatio, 1e-9)
	assert.InDelta(t, 0.5, cfg.DnD.LeafSplitRatio, 1e-9)
	assert.True(t, cfg.TUI.Mouse)

	assert.FileExists(t, filepath.Join(home, "sidebar", "config.toml"))
	assert.FileExists(t, filepath.Join(home, "sidebar", "config.schema.json"))
}

func TestManager_LoadExplicitFile(t *testing.T) {
	path := writeConfig(t, `
[dnd]
auto_expand_delay = "250ms"
container_edge_ratio = 0.2

[logging]
level = "DEBUG"
format = "json"
max_backups = 5
compress = false
`)

	mgr, err := config.NewManager(config.WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, 250*time.Millisecond, cfg.DnD.AutoExpandDelay)
	assert.InDelta(t, 0.2, cfg.DnD.Geometry().EdgeRatio, 1e-9)
	assert.InDelta(t, 0.5, cfg.DnD.Geometry().LeafSplit, 1e-9)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.Logging.MaxBackups)
	assert.False(t, cfg.Logging.Compress)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
	assert.Equal(t, path, mgr.GetConfigFile())
}

func TestManager_MissingExplicitFileUsesDefaults(t *testing.T) {
	mgr, err := config.NewManager(config.WithConfigFile(filepath.Join(t.TempDir(), "nope.toml")))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	assert.Equal(t, config.DefaultConfig(), mgr.Get())
}

func TestManager_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[dnd]\nauto_expand_delay = \"2s\"\n")
	t.Setenv("SIDEBAR_DND_AUTO_EXPAND_DELAY", "500ms")
	t.Setenv("SIDEBAR_LOG_LEVEL", "warn")

	mgr, err := config.NewManager(config.WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.Equal(t, 500*time.Millisecond, mgr.Get().DnD.AutoExpandDelay)
	assert.Equal(t, "warn", mgr.Get().Logging.Level)
}

func TestManager_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"edge ratio too large", "[dnd]\ncontainer_edge_ratio = 0.5\n", "dnd.container_edge_ratio"},
		{"zero delay", "[dnd]\nauto_expand_delay = \"0s\"\n", "dnd.auto_expand_delay"},
		{"negative radius", "[dnd]\nfallback_radius = -1\n", "dnd.fallback_radius"},
		{"unknown level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"zero log size", "[logging]\nmax_size_mb = 0\n", "logging.max_size_mb"},
		{"negative backups", "[logging]\nmax_backups = -1\n", "logging.max_backups"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, err := config.NewManager(config.WithConfigFile(writeConfig(t, tt.body)))
			require.NoError(t, err)
			err = mgr.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestManager_ReloadNotifiesCallbacks(t *testing.T) {
	path := writeConfig(t, "[dnd]\nauto_expand_delay = \"1s\"\n")
	mgr, err := config.NewManager(config.WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var got *config.Config
	mgr.OnConfigChange(func(c *config.Config) { got = c })

	require.NoError(t, os.WriteFile(path, []byte("[dnd]\nauto_expand_delay = \"3s\"\n"), 0o644))
	require.NoError(t, mgr.Reload())
	require.NotNil(t, got)
	assert.Equal(t, 3*time.Second, got.DnD.AutoExpandDelay)

	got = nil
	require.NoError(t, os.WriteFile(path, []byte("[dnd]\ncontainer_edge_ratio = 0.9\n"), 0o644))
	require.Error(t, mgr.Reload())
	assert.Nil(t, got)
	assert.Equal(t, 3*time.Second, mgr.Get().DnD.AutoExpandDelay, "invalid reload keeps the previous config")
}

func TestGenerateSchema(t *testing.T) {
	data, err := config.GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Sidebar Configuration", doc["title"])
	assert.Contains(t, string(data), "container_edge_ratio")
	assert.Contains(t, string(data), "auto_expand_delay")
}
