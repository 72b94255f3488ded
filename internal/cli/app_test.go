package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sidebar/internal/cli"
	"github.com/bnema/sidebar/internal/logging"
)

func TestNewApp_LogDirUsesConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := "[logging]\nlevel = \"debug\"\nformat = \"json\"\nmax_size_mb = 2\nmax_backups = 1\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	logDir := filepath.Join(dir, "logs")

	app, err := cli.NewApp(cli.Options{ConfigFile: cfgPath, LogDir: logDir})
	require.NoError(t, err)
	assert.Equal(t, 2, app.Config.Logging.MaxSizeMB)
	assert.Equal(t, 1, app.Config.Logging.MaxBackups)

	logging.FromContext(app.Ctx()).Info().Msg("sidebar ready")
	require.NoError(t, app.Close())

	data, err := os.ReadFile(filepath.Join(logDir, logging.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sidebar ready")
	assert.Contains(t, string(data), "config loaded")
}
