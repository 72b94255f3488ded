package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sidebar/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.TraceLevel, logging.ParseLevel("trace"))
	assert.Equal(t, zerolog.Disabled, logging.ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel("bogus"))
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	ctx := logging.WithContext(context.Background(), logger)
	ctx = logging.WithComponent(ctx, "dnd")
	ctx = logging.WithGestureID(ctx, "g-1")
	ctx = logging.WithZone(ctx, "tabs")
	logging.FromContext(ctx).Debug().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "dnd", line["component"])
	assert.Equal(t, "g-1", line["gesture_id"])
	assert.Equal(t, "tabs", line["zone"])
	assert.Equal(t, "hello", line["message"])
}

func TestFromContext_WithoutLoggerIsUsable(t *testing.T) {
	log := logging.FromContext(context.Background())
	require.NotNil(t, log)
	log.Info().Msg("discarded")
}

func TestFileWriter_WritesToSidebarLog(t *testing.T) {
	dir := t.TempDir()
	w := logging.NewFileWriter(dir, logging.FileConfig{MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})

	logger := logging.New(logging.Config{Level: zerolog.InfoLevel, Format: "json", Output: w})
	logger.Info().Str("zone", "tabs").Msg("drop completed")
	logger.Debug().Msg("below level")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(filepath.Join(dir, logging.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "drop completed")
	assert.NotContains(t, string(data), "below level")
}

func TestFileWriter_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	w := logging.NewFileWriter(dir, logging.FileConfig{MaxSizeMB: 1})

	_, err := w.Write([]byte("{}\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.FileExists(t, filepath.Join(dir, logging.LogFileName))
}
