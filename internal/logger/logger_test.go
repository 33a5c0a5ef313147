package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netshield.log")

	closer, err := Init(Config{Level: "info", Output: path})
	require.NoError(t, err)

	log := WithComponent("widget")
	log.Info().Str("ssid", "esperance").Msg("poll ok")
	log.Debug().Msg("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "widget", entry["component"])
	assert.Equal(t, "esperance", entry["ssid"])
	assert.Equal(t, "poll ok", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestInitDebugOverridesLevel(t *testing.T) {
	closer, err := Init(Config{Level: "error", Debug: true, Output: "discard"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, err := Init(Config{Level: "chatty", Output: "discard"})
	assert.ErrorContains(t, err, "parse log level")
}
