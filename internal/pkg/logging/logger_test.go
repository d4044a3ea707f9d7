package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "minishop.log")

	logger, err := NewLogger(Options{Service: "minishop", Env: "test", Level: "info", File: path})
	require.NoError(t, err)
	logger.Info("checkout_completed")
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "checkout_completed", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "minishop", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.Contains(t, entry, "ts")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}
