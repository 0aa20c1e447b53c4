package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, path, err := New(Options{Env: "test", Dir: dir, Console: &console, ConsoleLevel: zapcore.InfoLevel})
	require.NoError(t, err)

	logger.Debug("debug only in file", zap.Int("slots", 3))
	logger.Info("visible everywhere")
	require.NoError(t, logger.Sync())

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "test_"))

	assert.Contains(t, console.String(), "visible everywhere")
	assert.NotContains(t, console.String(), "debug only in file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug only in file", entry["msg"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, float64(3), entry["slots"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_BadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, _, err := New(Options{Env: "test", Dir: filepath.Join(file, "logs")})
	assert.Error(t, err)
}
