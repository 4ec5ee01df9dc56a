package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestNewConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "ltfix.log")
	logger, closeFn, err := New(Config{Level: "info", File: path, Console: &console})
	require.NoError(t, err)

	logger.Debug("hidden on console", zap.Int("n", 1))
	logger.Info("repair count", zap.Int("count", 3))
	require.NoError(t, closeFn())

	assert.Contains(t, console.String(), "repair count")
	assert.NotContains(t, console.String(), "hidden on console")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hidden on console"`)
	assert.Contains(t, string(data), `"count":3`)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(Config{Level: "nope"})
	require.Error(t, err)
}
