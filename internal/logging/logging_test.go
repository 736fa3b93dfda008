package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := New("debug", "production", path)
	require.NoError(t, err)

	WithComponent(logger, "session").Debug("token loaded")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"token loaded"`)
	assert.Contains(t, out, `"component":"session"`)
	assert.Contains(t, out, `"level":"DEBUG"`)
}

func TestNew_LevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New("warn", "development", path)
	require.NoError(t, err)

	logger.Info("hidden")
	WithRequestID(logger, "req-1").Warn("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "req-1")
}
