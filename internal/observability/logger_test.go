package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/olivier-w/goo/internal/config"
)

func TestInitializeConsoleLogger(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{
		Level:       "debug",
		Format:      "console",
		ServiceName: "goo",
		Colors:      config.ColorConfig{Info: "green"},
	}, zapcore.AddSync(&buf))

	GetLogger().Named("director").Info("phase changed", zap.String("phase", "melt"))
	require.NoError(t, Sync())

	out := buf.String()
	assert.Contains(t, out, "phase changed")
	assert.Contains(t, out, colorGreen+"INFO"+colorReset)
	assert.Contains(t, out, "goo.director.")
	assert.Contains(t, out, `"phase": "melt"`)
}

func TestInitializeRespectsLevel(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))
	GetLogger().Info("hidden")
	GetLogger().Warn("shown")
	require.NoError(t, Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitializeWritesJSONFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	path := filepath.Join(t.TempDir(), "goo.log")
	var console bytes.Buffer
	Initialize(config.LoggerConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "goo",
		LogFile:     path,
		MaxSize:     1,
	}, zapcore.AddSync(&console))

	GetLogger().Info("to file", zap.Int("tick", 7))
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "to file", entry["msg"])
	assert.EqualValues(t, 7, entry["tick"])
}

func TestInitializeRunsOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&first))
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))
	GetLogger().Info("once")
	require.NoError(t, Sync())

	assert.Contains(t, first.String(), "once")
	assert.Empty(t, second.String())
}

func TestGetLoggerBeforeInitializeIsSilent(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

// syncErrWriter discards writes and fails every Sync with err.
type syncErrWriter struct{ err error }

func (w syncErrWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w syncErrWriter) Sync() error                 { return w.err }

func TestSyncDropsTerminalErrors(t *testing.T) {
	for _, errno := range []error{syscall.EINVAL, syscall.ENOTTY} {
		ResetForTest()
		Initialize(config.LoggerConfig{Level: "info", Format: "json"}, syncErrWriter{err: errno})
		assert.NoError(t, Sync(), "errno %v", errno)
	}
	ResetForTest()
	t.Cleanup(ResetForTest)

	diskFull := errors.New("disk full")
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, syncErrWriter{err: diskFull})
	assert.ErrorIs(t, Sync(), diskFull)
}

func TestSyncBeforeInitialize(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	assert.NoError(t, Sync())
}

func TestNilConsoleLogsOnlyToFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	Initialize(config.LoggerConfig{Level: "debug", Format: "console"}, nil)
	assert.False(t, GetLogger().Core().Enabled(zapcore.ErrorLevel))

	ResetForTest()
	path := filepath.Join(t.TempDir(), "ui.log")
	Initialize(config.LoggerConfig{Level: "info", Format: "console", LogFile: path}, nil)
	GetLogger().Info("from the ui")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "from the ui")
}
