package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return FromZap(zap.New(core)), logs
}

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.sugar)
}

func TestInfo(t *testing.T) {
	logger, logs := newObserved(zapcore.DebugLevel)

	logger.Info("Test message: %s", "info")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Test message: info", entries[0].Message)
}

func TestError(t *testing.T) {
	logger, logs := newObserved(zapcore.DebugLevel)

	logger.Error("Failed to process request %d: %s", 404, "not found")

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "Failed to process request 404: not found", entries[0].Message)
}

func TestWarn(t *testing.T) {
	logger, logs := newObserved(zapcore.DebugLevel)

	logger.Warn("Warning: %s count is %d", "items", 5)

	assert.Equal(t, 1, logs.FilterMessage("Warning: items count is 5").Len())
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, logs := newObserved(zapcore.InfoLevel)

	logger.Debug("hidden")
	logger.Info("Info 1")
	logger.Warn("Warn 1")
	logger.Error("Error 1")

	assert.Equal(t, 3, logs.Len())
	assert.Equal(t, 0, logs.FilterMessage("hidden").Len())
}

func TestWriter(t *testing.T) {
	logger, logs := newObserved(zapcore.DebugLevel)

	_, err := logger.Writer().Write([]byte("[GIN] 200 | GET /board/list\n"))

	assert.NoError(t, err)
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "[GIN] 200 | GET /board/list", entries[0].Message)
}
