package zap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ochairo/thirdparty/internal/domain/interfaces"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, observed := observer.New(level)
	return Wrap(zap.New(core)), observed
}

func TestLoggerLevels(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)

	logger.Debug("debug message")
	logger.Info("info message", interfaces.F("artifact", "g--a--1.0"))
	logger.Warn("warn message", interfaces.F("count", 2))
	logger.Error("error message")

	entries := observed.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "g--a--1.0", entries[1].ContextMap()["artifact"])
	assert.Equal(t, int64(2), entries[2].ContextMap()["count"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLoggerWith(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.InfoLevel)

	logger.With(interfaces.F("run_id", "abc")).Info("started")
	logger.Debug("filtered out")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0].ContextMap()["run_id"])
}

func TestNilLoggerFallsBackToNop(t *testing.T) {
	var nilLogger *Logger

	assert.NotPanics(t, func() {
		nilLogger.Info("message")
		(&Logger{}).Warn("message")
	})
}

func TestNew(t *testing.T) {
	for _, cfg := range []Config{{}, {Level: "debug", Format: FormatJSON}, {Level: "warn", Format: FormatConsole}} {
		logger, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}
