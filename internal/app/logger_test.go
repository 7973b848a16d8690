package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLoggerConfig(t *testing.T) {
	prod := loggerConfig("production")
	assert.Equal(t, "json", prod.Encoding)
	assert.Equal(t, zapcore.InfoLevel, prod.Level.Level())
	assert.Nil(t, prod.Sampling)
	assert.Equal(t, "salon_bot", prod.InitialFields["service"])

	dev := loggerConfig("development")
	assert.Equal(t, "console", dev.Encoding)
	assert.Equal(t, zapcore.DebugLevel, dev.Level.Level())
	assert.Equal(t, "development", dev.InitialFields["env"])
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test")
	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
