package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger создаёт zap логгер: JSON в production, цветную консоль в остальных окружениях
func NewLogger(env string) *zap.Logger {
	logger, err := loggerConfig(env).Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return logger
}

func loggerConfig(env string) zap.Config {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "time"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		// каждое обновление должно попасть в журнал вместе со своим request_id
		config.Sampling = nil
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}

	config.OutputPaths = []string{"stdout"}
	config.InitialFields = map[string]interface{}{"service": "salon_bot", "env": env}

	return config
}
