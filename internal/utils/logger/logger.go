package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var log *zap.Logger = zap.NewNop()

// Init builds the process-wide logger. Mode "prod" uses the production
// encoder, anything else the development one.
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)

	if mode == "prod" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	log = l
	return nil
}

// InitTestLogger installs a no-op logger for tests.
func InitTestLogger() {
	log = zap.NewNop()
}

func Sync() {
	_ = log.Sync()
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}
