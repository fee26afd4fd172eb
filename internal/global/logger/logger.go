package logger

import (
	"os"

	"gitlab.com/codejudge.net/internal/adapter/logging"
)

// Logger is the bootstrap logger used before config is loaded and by main.
var Logger = logging.NewZapLogger(os.Getenv("DEBUG_MODE") == "true")

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
