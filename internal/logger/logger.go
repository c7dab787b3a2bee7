package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log - общий логгер приложения
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogger настраивает zerolog с уровнем из конфига
func InitLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	Log = zerolog.New(writer).Level(lvl).With().Timestamp().Logger()

	return Log
}
