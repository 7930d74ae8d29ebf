package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var zlog = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitStructured initializes the structured zerolog logger
func InitStructured(env string) {
	InitWithWriter(env, nil)
}

// InitWithWriter initializes the logger writing to w. A nil w selects
// stdout: pretty console output for development, JSON otherwise.
func InitWithWriter(env string, w io.Writer) {
	if w == nil {
		if IsDevelopment(env) {
			w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		} else {
			w = os.Stdout
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339

	zlog = zerolog.New(w).With().
		Timestamp().
		Str("service", "rental-admin").
		Logger()

	if IsDevelopment(env) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// IsDevelopment reports whether env names a development environment
func IsDevelopment(env string) bool {
	return env == "development" || env == "dev" || env == "local"
}

// GetLogger returns the global zerolog logger
func GetLogger() *zerolog.Logger {
	return &zlog
}

// WithRequestID returns a logger with request_id field
func WithRequestID(requestID string) zerolog.Logger {
	return zlog.With().Str("request_id", requestID).Logger()
}
