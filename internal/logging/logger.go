// Package logging wires zerolog for the driver layer (cmd/simserver,
// internal/httpapi). The simulation core never imports this package: it
// stays log-free and exposes an optional StepLogger hook instead.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger installed by Init.
var Logger zerolog.Logger

var logFile *os.File

// Init configures Logger from LOG_LEVEL, LOG_FORMAT, and LOG_FILE. It may
// be called more than once; when a later call opens a new LOG_FILE, that
// file replaces the one Close will close, and the earlier file is not
// closed.
func Init() {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFilePath := os.Getenv("LOG_FILE")
	if logFilePath != "" && logFilePath != "none" && logFilePath != "disabled" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			log.Error().Err(err).Msg("failed to open log file, using stdout only")
		} else {
			logFile = f
		}
	}

	var writers []io.Writer
	if os.Getenv("LOG_FORMAT") == "pretty" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, os.Stdout)
	}
	if logFile != nil {
		writers = append(writers, logFile)
	}

	Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	log.Logger = Logger

	Logger.Info().Str("log_level", level.String()).Bool("file_sink", logFile != nil).Msg("logger initialized")
}

// Close flushes and closes the log file opened by Init, if any.
func Close() {
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
		logFile = nil
	}
}
