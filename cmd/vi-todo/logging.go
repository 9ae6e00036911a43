package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "vi-todo.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging opens logs/vi-todo.log when debug is set, rotating it past maxLogSize.
// Logs never go to stdout or stderr, which belong to the terminal session.
func setupLogging(debug bool, level string) (*os.File, zerolog.Logger) {
	if !debug {
		return nil, zerolog.Nop()
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, zerolog.Nop()
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("vi-todo-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, zerolog.Nop()
	}

	log := zerolog.New(f).Level(parseLogLevel(level)).With().Timestamp().Logger()
	log.Info().Int("pid", os.Getpid()).Msg("logging started")
	return f, log
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
