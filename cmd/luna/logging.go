package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "luna.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging opens logs/luna.log when debug is set, rotating it past maxLogSize
// Without debug the returned file is nil and the logger discards everything
// The terminal owns stdout and stderr, so the log never goes there
func setupLogging(debug bool) (*os.File, zerolog.Logger) {
	if !debug {
		return nil, zerolog.Nop()
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, zerolog.Nop()
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("luna-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, zerolog.Nop()
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	log := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return f, log
}
