package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

// logFiles holds the log file ConfigureLogger opened for each logger
var (
	logFilesMu sync.Mutex
	logFiles   = map[*logrus.Logger]*os.File{}
)

// NewLogger creates a logger configured from REPLAYLIST_LOG_* environment
// variables. It writes to stderr; stdout carries command results only.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(os.Getenv("REPLAYLIST_LOG_LEVEL"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(newFormatter(
		strings.ToLower(os.Getenv("REPLAYLIST_LOG_FORMAT")),
		isColorEnabled(),
	))

	return logger
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level   string
	Format  string
	Color   bool
	File    string
	Verbose bool
}

// ConfigureLogger applies config to an existing logger. A log file that cannot
// be opened is reported as an error and leaves the output unchanged. A log file
// opened by an earlier call is closed when it is replaced.
func ConfigureLogger(logger *logrus.Logger, config LoggerConfig) error {
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else if level, err := logrus.ParseLevel(config.Level); err == nil {
		logger.SetLevel(level)
	}

	logger.SetFormatter(newFormatter(config.Format, config.Color && isColorEnabled()))

	if config.File != "" {
		file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", config.File, err)
		}
		logger.SetOutput(file)

		logFilesMu.Lock()
		previous := logFiles[logger]
		logFiles[logger] = file
		logFilesMu.Unlock()

		if previous != nil {
			_ = previous.Close()
		}
	}

	return nil
}

// CloseLogFile closes the log file ConfigureLogger opened for logger, if any,
// and sends further output to stderr
func CloseLogFile(logger *logrus.Logger) error {
	logFilesMu.Lock()
	file, ok := logFiles[logger]
	delete(logFiles, logger)
	logFilesMu.Unlock()

	if !ok {
		return nil
	}
	logger.SetOutput(os.Stderr)
	return file.Close()
}

// NewTestLogger returns a logger that writes to w at debug level
func NewTestLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(newFormatter("text", false))
	return logger
}

func newFormatter(format string, color bool) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		DisableColors:   !color,
	}
}

// isColorEnabled checks if colored output is enabled
func isColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return strings.ToLower(os.Getenv("REPLAYLIST_LOG_COLOR")) != "false"
}
