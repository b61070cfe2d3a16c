package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const logsDir = "logs"

// NewLogger builds the process logger. Output goes to stdout unless
// LOG_FILE is set, in which case entries are written asynchronously to
// logs/<LOG_FILE> and mirrored to the console.
func NewLogger(serverType string) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))

	fileName := os.Getenv("LOG_FILE")
	if fileName == "" {
		logger.SetOutput(os.Stdout)
		return logger
	}

	logFile := filepath.Clean(filepath.Join(logsDir, filepath.Base(fileName)))
	if !strings.HasPrefix(logFile, logsDir+string(filepath.Separator)) {
		log.Fatalf("invalid log file path: must be in %s directory", logsDir)
	}
	if err := os.MkdirAll(logsDir, 0750); err != nil {
		log.Fatalf("failed to create logs directory: %v", err)
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		log.Fatalf("failed to initialize async log writer: %v", err)
	}
	logger.SetOutput(asyncWriter)
	logger.AddHook(NewConsoleHook(os.Stdout))
	logger.WithField("server", serverType).Info("logging to file")

	return logger
}

// NewNopLogger discards everything; used by tests.
func NewNopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func parseLevel(raw string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
