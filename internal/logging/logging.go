package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options controls where and how verbosely the application logs.
type Options struct {
	Level string
	File  string
}

// SetupLogging builds the application logger. Logs go to the configured file
// so stdout stays free for the interactive menu; when the file cannot be
// opened the logger falls back to stderr. The returned closer releases the
// file and is never nil.
func SetupLogging(opts Options) (*logrus.Logger, io.Closer) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stderr,
		Hooks: make(logrus.LevelHooks),
		Level: level,
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file, openErr := openLogFile(opts.File)
		if openErr != nil {
			logger.WithError(openErr).WithField("file", opts.File).Warn("Logging.Setup.fileUnavailable")
		} else {
			logger.Out = file
			closer = file
		}
	}

	return &logger, closer
}

// Discard returns a logger that drops everything, for tests and quiet callers.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
