// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Supports JSON or text output with optional size-based file rotation

package structured

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a Logger
type Options struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is json or text
	Format string

	// File enables rotated file output in addition to stdout
	File string

	// Output overrides stdout, mainly for tests
	Output io.Writer
}

// Logger implements interfaces.Logger using logrus
type Logger struct {
	entry  *logrus.Logger
	closer io.Closer
}

// New creates a logger from options
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "", "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	logger := &Logger{entry: l}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		logger.closer = rotator
		out = io.MultiWriter(out, rotator)
	}
	l.SetOutput(out)

	return logger, nil
}

// NewDefault returns an info-level JSON logger on stdout
func NewDefault() *Logger {
	logger, _ := New(Options{})
	return logger
}

func parseLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.InfoLevel, nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return parsed, nil
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

// Close flushes and closes the rotated log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
