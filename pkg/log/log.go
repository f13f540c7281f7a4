// Package log provides the Logger used throughout the emulator.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used by the emulator.
// A *logrus.Logger satisfies it.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// New returns a Logger writing plain text to stdout at info level.
func New() Logger {
	return NewWithLevel(logrus.InfoLevel)
}

// NewWithLevel returns a Logger writing plain text to stdout,
// discarding anything below level.
func NewWithLevel(level logrus.Level) Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// NewWriter returns a debug level Logger writing to w.
func NewWriter(w io.Writer) Logger {
	l := NewWithLevel(logrus.DebugLevel).(*logrus.Logger)
	l.SetOutput(w)
	return l
}
