// Package applog builds the process-wide logrus logger.
package applog

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// GetLogrus returns the shared logger, creating a default one on first use.
func GetLogrus() *logrus.Logger {
	once.Do(func() {
		if logger == nil {
			logger = New("dev", "info", os.Stdout)
		}
	})
	return logger
}

// Configure replaces the shared logger with one built from the environment
// name and level.  It is called once from main before anything logs.
func Configure(env, level string) *logrus.Logger {
	l := New(env, level, os.Stdout)
	once.Do(func() {})
	logger = l
	return l
}

// New builds a logger writing to w.  Production uses the JSON formatter;
// every other environment gets coloured text.  Unknown levels fall back to
// info.
func New(env, level string, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	if env == "prod" || env == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Discard is a logger that drops everything; tests use it.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
