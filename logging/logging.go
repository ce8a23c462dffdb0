// Package logging configures the logrus standard logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/investo/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure applies cfg to a logger.
//
// Unknown levels default to warn. Logs go to stderr, or to a rotating file
// when one is configured.
func Configure(logger *logrus.Logger, cfg config.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}
	logger.SetOutput(output(cfg))
}

// output returns the writer for the configuration.
func output(cfg config.LoggingConfig) io.Writer {
	if cfg.File == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		logrus.WithError(err).Warn("cannot create log directory, logging to stderr")
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // days
		Compress:   cfg.Compress,
	}
}

// Init configures the standard logger, the one used by every package.
func Init(cfg config.LoggingConfig) {
	Configure(logrus.StandardLogger(), cfg)
}

// Component returns a logger tagged with a component name.
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
