// Package logging builds the single *zap.Logger threaded through the
// window manager core via Context. No package in this module keeps a
// package-level logger; every component receives one explicitly.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the root logger.
type Options struct {
	Debug bool
}

// New builds the root logger. Debug mode uses a human-readable development
// encoder at Debug level; the default is a JSON production encoder at Info
// level, matching how a long-running WM process's logs get scraped by a
// supervisor (systemd/journald) rather than read by a human on a terminal.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}

// Nop returns a logger that discards everything, used by tests that do not
// care about log output.
func Nop() *zap.Logger { return zap.NewNop() }
