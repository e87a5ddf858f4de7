//go:build x11

package main

import (
	"go.uber.org/zap"

	"github.com/wmcore/corewm/internal/backend"
	"github.com/wmcore/corewm/internal/backend/x11"
)

func newBackend(log *zap.Logger) (backend.Backend, error) {
	return x11.New(log)
}
