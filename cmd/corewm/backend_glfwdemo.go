//go:build glfwdemo

package main

import (
	"go.uber.org/zap"

	"github.com/wmcore/corewm/internal/backend"
	"github.com/wmcore/corewm/internal/backend/glfwdemo"
)

func newBackend(log *zap.Logger) (backend.Backend, error) {
	return glfwdemo.New(log)
}
