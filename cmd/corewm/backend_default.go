//go:build !x11 && !glfwdemo

package main

import (
	"go.uber.org/zap"

	"github.com/wmcore/corewm/internal/backend"
	"github.com/wmcore/corewm/internal/backend/faketest"
)

// newBackend returns the headless in-memory backend when the binary is
// built without a display backend tag. It never produces input on its
// own; it exists so `corewm --validate` and test/CI invocations work
// without a display connection. A real deployment builds with
// `-tags x11` or `-tags glfwdemo`.
func newBackend(log *zap.Logger) (backend.Backend, error) {
	log.Warn("built without a display backend (-tags x11 or -tags glfwdemo); running headless")
	return faketest.New(), nil
}
