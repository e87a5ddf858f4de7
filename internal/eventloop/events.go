package eventloop

import (
	"github.com/wmcore/corewm/internal/backend"
	"github.com/wmcore/corewm/internal/treewm"
)

// backendEvent is the tagged union Loop funnels through eventPump.
// Wrapping each backend.Core callback's arguments in its own struct
// keeps Loop.handle's type switch free of reflection; requiring each
// struct to implement isBackendEvent means a caller that sends some
// unrelated type fails at compile time instead of falling through
// Loop.handle's switch silently at runtime, which a bare interface{}
// pump could not catch.
type backendEvent interface {
	isBackendEvent()
}

type outputAddedEvent struct{ info backend.OutputInfo }
type outputRemovedEvent struct{ handle treewm.SurfaceHandle }
type outputChangedEvent struct{ info backend.OutputInfo }

type viewMappedEvent struct{ ev backend.ViewMapEvent }
type viewUnmappedEvent struct{ handle treewm.SurfaceHandle }
type viewTitleChangedEvent struct {
	handle treewm.SurfaceHandle
	title  string
}
type viewRequestFullscreenEvent struct {
	handle treewm.SurfaceHandle
	want   bool
}

type keyInputEvent struct{ ev backend.KeyEvent }
type pointerInputEvent struct{ ev backend.PointerEvent }
type touchInputEvent struct{ ev backend.TouchEvent }
type tabletInputEvent struct{ ev backend.TabletEvent }

func (outputAddedEvent) isBackendEvent()            {}
func (outputRemovedEvent) isBackendEvent()          {}
func (outputChangedEvent) isBackendEvent()          {}
func (viewMappedEvent) isBackendEvent()             {}
func (viewUnmappedEvent) isBackendEvent()           {}
func (viewTitleChangedEvent) isBackendEvent()       {}
func (viewRequestFullscreenEvent) isBackendEvent()  {}
func (keyInputEvent) isBackendEvent()               {}
func (pointerInputEvent) isBackendEvent()           {}
func (touchInputEvent) isBackendEvent()             {}
func (tabletInputEvent) isBackendEvent()            {}
