// Package faketest provides an in-memory backend.Backend used by
// internal/eventloop's own tests and by any package that wants to drive
// a WM core without a real display connection — the same role
// golang-exp/shiny's test-only "erscreen"/stub screens play for
// widget tests, generalized into something synthetic events can be
// injected through.
package faketest

import (
	"sync"

	"github.com/wmcore/corewm/internal/backend"
	"github.com/wmcore/corewm/internal/layout"
	"github.com/wmcore/corewm/internal/treewm"
)

// Backend is a fully in-memory backend.Backend. All Set*/Activate/Close
// calls are recorded rather than acted on, and synthetic events are
// delivered to a Core via the Inject* methods, synchronously on the
// caller's goroutine — tests stay single-threaded, matching spec §5's
// own "exclusive access to the tree on every callback" model.
type Backend struct {
	mu sync.Mutex

	outputs map[treewm.SurfaceHandle]backend.OutputInfo
	core    backend.Core
	closed  chan struct{}

	// Recorded calls, inspected by tests.
	Geometry     map[treewm.SurfaceHandle]layout.Rect
	Fullscreen   map[treewm.SurfaceHandle]bool
	Activated    map[treewm.SurfaceHandle]bool
	Raised       []treewm.SurfaceHandle
	Lowered      []treewm.SurfaceHandle
	Entered      []treewm.SurfaceHandle
	Left         []treewm.SurfaceHandle
	ClosedViews  []treewm.SurfaceHandle
	Warps        []WarpCall
	CursorWarps  []CursorWarp
	CursorLoads  []CursorLoad
}

// WarpCall records a focus.Notifier.WarpPointerToCenter call.
type WarpCall struct{ X, Y, W, H int }

// CursorWarp records a Backend.WarpCursor call.
type CursorWarp struct{ X, Y int }

// CursorLoad records a Backend.LoadCursor call.
type CursorLoad struct {
	Output treewm.SurfaceHandle
	Name   string
}

// New builds an empty fake backend.
func New() *Backend {
	return &Backend{
		outputs:    map[treewm.SurfaceHandle]backend.OutputInfo{},
		closed:     make(chan struct{}),
		Geometry:   map[treewm.SurfaceHandle]layout.Rect{},
		Fullscreen: map[treewm.SurfaceHandle]bool{},
		Activated:  map[treewm.SurfaceHandle]bool{},
	}
}

// --- layout.SurfaceArranger ---

func (b *Backend) SetGeometry(handle treewm.SurfaceHandle, rect layout.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Geometry[handle] = rect
	return nil
}

func (b *Backend) SetFullscreen(handle treewm.SurfaceHandle, fullscreen bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Fullscreen[handle] = fullscreen
	return nil
}

func (b *Backend) BringToFront(handle treewm.SurfaceHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Raised = append(b.Raised, handle)
	return nil
}

// --- focus.Notifier ---

func (b *Backend) Activate(handle treewm.SurfaceHandle, activated bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Activated[handle] = activated
	return nil
}

func (b *Backend) KeyboardEnter(handle treewm.SurfaceHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Entered = append(b.Entered, handle)
	return nil
}

func (b *Backend) KeyboardLeave(handle treewm.SurfaceHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Left = append(b.Left, handle)
	return nil
}

func (b *Backend) WarpPointerToCenter(x, y, w, h int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Warps = append(b.Warps, WarpCall{x, y, w, h})
	return nil
}

// --- command.Closer ---

func (b *Backend) Close(handle treewm.SurfaceHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ClosedViews = append(b.ClosedViews, handle)
	return nil
}

// --- backend.Backend's remaining surface ---

func (b *Backend) SendToBack(handle treewm.SurfaceHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Lowered = append(b.Lowered, handle)
	return nil
}

func (b *Backend) WarpCursor(x, y int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.CursorWarps = append(b.CursorWarps, CursorWarp{x, y})
	return nil
}

func (b *Backend) LoadCursor(output treewm.SurfaceHandle, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.CursorLoads = append(b.CursorLoads, CursorLoad{output, name})
	return nil
}

func (b *Backend) LayoutContains(output treewm.SurfaceHandle, x, y int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	info, ok := b.outputs[output]
	if !ok {
		return false
	}
	return x >= info.X && x < info.X+info.W && y >= info.Y && y < info.Y+info.H
}

func (b *Backend) Outputs() []backend.OutputInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]backend.OutputInfo, 0, len(b.outputs))
	for _, info := range b.outputs {
		out = append(out, info)
	}
	return out
}

// Run records core and blocks until Shutdown is called, mirroring a
// real backend's event-read loop lifetime without actually reading
// anything; tests drive events with the Inject* methods from another
// goroutine once Run has attached core. Events injected before that are
// not delivered (AddOutput still registers the output).
func (b *Backend) Run(core backend.Core) error {
	b.mu.Lock()
	b.core = core
	b.mu.Unlock()
	<-b.closed
	return nil
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case <-b.closed:
	default:
		close(b.closed)
	}
	return nil
}

// --- synthetic event injection ---

// AddOutput registers an output and, if a Core is attached, fires
// OutputAdded synchronously.
func (b *Backend) AddOutput(info backend.OutputInfo) {
	b.mu.Lock()
	b.outputs[info.Handle] = info
	core := b.core
	b.mu.Unlock()
	if core != nil {
		core.OutputAdded(info)
	}
}

// RemoveOutput drops an output and fires OutputRemoved.
func (b *Backend) RemoveOutput(handle treewm.SurfaceHandle) {
	b.mu.Lock()
	delete(b.outputs, handle)
	core := b.core
	b.mu.Unlock()
	if core != nil {
		core.OutputRemoved(handle)
	}
}

// InjectViewMapped fires Core.ViewMapped.
func (b *Backend) InjectViewMapped(ev backend.ViewMapEvent) {
	if b.core != nil {
		b.core.ViewMapped(ev)
	}
}

// InjectViewUnmapped fires Core.ViewUnmapped.
func (b *Backend) InjectViewUnmapped(handle treewm.SurfaceHandle) {
	if b.core != nil {
		b.core.ViewUnmapped(handle)
	}
}

// InjectTitleChanged fires Core.ViewTitleChanged.
func (b *Backend) InjectTitleChanged(handle treewm.SurfaceHandle, title string) {
	if b.core != nil {
		b.core.ViewTitleChanged(handle, title)
	}
}

// InjectRequestFullscreen fires Core.ViewRequestFullscreen.
func (b *Backend) InjectRequestFullscreen(handle treewm.SurfaceHandle, want bool) {
	if b.core != nil {
		b.core.ViewRequestFullscreen(handle, want)
	}
}

// InjectKey fires Core.KeyInput.
func (b *Backend) InjectKey(ev backend.KeyEvent) {
	if b.core != nil {
		b.core.KeyInput(ev)
	}
}

// InjectPointer fires Core.PointerInput.
func (b *Backend) InjectPointer(ev backend.PointerEvent) {
	if b.core != nil {
		b.core.PointerInput(ev)
	}
}

// InjectTouch fires Core.TouchInput.
func (b *Backend) InjectTouch(ev backend.TouchEvent) {
	if b.core != nil {
		b.core.TouchInput(ev)
	}
}

// InjectTablet fires Core.TabletInput.
func (b *Backend) InjectTablet(ev backend.TabletEvent) {
	if b.core != nil {
		b.core.TabletInput(ev)
	}
}

var _ backend.Backend = (*Backend)(nil)
