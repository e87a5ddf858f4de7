//go:build glfwdemo

// Package glfwdemo is an optional, build-tag-gated demo backend that
// opens real OS windows to stand in for client views, rather than
// reparenting other processes' windows the way a production Wayland or
// X11 backend would. It is grounded on cogentcore-core's
// driver/desktop package: glfw.Init/glfw.CreateWindow/SetKeyCallback/
// SetPosCallback and the GetPrimaryMonitor video-mode query for output
// enumeration all follow that driver's shape.
//
// Each "view" the window manager maps is actually a window this
// package itself creates (via SpawnView), sized and positioned by
// whatever the layout engine decides — useful for watching the tiling
// algorithm move and resize real windows on screen during manual
// testing, which a pure unit test over faketest cannot show.
package glfwdemo

import (
	"fmt"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/wmcore/corewm/internal/backend"
	"github.com/wmcore/corewm/internal/layout"
	"github.com/wmcore/corewm/internal/treewm"
)

// Backend drives a single glfw.Monitor's worth of output and a set of
// glfw.Window views it owns. glfw requires its calls to happen on the
// thread that called glfw.Init; New does not lock the OS thread itself
// (see New), and Run and SpawnView must be called from the same
// goroutine that built the Backend.
type Backend struct {
	log *zap.Logger

	mu    sync.Mutex
	views map[treewm.SurfaceHandle]*glfw.Window
	next  int

	core   backend.Core
	closed chan struct{}
}

// New initializes glfw. Callers must arrange for the calling goroutine
// to stay pinned (runtime.LockOSThread) for the Backend's lifetime, the
// same constraint cogentcore-core's desktop driver documents for its
// own glfw usage.
func New(log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwdemo: glfw.Init: %w", err)
	}
	return &Backend{
		log:    log,
		views:  map[treewm.SurfaceHandle]*glfw.Window{},
		closed: make(chan struct{}),
	}, nil
}

func (b *Backend) Outputs() []backend.OutputInfo {
	mon := glfw.GetPrimaryMonitor()
	mode := mon.GetVideoMode()
	x, y := mon.GetPos()
	return []backend.OutputInfo{{
		Handle: treewm.SurfaceHandle("primary"),
		Name:   mon.GetName(),
		X:      x,
		Y:      y,
		W:      mode.Width,
		H:      mode.Height,
		Scale:  1,
	}}
}

// SpawnView opens a new glfw window and reports it to core as a mapped
// view, simulating a client surface appearing. Test harnesses call this
// in place of a real client connecting.
func (b *Backend) SpawnView(title string) (treewm.SurfaceHandle, error) {
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	win, err := glfw.CreateWindow(640, 480, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfwdemo: CreateWindow: %w", err)
	}

	b.mu.Lock()
	b.next++
	handle := treewm.SurfaceHandle(fmt.Sprintf("view-%d", b.next))
	b.views[handle] = win
	b.mu.Unlock()

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if b.core == nil {
			return
		}
		b.core.KeyInput(backend.KeyEvent{
			Seat:    "seat0",
			Keysym:  uint32(key),
			Mods:    uint32(mods),
			Pressed: action != glfw.Release,
		})
	})
	win.SetCloseCallback(func(*glfw.Window) {
		if b.core != nil {
			b.core.ViewUnmapped(handle)
		}
	})

	if b.core != nil {
		b.core.ViewMapped(backend.ViewMapEvent{Handle: handle, Title: title, DesiredW: 640, DesiredH: 480})
	}
	return handle, nil
}

// Run polls glfw's event queue until Shutdown is called. It must run on
// the same OS thread New was called from.
func (b *Backend) Run(core backend.Core) error {
	b.mu.Lock()
	b.core = core
	b.mu.Unlock()

	core.OutputAdded(b.Outputs()[0])

	for {
		select {
		case <-b.closed:
			return nil
		default:
		}
		glfw.WaitEventsTimeout(0.05)
	}
}

func (b *Backend) Shutdown() error {
	select {
	case <-b.closed:
	default:
		close(b.closed)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range b.views {
		w.Destroy()
	}
	glfw.Terminate()
	return nil
}

// --- layout.SurfaceArranger ---

func (b *Backend) SetGeometry(handle treewm.SurfaceHandle, rect layout.Rect) error {
	w, ok := b.window(handle)
	if !ok {
		return fmt.Errorf("glfwdemo: unknown view %v", handle)
	}
	w.SetPos(rect.X, rect.Y)
	w.SetSize(rect.W, rect.H)
	return nil
}

// SetFullscreen is a no-op: faking fullscreen by maximizing a demo
// window adds no coverage the layout engine's own fullscreen-rect
// arrangement doesn't already exercise via SetGeometry.
func (b *Backend) SetFullscreen(treewm.SurfaceHandle, bool) error { return nil }

func (b *Backend) BringToFront(handle treewm.SurfaceHandle) error {
	w, ok := b.window(handle)
	if !ok {
		return fmt.Errorf("glfwdemo: unknown view %v", handle)
	}
	w.Focus()
	return nil
}

func (b *Backend) SendToBack(treewm.SurfaceHandle) error { return nil }

// --- focus.Notifier ---

func (b *Backend) Activate(handle treewm.SurfaceHandle, activated bool) error {
	if !activated {
		return nil
	}
	w, ok := b.window(handle)
	if !ok {
		return fmt.Errorf("glfwdemo: unknown view %v", handle)
	}
	w.Focus()
	return nil
}

func (b *Backend) KeyboardEnter(treewm.SurfaceHandle) error { return nil }
func (b *Backend) KeyboardLeave(treewm.SurfaceHandle) error { return nil }

func (b *Backend) WarpPointerToCenter(x, y, w, h int) error {
	glfw.GetPrimaryMonitor() // positioning an OS cursor is out of glfw's per-window API; no-op for this demo.
	return nil
}

// --- command.Closer ---

func (b *Backend) Close(handle treewm.SurfaceHandle) error {
	w, ok := b.window(handle)
	if !ok {
		return fmt.Errorf("glfwdemo: unknown view %v", handle)
	}
	w.SetShouldClose(true)
	w.Destroy()
	b.mu.Lock()
	delete(b.views, handle)
	b.mu.Unlock()
	return nil
}

func (b *Backend) WarpCursor(x, y int) error { return nil }

func (b *Backend) LoadCursor(treewm.SurfaceHandle, string) error { return nil }

func (b *Backend) LayoutContains(output treewm.SurfaceHandle, x, y int) bool {
	info := b.Outputs()[0]
	return output == info.Handle && x >= info.X && x < info.X+info.W && y >= info.Y && y < info.Y+info.H
}

func (b *Backend) window(h treewm.SurfaceHandle) (*glfw.Window, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.views[h]
	return w, ok
}

var _ backend.Backend = (*Backend)(nil)
