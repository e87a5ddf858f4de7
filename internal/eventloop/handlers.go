package eventloop

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/backend"
	"github.com/wmcore/corewm/internal/command"
	"github.com/wmcore/corewm/internal/focus"
	"github.com/wmcore/corewm/internal/keybind"
	"github.com/wmcore/corewm/internal/treewm"
)

// handleOutputAdded creates the Output node and a default workspace for
// a newly announced display (spec §3 lifecycle: "Outputs created when
// backend announces a display"), naming the workspace after the
// output's ordinal position the way sway numbers default workspaces.
func (l *Loop) handleOutputAdded(info backend.OutputInfo) {
	id := l.tree.NewOutput(fmt.Sprint(info.Handle), info.Name)
	l.tree.UpdateNode(id, func(n *treewm.Node) {
		n.X, n.Y, n.W, n.H = info.X, info.Y, info.W, info.H
		n.Scale = info.Scale
		if n.Scale == 0 {
			n.Scale = 1
		}
	})
	l.outputsByHandle[info.Handle] = id

	wsName := fmt.Sprint(len(l.tree.Outputs()))
	ws, _ := l.tree.NewWorkspace(id, wsName)

	seat := l.Seat("seat0")
	if cur := seat.GetFocus(l.tree); !cur.Valid() {
		seat.SetFocus(l.tree, ws, false)
	}

	l.arrange()
	l.log.Info("output added", zap.String("name", info.Name), zap.Int("w", info.W), zap.Int("h", info.H))
}

func (l *Loop) handleOutputRemoved(handle treewm.SurfaceHandle) {
	id, ok := l.outputsByHandle[handle]
	if !ok {
		return
	}
	delete(l.outputsByHandle, handle)
	l.tree.RemoveOutput(id)
	l.arrange()
}

func (l *Loop) handleOutputChanged(info backend.OutputInfo) {
	id, ok := l.outputsByHandle[info.Handle]
	if !ok {
		l.handleOutputAdded(info)
		return
	}
	l.tree.UpdateNode(id, func(n *treewm.Node) {
		n.X, n.Y, n.W, n.H = info.X, info.Y, info.W, info.H
	})
	l.arrange()
}

// handleViewMapped creates a View for a newly mapped top-level window
// and gives it focus. The view is inserted right after the seat's
// focused node when that node lies inside a workspace, and appended to
// the workspace's tiling list when the workspace itself (or nothing)
// has focus.
func (l *Loop) handleViewMapped(ev backend.ViewMapEvent) {
	seat := l.Seat("seat0")
	view := l.tree.NewView(ev.Handle, ev.AppID, ev.Title, ev.DesiredW, ev.DesiredH)
	l.viewsByHandle[ev.Handle] = view

	target := seat.GetFocus(l.tree)
	ws := l.tree.WorkspaceOf(target)
	if !ws.Valid() {
		ws = l.defaultWorkspace()
	}
	switch {
	case !ws.Valid():
		// No output/workspace exists yet; nothing to attach to. This
		// should not happen once at least one output has been added.
	case target.Valid() && target != ws:
		// Focus is on a container or view within ws; place the new view
		// as its sibling instead of always appending to the workspace.
		l.tree.AddSibling(target, view)
	default:
		l.tree.AddChild(ws, view)
	}

	seat.SetFocus(l.tree, view, false)
	l.arrange()
}

// defaultWorkspace returns the first output's first workspace, used
// when no seat has a valid focus yet (startup race with the backend
// mapping a view before the first output's workspace is known).
func (l *Loop) defaultWorkspace() arena.ID {
	for _, out := range l.tree.Outputs() {
		n := l.tree.MustGet(out)
		if n.Children.Len() > 0 {
			return n.Children.Slice()[0]
		}
	}
	return 0
}

func (l *Loop) handleViewUnmapped(handle treewm.SurfaceHandle) {
	id, ok := l.viewsByHandle[handle]
	if !ok {
		return
	}
	delete(l.viewsByHandle, handle)

	former := focus.AncestorChain(l.tree, id)
	l.tree.Destroy(id)
	for _, seat := range l.seats {
		seat.HandleDestroyed(l.tree, former, false)
	}
	l.arrange()
}

func (l *Loop) handleTitleChanged(handle treewm.SurfaceHandle, title string) {
	id, ok := l.viewsByHandle[handle]
	if !ok {
		return
	}
	l.tree.UpdateNode(id, func(n *treewm.Node) { n.Title = title })
}

func (l *Loop) handleRequestFullscreen(handle treewm.SurfaceHandle, want bool) {
	id, ok := l.viewsByHandle[handle]
	if !ok {
		return
	}
	l.tree.UpdateNode(id, func(n *treewm.Node) { n.IsFullscreen = want })
	l.arrange()
}

// handleKey feeds a key event through the seat's matcher; a matched
// binding runs through the shared command.Context so it competes for
// ctx.Mu on equal footing with an IPC-issued COMMAND (spec §5's
// ordering guarantee: "a key press that matches a binding is consumed
// before any subsequent key event is dispatched to views").
func (l *Loop) handleKey(ev backend.KeyEvent) {
	name := keysymName(ev.Keysym)
	if name == "" {
		return
	}
	l.Seat(ev.Seat)
	matcher := l.matchers[ev.Seat]

	state := keybind.Pressed
	if !ev.Pressed {
		state = keybind.Released
	}
	cmd, matched := matcher.HandleKey(l.modes.Current(), name, state, keybind.Mod(ev.Mods))
	if !matched {
		return
	}
	for _, res := range l.ctx.RunBinding(cmd) {
		if res.Kind == command.Failure || res.Kind == command.Invalid {
			l.log.Warn("keybinding command did not succeed",
				zap.String("command", cmd), zap.String("result", res.Kind.String()), zap.String("message", res.Message))
		}
	}
}

// handlePointer accepts pointer events and ignores them: focus does not
// follow the pointer, and clicks neither focus nor raise views.
func (l *Loop) handlePointer(ev backend.PointerEvent) {
	_ = ev
}
