// Package layout implements the recursive geometry solver of spec §4.3:
// given a root size, it assigns pixel rectangles to every node in a
// treewm.Tree, honoring per-node weights, gaps, layout kind, fullscreen
// and floating placement.
//
// The split between Measure/Layout passes in golang-exp's
// shiny/widget/node (this package's teacher) doesn't apply here — a
// tiling WM's containers have no intrinsic "natural size" the way widgets
// do, so this engine collapses both passes into the single arrange pass
// spec.md describes.
package layout

import (
	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
	"go.uber.org/zap"
)

// Rect is an integer pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// NoHint requests that Arrange use the node's current size along that
// axis instead of imposing a new one, mirroring spec.md's "width<0 or
// height<0" rule.
const NoHint = -1

// SurfaceArranger is the narrow slice of the backend adapter (C8) the
// layout engine needs: placing and raising view surfaces. It is defined
// here, not in the backend package, so this package only depends on what
// it actually calls — the same "accept interfaces" shape as
// shiny/widget/node.PaintContext narrowing Node.Paint's dependencies to a
// screen.Screen/Drawer pair.
type SurfaceArranger interface {
	SetGeometry(handle treewm.SurfaceHandle, rect Rect) error
	SetFullscreen(handle treewm.SurfaceHandle, fullscreen bool) error
	BringToFront(handle treewm.SurfaceHandle) error
}

// Options configures header/tab-strip bands. Config file syntax to set
// these is out of scope; callers wire in whatever value their own config
// loader produced.
type Options struct {
	TitleBarHeight int // Stacked container header row height, in pixels
	TabStripHeight int // Tabbed container tab strip height, in pixels
}

// DefaultOptions returns the engine's built-in defaults.
func DefaultOptions() Options {
	return Options{TitleBarHeight: 24, TabStripHeight: 24}
}

// Engine arranges a treewm.Tree onto a backend via a SurfaceArranger.
type Engine struct {
	tree    *treewm.Tree
	backend SurfaceArranger
	opts    Options
	log     *zap.Logger
}

// New builds an Engine. backend may be nil for tests that only assert on
// tree geometry fields and don't care about SetGeometry calls.
func New(tree *treewm.Tree, backend SurfaceArranger, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if backend == nil {
		backend = noopArranger{}
	}
	return &Engine{tree: tree, backend: backend, opts: opts, log: log}
}

type noopArranger struct{}

func (noopArranger) SetGeometry(treewm.SurfaceHandle, Rect) error   { return nil }
func (noopArranger) SetFullscreen(treewm.SurfaceHandle, bool) error { return nil }
func (noopArranger) BringToFront(treewm.SurfaceHandle) error        { return nil }

// Arrange is the single entry point (spec §4.3): it lays out node and its
// subtree. A negative width or height means "use the node's current
// size along that axis". Arrange has no fallible operations of its own;
// backend errors are logged and do not alter the tree.
func (e *Engine) Arrange(node arena.ID, width, height int) {
	n, ok := e.tree.Get(node)
	if !ok {
		return
	}
	if width < 0 {
		width = n.W
	}
	if height < 0 {
		height = n.H
	}

	switch n.Kind {
	case treewm.KindRoot:
		e.arrangeRoot(n)
	case treewm.KindOutput:
		e.arrangeOutput(n, width, height)
	case treewm.KindWorkspace:
		e.arrangeWorkspaceOrContainer(n, width, height)
	case treewm.KindContainer:
		e.arrangeWorkspaceOrContainer(n, width, height)
	case treewm.KindView:
		e.arrangeView(n, width, height)
	}
}

func (e *Engine) arrangeRoot(root treewm.Node) {
	for _, out := range root.Children.Slice() {
		e.Arrange(out, NoHint, NoHint)
	}
}

func (e *Engine) arrangeOutput(out treewm.Node, width, height int) {
	e.setGeom(out.ID, out.X, out.Y, width, height)
	out, _ = e.tree.Get(out.ID)
	x, y, w, h := out.ContentRect()
	for _, ws := range out.Children.Slice() {
		e.setPos(ws, x, y)
		e.Arrange(ws, w, h)
	}
}

// arrangeWorkspaceOrContainer implements the Workspace/Container switch of
// spec §4.3, which is the same dispatch for both kinds except Workspace
// also places its floating children afterwards.
func (e *Engine) arrangeWorkspaceOrContainer(n treewm.Node, width, height int) {
	e.setSize(n.ID, width, height)
	n, _ = e.tree.Get(n.ID)
	x, y, w, h := n.ContentRect()

	switch n.Layout {
	case treewm.LayoutHoriz:
		e.arrangeLinear(n, x, y, w, h, true)
	case treewm.LayoutVert:
		e.arrangeLinear(n, x, y, w, h, false)
	case treewm.LayoutTabbed:
		e.arrangeTabbed(n, x, y, w, h, e.opts.TabStripHeight)
	case treewm.LayoutStacked:
		e.arrangeTabbed(n, x, y, w, h, e.opts.TitleBarHeight)
	default:
		// LayoutNone: treat as Horiz, matching a freshly created
		// Container/Workspace before a layout command has been issued.
		e.arrangeLinear(n, x, y, w, h, true)
	}

	if n.Kind == treewm.KindWorkspace {
		e.arrangeFloating(n)
	}
}

func (e *Engine) arrangeView(n treewm.Node, width, height int) {
	if n.IsFullscreen {
		out, ok := e.tree.Get(e.tree.OutputOf(n.ID))
		if ok {
			e.setGeom(n.ID, out.X, out.Y, out.W, out.H)
			if err := e.backend.SetGeometry(n.Surface, Rect{out.X, out.Y, out.W, out.H}); err != nil {
				e.log.Warn("backend refused fullscreen geometry", zap.Error(err))
			}
			if err := e.backend.BringToFront(n.Surface); err != nil {
				e.log.Warn("backend refused bring-to-front", zap.Error(err))
			}
			return
		}
	}
	g := n.GapsInner
	rect := Rect{n.X + g, n.Y + g, clampNonNeg(width - 2*g), clampNonNeg(height - 2*g)}
	e.setSize(n.ID, width, height)
	if err := e.backend.SetGeometry(n.Surface, rect); err != nil {
		e.log.Warn("backend refused geometry", zap.String("app_id", n.AppID), zap.Error(err))
	}
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (e *Engine) setGeom(id arena.ID, x, y, w, h int) {
	e.tree.UpdateNode(id, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = x, y, w, h })
}

func (e *Engine) setPos(id arena.ID, x, y int) {
	e.tree.UpdateNode(id, func(n *treewm.Node) { n.X, n.Y = x, y })
}

func (e *Engine) setSize(id arena.ID, w, h int) {
	e.tree.UpdateNode(id, func(n *treewm.Node) { n.W, n.H = w, h })
}
