// Package treewm implements the window manager's container tree: the
// in-memory model of outputs, workspaces, tiling containers and views,
// with the invariants, lifecycle and mutation operations of spec §3–§4.2.
//
// Nodes are realized as a tagged sum (Kind plus kind-gated fields) stored
// in a single arena.Arena[Node], per the "arena + 64-bit id" strategy
// spec.md's design notes call out as preferred: parent, FocusedChild and
// every focus-stack entry are plain arena.ID values, so they are
// automatically weak — a deleted node's id simply stops resolving,
// satisfying invariant 7 without any reference counting.
package treewm

import "github.com/wmcore/corewm/internal/arena"

// Kind tags which variant of the tree a Node is.
type Kind uint8

const (
	KindRoot Kind = iota
	KindOutput
	KindWorkspace
	KindContainer
	KindView
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindOutput:
		return "output"
	case KindWorkspace:
		return "workspace"
	case KindContainer:
		return "container"
	case KindView:
		return "view"
	default:
		return "unknown"
	}
}

// Layout is the arrangement strategy a parent node imposes on its
// children. It is meaningful only for Output, Workspace and Container
// nodes.
type Layout uint8

const (
	LayoutNone Layout = iota
	LayoutHoriz
	LayoutVert
	LayoutTabbed
	LayoutStacked
)

func (l Layout) String() string {
	switch l {
	case LayoutHoriz:
		return "splith"
	case LayoutVert:
		return "splitv"
	case LayoutTabbed:
		return "tabbed"
	case LayoutStacked:
		return "stacked"
	default:
		return "none"
	}
}

// Tiled reports whether l arranges children side by side (as opposed to
// one-at-a-time).
func (l Layout) Tiled() bool { return l == LayoutHoriz || l == LayoutVert }

// BorderStyle is a View's border decoration mode, settable with the
// "border" command. The core never draws anything itself (rendering is
// a Non-goal); this is state surfaced through GET_TREE for backends and
// status tooling that do draw decorations, mirroring sway's
// view->border field.
type BorderStyle uint8

const (
	BorderNormal BorderStyle = iota // default: titlebar plus border
	BorderNone
	BorderPixel
)

func (b BorderStyle) String() string {
	switch b {
	case BorderNone:
		return "none"
	case BorderPixel:
		return "pixel"
	default:
		return "normal"
	}
}

// SurfaceHandle is the backend's opaque identifier for a mapped surface.
// The core never interprets it; it is passed back verbatim to backend
// calls such as SetGeometry.
type SurfaceHandle interface{}

// Node is one element of the container tree. Fields below the "common"
// group are kind-gated: a field is meaningful only for the Kind(s) noted
// in its comment, mirroring spec §9's NodeCommon/NodeKind split without
// the indirection of a Go interface per kind (a Node is a value type so it
// can live directly in the arena and be copied cheaply by id).
type Node struct {
	ID   arena.ID
	Kind Kind
	Name string // UTF-8; required for Output/Workspace/View, may be empty for Container

	X, Y, W, H int

	Layout Layout  // Output/Workspace/Container
	Weight float64 // relative size along the parent's main axis; default 1.0

	Parent arena.ID // weak back-edge; zero for Root

	Children arena.List // Output: workspaces. Workspace/Container: tiled children.
	Floating arena.List // Workspace only

	FocusedChild arena.ID // weak; element of Children or Floating, or zero

	Visible bool

	GapsInner, GapsOuter int

	// View-only.
	IsFloating   bool
	IsFullscreen bool
	Surface      SurfaceHandle
	DesiredW     int
	DesiredH     int
	FloatX       int // stored floating geometry, used when re-floated
	FloatY       int
	FloatW       int
	FloatH       int
	AppID        string
	Title        string
	Border       BorderStyle
	BorderWidth  int // pixel thickness when Border == BorderPixel

	// Output-only.
	Scale          float64
	BackendOutput  string // opaque backend output id
	OutputX        int    // position in the global output layout
	OutputY        int

	// Workspace-only.
	OutputPriority int

	// Container/Workspace (Tabbed/Stacked only): height in pixels of the
	// tab/title-bar strip most recently computed by arrange, reported so
	// the input layer can hit-test clicks on the strip (spec §4.3).
	HeaderH int
}

// DefaultWeight is the weight assigned to a node that does not specify
// one, per spec §3.
const DefaultWeight = 1.0

// DefaultBorderWidth is the pixel thickness a newly mapped View starts
// with, matching sway's default.
const DefaultBorderWidth = 2

// children returns the ordered sequence a node arranges: Floating for a
// Workspace is visually "in front" and is searched first by descendant
// search, but Children is still what arrange() walks for tiling layout.
func (n *Node) childList(includeFloating bool) []arena.ID {
	if includeFloating && n.Kind == KindWorkspace {
		out := make([]arena.ID, 0, n.Floating.Len()+n.Children.Len())
		out = append(out, n.Floating.Slice()...)
		out = append(out, n.Children.Slice()...)
		return out
	}
	return n.Children.Slice()
}

// ContentRect returns the node's geometry minus its outer gap, the
// rectangle its children are arranged within.
func (n *Node) ContentRect() (x, y, w, h int) {
	g := n.GapsOuter
	x, y, w, h = n.X+g, n.Y+g, n.W-2*g, n.H-2*g
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return
}
