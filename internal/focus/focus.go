// Package focus implements the per-seat focus model of spec §4.4: an
// ordered focus stack giving every seat its own notion of "currently
// focused" and "most recently focused descendant of X" (inactive-focus
// recall), directional navigation across the container tree and output
// layout, and the fallback logic that runs when a focused node is
// destroyed.
//
// A Seat owns no tree state itself — it holds only the MRU ordering of
// node ids, reconciled against the live treewm.Tree on every read. This
// keeps multiple seats (spec's multi-seat note) trivially independent:
// they share one Tree but never share a stack.
package focus

import (
	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
	"go.uber.org/zap"
)

// Direction is a directional-focus request, spec §4.4.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
	Parent
	Child
	Prev
	Next
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Parent:
		return "parent"
	case Child:
		return "child"
	case Prev:
		return "prev"
	case Next:
		return "next"
	default:
		return "unknown"
	}
}

// Notifier is the slice of the backend adapter the focus model drives
// directly: keyboard enter/leave and activated-state notifications, plus
// pointer warping on output-crossing focus changes. It is defined here,
// narrowly, rather than in the backend package, so focus depends on
// exactly the surface it calls (the "accept interfaces" idiom).
type Notifier interface {
	Activate(handle treewm.SurfaceHandle, activated bool) error
	KeyboardEnter(handle treewm.SurfaceHandle) error
	KeyboardLeave(handle treewm.SurfaceHandle) error
	WarpPointerToCenter(x, y, w, h int) error
}

// EventSink receives IPC-worthy focus events. The focus package does not
// depend on the ipc package directly; the glue layer wires an adapter
// that forwards to the IPC server's subscriber broadcast.
type EventSink interface {
	WorkspaceFocus(old, current arena.ID)
}

// OutputLayout answers the cross-output queries directional navigation
// needs: which output is physically adjacent in a direction, and which
// output is the extreme one in a direction (used when force-wrapping off
// the edge of the last output).
type OutputLayout interface {
	AdjacentOutput(from arena.ID, centerX, centerY int, dir Direction) (arena.ID, bool)
	ExtremeOutput(dir Direction) (arena.ID, bool)
}

// Seat is one input seat's focus state: an MRU-ordered stack of every
// live Workspace/Container/View id (spec invariant 6), most recent
// first.
type Seat struct {
	Name string

	stack []arena.ID

	notifier    Notifier
	sink        EventSink
	warpEnabled bool

	log *zap.Logger
}

// NewSeat creates a Seat. notifier and sink may be nil (tests exercise
// the stack/navigation logic without a backend or IPC server attached).
func NewSeat(name string, notifier Notifier, sink EventSink, warpEnabled bool, log *zap.Logger) *Seat {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seat{Name: name, notifier: notifier, sink: sink, warpEnabled: warpEnabled, log: log}
}

// sync reconciles the stack against the live tree: dead ids are dropped
// (spec invariant 7, "destroyed node vanishes from every focus_stack"),
// and any focusable node not yet represented is appended at the tail
// (least recently used), satisfying invariant 6 before any read.
func (s *Seat) sync(tree *treewm.Tree) {
	alive := s.stack[:0]
	seen := make(map[arena.ID]bool, len(s.stack))
	for _, id := range s.stack {
		if tree.Exists(id) {
			alive = append(alive, id)
			seen[id] = true
		}
	}
	s.stack = alive
	tree.EachFocusable(func(id arena.ID) {
		if !seen[id] {
			s.stack = append(s.stack, id)
		}
	})
}
