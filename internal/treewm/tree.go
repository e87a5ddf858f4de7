package treewm

import (
	"strings"

	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/wmerrors"
	"go.uber.org/zap"
)

// Tree owns every node in the window manager's container tree. It is a
// single-owner structure: per spec §5, handlers mutate it directly under
// the event loop's exclusive access, with no internal locking.
type Tree struct {
	nodes *arena.Arena[Node]
	root  arena.ID
	log   *zap.Logger
}

// New creates a Tree with a freshly allocated Root node.
func New(log *zap.Logger) *Tree {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tree{nodes: arena.New[Node](), log: log}
	t.root = t.nodes.Insert(Node{Kind: KindRoot, Weight: DefaultWeight, Visible: true})
	t.nodes.Update(t.root, func(n *Node) { n.ID = t.root })
	return t
}

// Root returns the id of the tree's single Root node.
func (t *Tree) Root() arena.ID { return t.root }

// Get resolves id to its Node, reporting false if id is dead or unknown.
func (t *Tree) Get(id arena.ID) (Node, bool) { return t.nodes.Get(id) }

// MustGet resolves id, panicking (a TreeInvariant bug) if it does not
// currently live in the tree. Use only where the caller just obtained id
// from the tree itself in the same tick.
func (t *Tree) MustGet(id arena.ID) Node {
	n, ok := t.nodes.Get(id)
	if !ok {
		panic(wmerrors.Newf(wmerrors.TreeInvariant, "dangling id %v", id))
	}
	return n
}

// update applies fn to the live node at id, returning false if id is dead.
func (t *Tree) update(id arena.ID, fn func(*Node)) bool {
	return t.nodes.Update(id, fn)
}

// UpdateNode applies fn to the live node at id in place. It is exported
// for collaborating packages (layout, focus, command) that need to mutate
// geometry, focus or flags without a full Get/Set round trip.
func (t *Tree) UpdateNode(id arena.ID, fn func(*Node)) bool {
	return t.update(id, fn)
}

// Exists reports whether id currently resolves to a live node.
func (t *Tree) Exists(id arena.ID) bool {
	_, ok := t.nodes.Get(id)
	return ok
}

// Outputs returns the ids of all Output children of Root, in order.
func (t *Tree) Outputs() []arena.ID {
	root := t.MustGet(t.root)
	return append([]arena.ID(nil), root.Children.Slice()...)
}

// NewOutput creates an Output node under Root with the given backend id
// and name, returning its id. The new output has no workspaces; callers
// typically follow with NewWorkspace to give it a default one (lifecycle
// §3: "Outputs created when backend announces a display").
func (t *Tree) NewOutput(backendOutput, name string) arena.ID {
	id := t.nodes.Insert(Node{
		Kind:          KindOutput,
		Name:          name,
		BackendOutput: backendOutput,
		Scale:         1,
		Weight:        DefaultWeight,
	})
	t.update(id, func(n *Node) { n.ID = id })
	t.AddChild(t.root, id)
	return id
}

// NewWorkspace creates a Workspace node under output with the given name,
// returning its id, or ok=false if the name collides case-insensitively
// with an existing workspace (invariant 6).
func (t *Tree) NewWorkspace(output arena.ID, name string) (arena.ID, bool) {
	if t.FindWorkspaceByName(name).Valid() {
		return 0, false
	}
	id := t.nodes.Insert(Node{
		Kind:   KindWorkspace,
		Name:   name,
		Layout: LayoutHoriz,
		Weight: DefaultWeight,
	})
	t.update(id, func(n *Node) { n.ID = id })
	t.AddChild(output, id)
	return id, true
}

// NewContainer creates a bare Container node with the given layout. It is
// not yet attached to the tree; callers use AddChild/ReplaceChild/
// WrapInContainer to place it.
func (t *Tree) NewContainer(layout Layout) arena.ID {
	id := t.nodes.Insert(Node{Kind: KindContainer, Layout: layout, Weight: DefaultWeight})
	t.update(id, func(n *Node) { n.ID = id })
	return id
}

// NewView creates a View node wrapping the backend surface handle. It is
// not yet attached to the tree.
func (t *Tree) NewView(surface SurfaceHandle, appID, title string, desiredW, desiredH int) arena.ID {
	id := t.nodes.Insert(Node{
		Kind:        KindView,
		Surface:     surface,
		AppID:       appID,
		Title:       title,
		DesiredW:    desiredW,
		DesiredH:    desiredH,
		Weight:      DefaultWeight,
		Border:      BorderNormal,
		BorderWidth: DefaultBorderWidth,
	})
	t.update(id, func(n *Node) { n.ID = id })
	return id
}

// FindWorkspaceByName returns the id of the workspace named name
// (case-insensitive), or the zero id if none exists.
func (t *Tree) FindWorkspaceByName(name string) arena.ID {
	var found arena.ID
	t.nodes.Each(func(id arena.ID, n Node) {
		if found.Valid() {
			return
		}
		if n.Kind == KindWorkspace && strings.EqualFold(n.Name, name) {
			found = id
		}
	})
	return found
}

// AllWorkspaces returns every live workspace id, in arena iteration order
// (not a meaningful display order — callers that need output-then-tiling
// order should walk Outputs()/Children instead).
func (t *Tree) AllWorkspaces() []arena.ID {
	var out []arena.ID
	t.nodes.Each(func(id arena.ID, n Node) {
		if n.Kind == KindWorkspace {
			out = append(out, id)
		}
	})
	return out
}

// OutputOf walks up from node to find its enclosing Output, or the zero id
// if node is Root or detached.
func (t *Tree) OutputOf(node arena.ID) arena.ID {
	return t.AncestorByKind(node, KindOutput)
}

// WorkspaceOf walks up from node to find its enclosing Workspace, or the
// zero id if node is not a descendant of one.
func (t *Tree) WorkspaceOf(node arena.ID) arena.ID {
	return t.AncestorByKind(node, KindWorkspace)
}
