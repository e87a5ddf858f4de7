package focus

import (
	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
	"go.uber.org/zap"
)

// GetFocus returns the seat's currently focused node: the head of its
// focus stack. It returns the zero id if the seat has never focused
// anything (e.g. a freshly started tree with no views yet).
func (s *Seat) GetFocus(tree *treewm.Tree) arena.ID {
	s.sync(tree)
	if len(s.stack) == 0 {
		return 0
	}
	return s.stack[0]
}

// GetFocusInactive returns the node subtree would display if it (or its
// enclosing Output) were given focus without changing anything else: it
// descends subtree's FocusedChild chain until it reaches a View or a
// dead end (an empty Container or Workspace, returned as-is). Since
// SetFocus repoints every ancestor's FocusedChild down to whatever was
// last explicitly focused, this is also the tree's per-container
// "inactive focus recall" memory — it just happens to live on Node
// rather than on the seat, which is what makes it consistent for every
// seat sharing the same tree.
func (s *Seat) GetFocusInactive(tree *treewm.Tree, subtree arena.ID) arena.ID {
	cur := subtree
	for {
		n, ok := tree.Get(cur)
		if !ok {
			return subtree
		}
		if n.Kind == treewm.KindView {
			return cur
		}
		if n.FocusedChild.Valid() && tree.Exists(n.FocusedChild) {
			cur = n.FocusedChild
			continue
		}
		return cur
	}
}

// firstViewInactive is GetFocusInactive restricted to succeeding only
// when it actually reaches a View, with a depth-first structural search
// as a fallback for when FocusedChild was cleared (e.g. the last child
// of a container was just removed). Used by the destroy-time fallback
// (spec §4.4, "ancestor walk ... picking the first get_focus_inactive
// that resolves to a live View").
func (s *Seat) firstViewInactive(tree *treewm.Tree, subtree arena.ID) (arena.ID, bool) {
	if id := s.GetFocusInactive(tree, subtree); id.Valid() {
		if n, ok := tree.Get(id); ok && n.Kind == treewm.KindView {
			return id, true
		}
	}
	if id, ok := tree.FindDescendant(subtree, func(n treewm.Node) bool { return n.Kind == treewm.KindView }); ok {
		return id, true
	}
	return 0, false
}

// ancestorChain returns [start, parent(start), ...] stopping before the
// first Output or Root ancestor — the set of ids a focus change moves to
// the head of the stack together, and the set whose FocusedChild must be
// updated to point back down the chain.
func ancestorChain(tree *treewm.Tree, start arena.ID) []arena.ID {
	var chain []arena.ID
	cur := start
	for {
		n, ok := tree.Get(cur)
		if !ok || n.Kind == treewm.KindRoot || n.Kind == treewm.KindOutput {
			break
		}
		chain = append(chain, cur)
		if !n.Parent.Valid() {
			break
		}
		cur = n.Parent
	}
	return chain
}

// remove deletes id from the stack if present.
func (s *Seat) remove(id arena.ID) {
	for i, v := range s.stack {
		if v == id {
			s.stack = append(s.stack[:i], s.stack[i+1:]...)
			return
		}
	}
}

// SetFocus makes id the seat's current focus: it moves id's whole
// ancestor chain (up to but excluding the enclosing Output) to the head
// of the focus stack together, repoints every ancestor's FocusedChild
// down the chain (switching the enclosing Output's active workspace and
// any Tabbed/Stacked ancestor's visible tab), recomputes tree visibility,
// and notifies the backend of the keyboard focus change. If warp is true
// and the focus moved to a different output than the previous focus, and
// the seat has pointer warping enabled, the pointer is warped to the new
// view's center (spec §4.4).
func (s *Seat) SetFocus(tree *treewm.Tree, id arena.ID, warp bool) {
	if !tree.Exists(id) {
		s.log.Debug("set_focus on dead id ignored", zap.String("seat", s.Name), zap.Uint64("id", uint64(id)))
		return
	}
	s.sync(tree)

	prev := arena.ID(0)
	if len(s.stack) > 0 {
		prev = s.stack[0]
	}
	prevWorkspace := tree.WorkspaceOf(prev)
	prevOutput := tree.OutputOf(prev)

	chain := ancestorChain(tree, id)
	for _, c := range chain {
		s.remove(c)
	}
	s.stack = append(append([]arena.ID(nil), chain...), s.stack...)

	for i := 0; i < len(chain)-1; i++ {
		child, parent := chain[i], chain[i+1]
		tree.UpdateNode(parent, func(n *treewm.Node) { n.FocusedChild = child })
	}
	if len(chain) > 0 {
		workspace := chain[len(chain)-1]
		if ws, ok := tree.Get(workspace); ok && ws.Parent.Valid() {
			tree.UpdateNode(ws.Parent, func(n *treewm.Node) { n.FocusedChild = workspace })
		}
	}
	tree.RecomputeVisibility()

	if s.notifier != nil {
		if pn, ok := tree.Get(prev); ok && pn.Kind == treewm.KindView && prev != id {
			s.notifier.Activate(pn.Surface, false)
			s.notifier.KeyboardLeave(pn.Surface)
		}
		if n, ok := tree.Get(id); ok && n.Kind == treewm.KindView {
			s.notifier.Activate(n.Surface, true)
			s.notifier.KeyboardEnter(n.Surface)
		}
	}

	newWorkspace := tree.WorkspaceOf(id)
	if s.sink != nil && newWorkspace != prevWorkspace {
		s.sink.WorkspaceFocus(prevWorkspace, newWorkspace)
	}

	newOutput := tree.OutputOf(id)
	if warp && s.warpEnabled && s.notifier != nil && newOutput.Valid() && newOutput != prevOutput {
		if n, ok := tree.Get(id); ok {
			s.notifier.WarpPointerToCenter(n.X, n.Y, n.W, n.H)
		}
	}
}
