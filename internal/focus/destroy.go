package focus

import (
	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
)

// AncestorChain is the exported form of ancestorChain, for callers (the
// command package) that need to snapshot a view's ancestors before
// destroying it, since collapseIfEmpty may free some of those ancestors
// as a side effect of the destroy itself.
func AncestorChain(tree *treewm.Tree, start arena.ID) []arena.ID {
	return ancestorChain(tree, start)
}

// HandleDestroyed restores sane focus after a node the seat may have had
// focused is destroyed. former is the ancestor chain captured by
// AncestorChain before the destroy (nearest ancestor first, ending at
// the enclosing Workspace) — some entries may no longer exist if the
// destroy cascaded (e.g. a Container collapsed away).
//
// It walks former from nearest to farthest, focusing the first live
// View it can find within each ancestor's subtree; if none of the
// ancestors contain a live View, it falls back to focusing the
// Workspace itself (guaranteed to survive per invariant 4's "last
// workspace is retained as a placeholder" rule).
func (s *Seat) HandleDestroyed(tree *treewm.Tree, former []arena.ID, warp bool) {
	s.sync(tree)
	if cur := s.GetFocus(tree); cur.Valid() {
		if n, ok := tree.Get(cur); ok && n.Kind == treewm.KindView {
			return
		}
	}
	for _, id := range former {
		n, ok := tree.Get(id)
		if !ok {
			continue
		}
		if view, found := s.firstViewInactive(tree, id); found {
			s.SetFocus(tree, view, warp)
			return
		}
		if n.Kind == treewm.KindWorkspace {
			s.SetFocus(tree, id, warp)
			return
		}
	}
}
