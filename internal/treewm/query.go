package treewm

import "github.com/wmcore/corewm/internal/arena"

// AncestorByKind walks the parent chain starting at node (inclusive) until
// it finds a node of kind, returning its id. It returns the zero id if the
// walk reaches Root without a match (overshooting Root).
func (t *Tree) AncestorByKind(node arena.ID, kind Kind) arena.ID {
	cur := node
	for {
		n, ok := t.Get(cur)
		if !ok {
			return 0
		}
		if n.Kind == kind {
			return cur
		}
		if !n.Parent.Valid() {
			return 0
		}
		cur = n.Parent
	}
}

// FindDescendant performs a depth-first search rooted at root, visiting a
// Workspace's floating list before its tiling children (floating views
// are "in front", matching i3's hit-test order).
func (t *Tree) FindDescendant(root arena.ID, pred func(Node) bool) (arena.ID, bool) {
	n, ok := t.Get(root)
	if !ok {
		return 0, false
	}
	if pred(n) {
		return root, true
	}
	if n.Kind == KindWorkspace {
		for _, c := range n.Floating.Slice() {
			if id, ok := t.FindDescendant(c, pred); ok {
				return id, true
			}
		}
	}
	for _, c := range n.Children.Slice() {
		if id, ok := t.FindDescendant(c, pred); ok {
			return id, true
		}
	}
	return 0, false
}

// RecomputeVisibility recomputes the Visible flag of every node from Root
// down, per spec §4.2's visibility propagation rule. It should be called
// after any mutation that could change which nodes are on screen (focus
// change, workspace switch, tree structure change).
func (t *Tree) RecomputeVisibility() {
	t.update(t.root, func(n *Node) { n.Visible = true })
	root := t.MustGet(t.root)
	for _, out := range root.Children.Slice() {
		t.update(out, func(n *Node) { n.Visible = true })
		t.recomputeChildVisibility(out)
	}
}

// recomputeChildVisibility sets the Visible flag of every child of
// parentID and recurses. A child is visible iff its parent is visible and,
// when the parent only shows one child at a time (an Output choosing its
// active Workspace, or a Tabbed/Stacked Container), the child is the
// parent's FocusedChild. A Workspace's floating children are visible
// whenever the workspace itself is, regardless of focus — floating
// windows are not mutually exclusive the way tabs are.
func (t *Tree) recomputeChildVisibility(parentID arena.ID) {
	p := t.MustGet(parentID)
	selective := p.Kind == KindOutput || p.Layout == LayoutTabbed || p.Layout == LayoutStacked
	for _, c := range p.Children.Slice() {
		visible := p.Visible && (!selective || p.FocusedChild == c)
		t.update(c, func(n *Node) { n.Visible = visible })
		t.recomputeChildVisibility(c)
	}
	if p.Kind == KindWorkspace {
		for _, c := range p.Floating.Slice() {
			t.update(c, func(n *Node) { n.Visible = p.Visible })
		}
	}
}

// IsDescendantOrSelf reports whether node is ancestor itself or a
// transitive descendant of ancestor.
func (t *Tree) IsDescendantOrSelf(ancestor, node arena.ID) bool {
	cur := node
	for {
		if cur == ancestor {
			return true
		}
		n, ok := t.Get(cur)
		if !ok || !n.Parent.Valid() {
			return false
		}
		cur = n.Parent
	}
}

// EachFocusable calls fn for every live Workspace, Container and View id —
// the set of nodes a per-seat focus stack must represent exactly once
// (spec invariant 6; Root and Output are excluded).
func (t *Tree) EachFocusable(fn func(arena.ID)) {
	t.nodes.Each(func(id arena.ID, n Node) {
		if n.Kind == KindWorkspace || n.Kind == KindContainer || n.Kind == KindView {
			fn(id)
		}
	})
}

// RemoveOutput destroys output after migrating its workspaces, in order,
// to another live output. If output is the only output in the tree, the
// removal is refused (see DESIGN.md's Open Question decision): invariant
// 2 requires every node to descend from Root through some Output, so the
// caller (the backend adapter) must keep at least one output alive.
func (t *Tree) RemoveOutput(output arena.ID) bool {
	o, ok := t.Get(output)
	if !ok || o.Kind != KindOutput {
		return false
	}
	var target arena.ID
	for _, id := range t.Outputs() {
		if id != output {
			target = id
			break
		}
	}
	if !target.Valid() {
		return false
	}
	for _, ws := range append([]arena.ID(nil), o.Children.Slice()...) {
		t.detachFromParent(ws)
		t.update(ws, func(n *Node) { n.Parent = 0 })
		t.AddChild(target, ws)
	}
	t.Destroy(output)
	return true
}
